package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sahayahq/sahaya/internal/config"
)

// NewMeterProvider configures the OTLP metric exporter. When disabled the
// provider has no reader and instruments are no-ops.
func NewMeterProvider(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OtelEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		return mp, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OtelExporterEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	cancel()
	if err != nil {
		return nil, err
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.AppName),
			attribute.String("service.version", cfg.AppVersion),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down meter provider")
			return mp.Shutdown(ctx)
		},
	})

	return mp, nil
}

// DonationMetrics tracks the checkout funnel: orders opened at the gateway,
// then each terminal outcome by status.
type DonationMetrics struct {
	ordersCreated   metric.Int64Counter
	orderFailures   metric.Int64Counter
	donations       metric.Int64Counter
	amountCollected metric.Int64Counter
}

func NewDonationMetrics(mp *sdkmetric.MeterProvider) (*DonationMetrics, error) {
	meter := mp.Meter("sahaya/donation")

	ordersCreated, err := meter.Int64Counter("sahaya.gateway.orders_created",
		metric.WithDescription("Gateway orders created for donation checkouts."))
	if err != nil {
		return nil, err
	}
	orderFailures, err := meter.Int64Counter("sahaya.gateway.order_failures",
		metric.WithDescription("Gateway order creation failures."))
	if err != nil {
		return nil, err
	}
	donations, err := meter.Int64Counter("sahaya.donations.recorded",
		metric.WithDescription("Donation outcomes recorded, by status."))
	if err != nil {
		return nil, err
	}
	amountCollected, err := meter.Int64Counter("sahaya.donations.amount_collected",
		metric.WithDescription("Sum of successful donation totals in rupees."))
	if err != nil {
		return nil, err
	}

	return &DonationMetrics{
		ordersCreated:   ordersCreated,
		orderFailures:   orderFailures,
		donations:       donations,
		amountCollected: amountCollected,
	}, nil
}

func (m *DonationMetrics) OrderCreated(ctx context.Context) {
	m.ordersCreated.Add(ctx, 1)
}

func (m *DonationMetrics) OrderFailed(ctx context.Context) {
	m.orderFailures.Add(ctx, 1)
}

func (m *DonationMetrics) DonationRecorded(ctx context.Context, status string, total int64) {
	m.donations.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if status == "success" {
		m.amountCollected.Add(ctx, total)
	}
}
