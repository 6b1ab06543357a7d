package observability

import (
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		NewTracerProvider,
		NewMeterProvider,
		NewDonationMetrics,
	),
	fx.Invoke(ensureTracingProvider),
	fx.Invoke(ensureMeterProvider),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}

func ensureMeterProvider(_ *sdkmetric.MeterProvider) {}
