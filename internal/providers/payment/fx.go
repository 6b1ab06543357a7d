package payment

import (
	"github.com/sahayahq/sahaya/internal/config"
	"github.com/sahayahq/sahaya/internal/providers/payment/domain"
	"github.com/sahayahq/sahaya/internal/providers/payment/razorpay"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.payment",
	fx.Provide(func() *Registry {
		return NewRegistry(
			razorpay.NewFactory(),
		)
	}),
	fx.Provide(NewLoaderFromConfig),
)

func NewLoaderFromConfig(cfg config.Config, registry *Registry) *Loader {
	return NewLoader(func() (domain.Gateway, error) {
		return registry.NewGateway(cfg.Gateway.Provider, domain.Config{
			KeyID:     cfg.Gateway.KeyID,
			KeySecret: cfg.Gateway.KeySecret,
			BaseURL:   cfg.Gateway.BaseURL,
		})
	})
}
