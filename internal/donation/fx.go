package donation

import (
	"go.uber.org/fx"

	"github.com/sahayahq/sahaya/internal/donation/repository"
	"github.com/sahayahq/sahaya/internal/donation/service"
)

var Module = fx.Module("donation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
