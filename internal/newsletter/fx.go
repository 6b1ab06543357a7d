package newsletter

import (
	"go.uber.org/fx"

	"github.com/sahayahq/sahaya/internal/newsletter/repository"
	"github.com/sahayahq/sahaya/internal/newsletter/service"
)

var Module = fx.Module("newsletter.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
