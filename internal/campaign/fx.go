package campaign

import (
	"github.com/sahayahq/sahaya/internal/campaign/repository"
	"github.com/sahayahq/sahaya/internal/campaign/service"
	"go.uber.org/fx"
)

var Module = fx.Module("campaign.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
