package auth

import (
	"go.uber.org/fx"

	"github.com/sahayahq/sahaya/internal/auth/repository"
	"github.com/sahayahq/sahaya/internal/auth/service"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
