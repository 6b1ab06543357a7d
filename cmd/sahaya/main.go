package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/sahayahq/sahaya/internal/clock"
	"github.com/sahayahq/sahaya/internal/config"
	"github.com/sahayahq/sahaya/internal/logger"
	"github.com/sahayahq/sahaya/internal/migration"
	"github.com/sahayahq/sahaya/internal/server"
	"github.com/sahayahq/sahaya/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
