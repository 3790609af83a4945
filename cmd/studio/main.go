package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/podcastge/studio/internal/migration"
	"github.com/podcastge/studio/internal/server"
	"github.com/podcastge/studio/pkg/db"
	"github.com/podcastge/studio/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		server.Module,
		migration.Module,
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
