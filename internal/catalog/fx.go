package catalog

import (
	"github.com/podcastge/studio/internal/catalog/repository"
	"github.com/podcastge/studio/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
