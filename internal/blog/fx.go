package blog

import (
	"github.com/podcastge/studio/internal/blog/repository"
	"github.com/podcastge/studio/internal/blog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("blog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
