package submission

import (
	"github.com/podcastge/studio/internal/submission/repository"
	"github.com/podcastge/studio/internal/submission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("submission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
