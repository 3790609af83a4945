package leads

import (
	"github.com/podcastge/studio/internal/leads/repository"
	"github.com/podcastge/studio/internal/leads/service"
	"go.uber.org/fx"
)

var Module = fx.Module("leads.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
