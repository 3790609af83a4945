package providers

import (
	"github.com/podcastge/studio/internal/providers/email"
	"github.com/podcastge/studio/internal/providers/storage"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	storage.Module,
)
