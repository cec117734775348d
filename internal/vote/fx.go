package vote

import (
	"github.com/smallbiznis/ratrace/internal/vote/repository"
	"github.com/smallbiznis/ratrace/internal/vote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vote.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
