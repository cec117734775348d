package organisation

import (
	"github.com/smallbiznis/ratrace/internal/organisation/repository"
	"github.com/smallbiznis/ratrace/internal/organisation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organisation.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
