package account

import (
	"github.com/smallbiznis/ratrace/internal/account/repository"
	"github.com/smallbiznis/ratrace/internal/account/service"
	"github.com/smallbiznis/ratrace/internal/account/session"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
	session.Module,
)
