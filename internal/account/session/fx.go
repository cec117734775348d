package session

import "go.uber.org/fx"

var Module = fx.Module("account.session",
	fx.Provide(NewManager),
)
