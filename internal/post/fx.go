package post

import (
	"github.com/smallbiznis/ratrace/internal/post/repository"
	"github.com/smallbiznis/ratrace/internal/post/service"
	"go.uber.org/fx"
)

var Module = fx.Module("post.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
