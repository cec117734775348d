package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/ratrace/internal/account"
	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	"github.com/smallbiznis/ratrace/internal/account/session"
	"github.com/smallbiznis/ratrace/internal/authorization"
	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/internal/observability"
	obslogger "github.com/smallbiznis/ratrace/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/ratrace/internal/observability/metrics"
	obstracing "github.com/smallbiznis/ratrace/internal/observability/tracing"
	"github.com/smallbiznis/ratrace/internal/organisation"
	orgdomain "github.com/smallbiznis/ratrace/internal/organisation/domain"
	"github.com/smallbiznis/ratrace/internal/post"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	"github.com/smallbiznis/ratrace/internal/ratelimit"
	"github.com/smallbiznis/ratrace/internal/vote"
	votedomain "github.com/smallbiznis/ratrace/internal/vote/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	authorization.Module,
	ratelimit.Module,
	account.Module,
	organisation.Module,
	post.Module,
	vote.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(RunHTTP),
)

func NewEngine(obsCfg observability.Config, cfg config.Config) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(RequestTimeout(cfg.HTTPRequestTimeout))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, cfg config.Config) *gin.Engine {
	return NewEngine(obsCfg, cfg)
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	listing    *config.ListingConfigHolder
	log        *zap.Logger
	sessions   *session.Manager
	accountSvc accountdomain.Service
	authzSvc   authorization.Service
	orgSvc     orgdomain.Service
	postSvc    postdomain.Service
	voteSvc    votedomain.Service
	limiter    *ratelimit.WriteLimiter
	obsMetrics *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Listing    *config.ListingConfigHolder
	Log        *zap.Logger
	Sessions   *session.Manager
	AccountSvc accountdomain.Service
	AuthzSvc   authorization.Service
	OrgSvc     orgdomain.Service
	PostSvc    postdomain.Service
	VoteSvc    votedomain.Service
	Limiter    *ratelimit.WriteLimiter `optional:"true"`
	ObsMetrics *obsmetrics.Metrics     `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		listing:    p.Listing,
		log:        p.Log.Named("http.server"),
		sessions:   p.Sessions,
		accountSvc: p.AccountSvc,
		authzSvc:   p.AuthzSvc,
		orgSvc:     p.OrgSvc,
		postSvc:    p.PostSvc,
		voteSvc:    p.VoteSvc,
		limiter:    p.Limiter,
		obsMetrics: p.ObsMetrics,
	}

	svc.registerOrgRoutes()
	svc.registerAccountRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerOrgRoutes() {
	orgs := s.engine.Group("/orgs")

	orgs.GET("", s.ListOrganisations)
	orgs.GET("/get_names", s.ListOrganisationNames)
	orgs.GET("/search", s.SearchOrganisations)
	orgs.POST("",
		s.AuthRequired(),
		s.RequireActive(),
		s.Authorize(authorization.ObjectOrganisation, authorization.ActionOrganisationCreate),
		s.CreateOrganisation,
	)

	org := orgs.Group("/:id", s.OptionalAuth())
	{
		org.GET("", s.GetOrganisation)
		org.GET("/positions", s.ListPositions)
		org.GET("/reviews", s.ListOrganisationReviews)
		org.GET("/interviews", s.ListOrganisationInterviews)
		org.GET("/reviews_and_interviews", s.ListOrganisationPosts)
	}

	orgs.POST("/:id/positions",
		s.AuthRequired(),
		s.RequireActive(),
		s.Authorize(authorization.ObjectPosition, authorization.ActionPositionCreate),
		s.RateLimit("positions"),
		s.CreatePosition,
	)
}

func (s *Server) registerAccountRoutes() {
	acc := s.engine.Group("/account")

	acc.POST("/register", s.Register)
	acc.POST("/login", s.Login)
	acc.POST("/logout", s.Logout)

	me := acc.Group("", s.AuthRequired())
	{
		me.GET("/me", s.Me)
		me.PATCH("/preferences", s.UpdatePreferences)
	}

	write := acc.Group("", s.AuthRequired(), s.RequireActive())
	{
		write.PUT("/vote",
			s.Authorize(authorization.ObjectVote, authorization.ActionVoteCast),
			s.RateLimit("vote"),
			s.CastVote,
		)
		write.DELETE("/vote",
			s.Authorize(authorization.ObjectVote, authorization.ActionVoteRetract),
			s.RateLimit("vote"),
			s.RetractVote,
		)
		write.POST("/post-review",
			s.Authorize(authorization.ObjectReview, authorization.ActionReviewCreate),
			s.RateLimit("post-review"),
			s.PostReview,
		)
		write.POST("/post-interview",
			s.Authorize(authorization.ObjectInterview, authorization.ActionInterviewCreate),
			s.RateLimit("post-interview"),
			s.PostInterview,
		)
		write.POST("/delete-post",
			s.RateLimit("delete-post"),
			s.DeletePost,
		)
	}

	profile := acc.Group("/:id", s.OptionalAuth())
	{
		profile.GET("", s.GetAccount)
		profile.GET("/reviews", s.ListAccountReviews)
		profile.GET("/interviews", s.ListAccountInterviews)
		profile.GET("/review_votes", s.ListAccountReviewVotes)
		profile.GET("/interview_votes", s.ListAccountInterviewVotes)
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
