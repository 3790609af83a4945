package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/podcastge/studio/internal/auth/session"
	"github.com/podcastge/studio/internal/blog"
	blogdomain "github.com/podcastge/studio/internal/blog/domain"
	"github.com/podcastge/studio/internal/cache"
	"github.com/podcastge/studio/internal/catalog"
	catalogdomain "github.com/podcastge/studio/internal/catalog/domain"
	"github.com/podcastge/studio/internal/config"
	"github.com/podcastge/studio/internal/leads"
	leadsdomain "github.com/podcastge/studio/internal/leads/domain"
	"github.com/podcastge/studio/internal/media"
	obsmetrics "github.com/podcastge/studio/internal/observability/metrics"
	"github.com/podcastge/studio/internal/providers"
	"github.com/podcastge/studio/internal/stats"
	"github.com/podcastge/studio/internal/submission"
	submissiondomain "github.com/podcastge/studio/internal/submission/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	cache.Module,
	session.Module,
	providers.Module,
	catalog.Module,
	submission.Module,
	blog.Module,
	leads.Module,
	media.Module,
	stats.Module,
	obsmetrics.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	db            *gorm.DB
	genID         *snowflake.Node
	sessions      *session.Manager
	tags          *cache.TagStore
	catalogSvc    catalogdomain.Service
	submissionSvc submissiondomain.Service
	blogSvc       blogdomain.Service
	leadsSvc      leadsdomain.Service
	mediaSvc      media.Service
	statsSvc      stats.Service

	contactLimiter    *rateLimiter
	newsletterLimiter *rateLimiter
	submitLimiter     *rateLimiter
	clapLimiter       *rateLimiter
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Log           *zap.Logger
	DB            *gorm.DB
	GenID         *snowflake.Node
	Sessions      *session.Manager
	Tags          *cache.TagStore
	CatalogSvc    catalogdomain.Service
	SubmissionSvc submissiondomain.Service
	BlogSvc       blogdomain.Service
	LeadsSvc      leadsdomain.Service
	MediaSvc      media.Service
	StatsSvc      stats.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:            p.Gin,
		cfg:               p.Cfg,
		log:               p.Log,
		db:                p.DB,
		genID:             p.GenID,
		sessions:          p.Sessions,
		tags:              p.Tags,
		catalogSvc:        p.CatalogSvc,
		submissionSvc:     p.SubmissionSvc,
		blogSvc:           p.BlogSvc,
		leadsSvc:          p.LeadsSvc,
		mediaSvc:          p.MediaSvc,
		statsSvc:          p.StatsSvc,
		contactLimiter:    newRateLimiter(10, time.Minute),
		newsletterLimiter: newRateLimiter(10, time.Minute),
		submitLimiter:     newRateLimiter(5, time.Minute),
		clapLimiter:       newRateLimiter(60, time.Minute),
	}

	svc.registerAdminRoutes()
	svc.registerPublicRoutes()
	svc.registerWebhookRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAdminRoutes() {
	login := s.engine.Group("/api/admin/login")
	{
		login.GET("", s.SessionCheck)
		login.POST("", s.Login)
		login.DELETE("", s.Logout)
	}

	admin := s.engine.Group("/api/admin", s.AdminRequired())
	{
		calculator := admin.Group("/calculator")
		{
			calculator.GET("/packages", s.AdminListPackages)
			calculator.POST("/packages", s.CreatePackage)
			calculator.PUT("/packages", s.UpdatePackage)
			calculator.DELETE("/packages", s.DeletePackage)

			calculator.GET("/durations", s.AdminListDurations)
			calculator.POST("/durations", s.CreateDuration)
			calculator.PUT("/durations", s.UpdateDuration)
			calculator.DELETE("/durations", s.DeleteDuration)

			calculator.GET("/services", s.AdminListServices)
			calculator.POST("/services", s.CreateService)
			calculator.PUT("/services", s.UpdateService)
			calculator.DELETE("/services", s.DeleteService)

			calculator.GET("/episode-counts", s.AdminListEpisodeCounts)
			calculator.POST("/episode-counts", s.CreateEpisodeCount)
			calculator.PUT("/episode-counts", s.UpdateEpisodeCount)
			calculator.DELETE("/episode-counts", s.DeleteEpisodeCount)

			calculator.GET("/submissions", s.AdminSubmissions)
			calculator.PATCH("/submissions", s.MarkSubmissionRead)
			calculator.DELETE("/submissions", s.DeleteSubmission)
		}

		admin.GET("/articles", s.AdminListArticles)
		admin.POST("/articles", s.CreateArticle)
		admin.GET("/articles/:id", s.GetArticle)
		admin.PUT("/articles/:id", s.UpdateArticle)

		admin.GET("/media", s.ListMedia)
		admin.DELETE("/media", s.DeleteMedia)
		admin.POST("/upload", s.UploadMedia)
	}
}

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api")

	calculator := api.Group("/calculator")
	{
		calculator.GET("/packages", s.PublicPackages)
		calculator.GET("/durations", s.PublicDurations)
		calculator.GET("/services", s.PublicServices)
		calculator.GET("/episode-counts", s.PublicEpisodeCounts)
		calculator.POST("/quote", s.Quote)
		calculator.POST("/submit", s.PublicFormRateLimit(s.submitLimiter), s.Submit)
	}

	blogGroup := api.Group("/blog")
	{
		blogGroup.GET("/posts", s.PublicPosts)
		blogGroup.GET("/posts/:slug", s.PublicPostBySlug)
		blogGroup.GET("/clap", s.ReadClaps)
		blogGroup.POST("/clap", s.PublicFormRateLimit(s.clapLimiter), s.Clap)
	}

	api.POST("/contact", s.PublicFormRateLimit(s.contactLimiter), s.Contact)
	api.POST("/newsletter/subscribe", s.PublicFormRateLimit(s.newsletterLimiter), s.Subscribe)
	api.GET("/youtube-stats", s.YouTubeStats)
}

func (s *Server) registerWebhookRoutes() {
	webhooks := s.engine.Group("/api/webhooks", s.WebhookSecretRequired())
	{
		webhooks.POST("/blog/upload-image", s.WebhookUploadImage)
	}
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: errorPayload{
			Type:    "not_found",
			Message: "not found",
		}})
	})
}
