package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sahayahq/sahaya/internal/auth"
	authdomain "github.com/sahayahq/sahaya/internal/auth/domain"
	"github.com/sahayahq/sahaya/internal/auth/session"
	"github.com/sahayahq/sahaya/internal/campaign"
	campaigndomain "github.com/sahayahq/sahaya/internal/campaign/domain"
	"github.com/sahayahq/sahaya/internal/config"
	"github.com/sahayahq/sahaya/internal/donation"
	donationdomain "github.com/sahayahq/sahaya/internal/donation/domain"
	"github.com/sahayahq/sahaya/internal/newsletter"
	newsletterdomain "github.com/sahayahq/sahaya/internal/newsletter/domain"
	"github.com/sahayahq/sahaya/internal/observability"
	"github.com/sahayahq/sahaya/internal/providers/email"
	paymentprovider "github.com/sahayahq/sahaya/internal/providers/payment"
	"github.com/sahayahq/sahaya/internal/ratelimit"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	campaign.Module,
	donation.Module,
	newsletter.Module,
	email.Module,
	paymentprovider.Module,
	ratelimit.Module,
	observability.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(observability.GinMiddleware())
	r.Use(observability.PrometheusMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin() *gin.Engine {
	return NewEngine()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
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
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	authsvc         authdomain.Service
	sessions        *session.Manager
	campaignSvc     campaigndomain.Service
	donationSvc     donationdomain.Service
	newsletterSvc   newsletterdomain.Service
	donationLimiter *ratelimit.DonationLimiter
	checkoutLimiter *rateLimiter
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	Authsvc         authdomain.Service
	Sessions        *session.Manager
	CampaignSvc     campaigndomain.Service
	DonationSvc     donationdomain.Service
	NewsletterSvc   newsletterdomain.Service
	DonationLimiter *ratelimit.DonationLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		authsvc:         p.Authsvc,
		sessions:        p.Sessions,
		campaignSvc:     p.CampaignSvc,
		donationSvc:     p.DonationSvc,
		newsletterSvc:   p.NewsletterSvc,
		donationLimiter: p.DonationLimiter,
		checkoutLimiter: newRateLimiter(30, time.Minute),
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/register", s.Register)
	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Campaigns --------
	api.GET("/campaigns", s.ListCampaigns)
	api.POST("/campaigns", s.AuthRequired(), s.CreateCampaign)
	api.GET("/campaigns/:id", s.GetCampaignByID)
	api.GET("/campaigns/:id/donations", s.ListCampaignDonations)

	// -------- Donations --------
	api.POST("/donations/order", s.DonationRateLimit(), s.CreateDonationOrder)
	api.POST("/donations", s.DonationRateLimit(), s.RecordDonation)
	api.GET("/donations", s.ListDonations)

	// -------- Newsletter --------
	api.POST("/newsletter/subscribe", s.Subscribe)
}
