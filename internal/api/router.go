package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/venue-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/form"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/venue-booking-backend/internal/review"
	reviewHttp "github.com/nekogravitycat/venue-booking-backend/internal/review/http"
	"github.com/nekogravitycat/venue-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/venue-booking-backend/internal/user/http"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
	venueHttp "github.com/nekogravitycat/venue-booking-backend/internal/venue/http"
	"github.com/nekogravitycat/venue-booking-backend/internal/wishlist"
	wishlistHttp "github.com/nekogravitycat/venue-booking-backend/internal/wishlist/http"
	"github.com/nekogravitycat/venue-booking-backend/web"
)

// Config holds the dependencies of the HTTP router.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *logger.Logger
	Sessions     *auth.SessionStore

	UserService     user.Service
	VenueService    venue.Service
	ReviewService   review.Service
	WishlistService wishlist.Service
	BookingService  booking.Service

	// HealthCheck is called by /healthz. Nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (Logger, Recovery, CORS, Session) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	r := gin.New()

	// Report field names as they appear in the forms.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		form.RegisterTagNames(v)
	}

	// Pages are rendered from the embedded templates.
	r.SetHTMLTemplate(web.Templates())

	r.Use(RequestLogger(cfg.Logger), Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8080", "http://127.0.0.1:8080"}
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:8080"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Every request carries the session identity, if any.
	r.Use(cfg.Sessions.Load())

	loginRequired := auth.LoginRequired()
	anonymousOnly := auth.AnonymousOnly()

	r.GET("/", func(c *gin.Context) {
		if auth.IsAuthenticated(c) {
			c.Redirect(http.StatusFound, auth.HomePath)
			return
		}
		c.Redirect(http.StatusFound, auth.LoginPath)
	})
	r.GET("/healthz", healthz(cfg.HealthCheck))

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.Sessions)
	venueHandler := venueHttp.NewHandler(cfg.VenueService, cfg.ReviewService, cfg.WishlistService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	wishlistHandler := wishlistHttp.NewHandler(cfg.WishlistService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.VenueService)

	userHttp.RegisterRoutes(r, userHandler, loginRequired, anonymousOnly)
	venueHttp.RegisterRoutes(r, venueHandler, loginRequired)
	reviewHttp.RegisterRoutes(r, reviewHandler, loginRequired)
	wishlistHttp.RegisterRoutes(r, wishlistHandler, loginRequired)
	bookingHttp.RegisterRoutes(r, bookingHandler, loginRequired)

	r.NoRoute(response.NotFound)

	return r
}

func healthz(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logger.FromGin(c).Error("health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
