package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/venue-booking-backend/internal/api"
	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/venue-booking-backend/internal/review"
	"github.com/nekogravitycat/venue-booking-backend/internal/user"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
	"github.com/nekogravitycat/venue-booking-backend/internal/wishlist"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	SessionTTL   time.Duration
	BcryptCost   int
	Logger       *logger.Logger

	// Optional integrations; nil disables them.
	Revoker   auth.Revoker
	Publisher booking.EventPublisher
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router   *gin.Engine
	Sessions *auth.SessionStore
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, cfg.Logger)
	sessions := auth.NewSessionStore(jwtManager, cfg.Revoker, userService, cfg.IsProduction)

	// Venue Module
	venueRepo := venue.NewPgxRepository(cfg.DBPool)
	venueService := venue.NewService(venueRepo)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, venueService)

	// Wishlist Module
	wishlistRepo := wishlist.NewPgxRepository(cfg.DBPool)
	wishlistService := wishlist.NewService(wishlistRepo, venueService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, venueService, cfg.Publisher, cfg.Logger)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		Logger:          cfg.Logger,
		Sessions:        sessions,
		UserService:     userService,
		VenueService:    venueService,
		ReviewService:   reviewService,
		WishlistService: wishlistService,
		BookingService:  bookingService,
		HealthCheck: func(ctx context.Context) error {
			return cfg.DBPool.Ping(ctx)
		},
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:   router,
		Sessions: sessions,
	}
}
