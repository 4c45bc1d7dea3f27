package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/safari-hms/hotel-backend/internal/api"
	"github.com/safari-hms/hotel-backend/internal/auth"
	"github.com/safari-hms/hotel-backend/internal/booking"
	"github.com/safari-hms/hotel-backend/internal/config"
	"github.com/safari-hms/hotel-backend/internal/payment"
	"github.com/safari-hms/hotel-backend/internal/payment/pesapal"
	"github.com/safari-hms/hotel-backend/internal/room"
	"github.com/safari-hms/hotel-backend/internal/roomtype"
	"github.com/safari-hms/hotel-backend/internal/staff"
	"github.com/safari-hms/hotel-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Redis        *redis.Client
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Pesapal      config.PesapalConfig
	Logger       zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, cfg.Logger)

	// RoomType Module
	rtRepo := roomtype.NewPgxRepository(cfg.DBPool)
	rtService := roomtype.NewService(rtRepo)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, rtService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, roomService, cfg.Logger)

	// Staff Module
	staffRepo := staff.NewPgxRepository(cfg.DBPool)
	staffService := staff.NewService(staffRepo, userService, cfg.Logger)

	// Payment Module
	gateway := pesapal.NewClient(cfg.Pesapal, cfg.Redis, cfg.Logger)
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)
	paymentService := payment.NewService(paymentRepo, bookingService, gateway, cfg.Pesapal.Currency, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		RoomTypeService: rtService,
		RoomService:     roomService,
		BookingService:  bookingService,
		PaymentService:  paymentService,
		StaffService:    staffService,
		JWTManager:      jwtManager,
		Logger:          cfg.Logger,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
