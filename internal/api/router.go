package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/safari-hms/hotel-backend/internal/auth"
	"github.com/safari-hms/hotel-backend/internal/booking"
	bookingHttp "github.com/safari-hms/hotel-backend/internal/booking/http"
	"github.com/safari-hms/hotel-backend/internal/payment"
	paymentHttp "github.com/safari-hms/hotel-backend/internal/payment/http"
	"github.com/safari-hms/hotel-backend/internal/room"
	roomHttp "github.com/safari-hms/hotel-backend/internal/room/http"
	"github.com/safari-hms/hotel-backend/internal/roomtype"
	roomtypeHttp "github.com/safari-hms/hotel-backend/internal/roomtype/http"
	"github.com/safari-hms/hotel-backend/internal/staff"
	staffHttp "github.com/safari-hms/hotel-backend/internal/staff/http"
	"github.com/safari-hms/hotel-backend/internal/user"
	userHttp "github.com/safari-hms/hotel-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService     user.Service
	RoomTypeService roomtype.Service
	RoomService     room.Service
	BookingService  booking.Service
	PaymentService  payment.Service
	StaffService    staff.Service

	JWTManager *auth.JWTManager
	Logger     zerolog.Logger
}

// NewRouter assembles middleware (CORS, logging, metrics, auth) and
// registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery(), Metrics())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// authMiddleware validates the bearer token; staffMiddleware further
	// requires an active staff profile.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	staffMiddleware := RequireStaff(cfg.StaffService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	roomtypeHandler := roomtypeHttp.NewHandler(cfg.RoomTypeService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.StaffService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService, cfg.StaffService, cfg.Logger)
	staffHandler := staffHttp.NewHandler(cfg.StaffService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		roomtypeHttp.RegisterRoutes(v1, roomtypeHandler, authMiddleware, staffMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, staffMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, staffMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware, staffMiddleware)
		staffHttp.RegisterRoutes(v1, staffHandler, authMiddleware, staffMiddleware)
	}

	return r
}
