package server

import (
	"context"
	"net/http"

	"classbook/internal/auth"
	"classbook/internal/class"
	"classbook/internal/config"
	"classbook/internal/email"
	"classbook/internal/member"
	"classbook/internal/reservation"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	memberRepo := member.NewRepository(db)
	classRepo := class.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)

	memberHandler := member.NewHandler(member.NewService(memberRepo, cfg.JWTSecret))
	classHandler := class.NewHandler(class.NewService(classRepo), memberRepo)

	var mailer reservation.Mailer
	if emailService != nil {
		mailer = emailService
	}
	reservationHandler := reservation.NewHandler(
		reservation.NewService(reservationRepo, memberRepo, classRepo, mailer),
	)

	public := router.Group("/auth")
	{
		public.POST("/register", memberHandler.Register)
		public.POST("/login", memberHandler.Login)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", memberHandler.GetMe)
		protected.GET("/classes", classHandler.ListClasses)
		protected.GET("/classes/:classID", classHandler.GetClass)
		protected.POST("/reservations", reservationHandler.CreateReservation)
		protected.GET("/reservations", reservationHandler.ListMyReservations)
		protected.POST("/reservations/:reservationID/cancel", reservationHandler.CancelReservation)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.POST("/classes", classHandler.CreateClass)
		admin.GET("/classes/:classID/reservations", reservationHandler.ListReservationsByClass)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	if emailService != nil {
		router.GET("/test-email", TestEmail(emailService))
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
