package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/eventcrew/catering-api/docs"
	v1 "github.com/eventcrew/catering-api/internal/api/handler/v1"
	"github.com/eventcrew/catering-api/internal/api/middleware"
	"github.com/eventcrew/catering-api/internal/config"
	"github.com/eventcrew/catering-api/internal/gateway"
	"github.com/eventcrew/catering-api/internal/notifier"
	"github.com/eventcrew/catering-api/internal/repository"
	"github.com/eventcrew/catering-api/internal/repository/dao"
	"github.com/eventcrew/catering-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	DB     *gorm.DB
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	if conf.Gin.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Config: conf,
		DB:     db,
		Router: gin.Default(),
	}

	authHandler := s.initAuthHandler()
	userHandler := s.initUserHandler()
	eventHandler := s.initEventHandler()
	paymentHandler := s.initPaymentHandler()

	s.MountMiddlewares()
	s.MountHandlers(authHandler, userHandler, eventHandler, paymentHandler)

	return s
}

func (s *Server) initAuthHandler() *v1.AuthHandler {
	userDAO := dao.NewUserDAO(s.DB)
	userRepo := repository.NewUserRepository(userDAO)
	authSvc := service.NewAuthService(userRepo)

	return v1.NewAuthHandler(s.Config.API, authSvc)
}

func (s *Server) initUserHandler() *v1.UserHandler {
	userDAO := dao.NewUserDAO(s.DB)
	userRepo := repository.NewUserRepository(userDAO)
	userSvc := service.NewUserService(userRepo)

	return v1.NewUserHandler(userSvc)
}

func (s *Server) initEventHandler() *v1.EventHandler {
	eventDAO := dao.NewEventDAO(s.DB)
	eventRepo := repository.NewEventRepository(eventDAO)
	eventSvc := service.NewEventService(eventRepo)

	registrationDAO := dao.NewRegistrationDAO(s.DB)
	registrationRepo := repository.NewRegistrationRepository(registrationDAO)
	registrationSvc := service.NewRegistrationService(registrationRepo)

	return v1.NewEventHandler(eventSvc, registrationSvc)
}

func (s *Server) initPaymentHandler() *v1.PaymentHandler {
	paymentDAO := dao.NewPaymentDAO(s.DB)
	paymentRepo := repository.NewPaymentRepository(paymentDAO)
	userDAO := dao.NewUserDAO(s.DB)
	userRepo := repository.NewUserRepository(userDAO)
	eventDAO := dao.NewEventDAO(s.DB)
	eventRepo := repository.NewEventRepository(eventDAO)

	stripeGateway := gateway.NewStripeGateway(s.Config.Gateway)
	emailNotifier := notifier.NewEmailNotifier(s.Config.SMTP)

	paymentSvc := service.NewPaymentService(paymentRepo, userRepo, eventRepo, stripeGateway, emailNotifier)

	return v1.NewPaymentHandler(paymentSvc)
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	paymentHandler *v1.PaymentHandler,
) {
	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	apiV1 := s.Router.Group("/api/v1")
	{
		apiV1.GET("/healthcheck", v1.HandleHealthcheck)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/staff/login", authHandler.HandleStaffLogin)
			auth.POST("/boy/login", authHandler.HandleBoyLogin)
			auth.POST("/boy/set-password", authHandler.HandleSetPassword)
		}

		// Gateway callback carries its own signature, no JWT.
		apiV1.POST("/payments/callback", paymentHandler.HandleGatewayCallback)

		authed := apiV1.Group("")
		authed.Use(authenticator.VerifyJWT())
		{
			authed.GET("/me", userHandler.HandleGetMe)
			authed.PUT("/me/profile", userHandler.HandleUpdateProfile)
			authed.GET("/me/registrations", eventHandler.HandleMyRegistrations)
			authed.GET("/me/earnings", paymentHandler.HandleMyEarnings)

			boys := authed.Group("/boys")
			{
				boys.POST("", authHandler.HandleAddBoy)
				boys.GET("", userHandler.HandleListBoys)
				boys.GET("/:boyID", userHandler.HandleGetBoy)
				boys.PUT("/:boyID", userHandler.HandleUpdateBoy)
			}

			events := authed.Group("/events")
			{
				events.POST("", eventHandler.HandleCreateEvent)
				events.GET("", eventHandler.HandleListEvents)
				events.GET("/:eventID", eventHandler.HandleGetEvent)
				events.PUT("/:eventID", eventHandler.HandleUpdateEvent)
				events.DELETE("/:eventID", eventHandler.HandleDeleteEvent)
				events.POST("/:eventID/complete", eventHandler.HandleMarkCompleted)
				events.POST("/:eventID/register", eventHandler.HandleRegister)
				events.GET("/:eventID/registrations", eventHandler.HandleGetRegistrations)
				events.POST("/:eventID/payments/simulate", paymentHandler.HandleSimulateAll)
			}

			payments := authed.Group("/payments")
			{
				payments.GET("/history", paymentHandler.HandleHistory)
				payments.POST("/:paymentID/simulate", paymentHandler.HandleSimulate)
				payments.POST("/:paymentID/order", paymentHandler.HandleCreateOrder)
			}

			authed.GET("/dashboard/stats", paymentHandler.HandleStats)
		}
	}

	docs.SwaggerInfo.BasePath = "/api/v1"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
