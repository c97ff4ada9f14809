package router

import (
	"github.com/ecoenergi/meu-contrato-solar/config"
	"github.com/ecoenergi/meu-contrato-solar/internal/app/controller"
	"github.com/ecoenergi/meu-contrato-solar/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController     *controller.AuthController
	wizardController   *controller.WizardController
	customerController *controller.CustomerController
	poaController      *controller.PowerOfAttorneyController
	documentController *controller.DocumentController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	wizardController *controller.WizardController,
	customerController *controller.CustomerController,
	poaController *controller.PowerOfAttorneyController,
	documentController *controller.DocumentController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		wizardController:   wizardController,
		customerController: customerController,
		poaController:      poaController,
		documentController: documentController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Meu Contrato Solar API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		wizard := v1.Group("/wizard")
		wizard.Use(r.authMiddleware.Authenticate())
		{
			wizard.GET("/progress", r.wizardController.GetProgress)
			wizard.POST("/new", r.wizardController.StartNew)
			wizard.POST("/navigate", r.wizardController.Navigate)
			wizard.POST("/resume/:customer_id", r.wizardController.Resume)

			steps := wizard.Group("/steps")
			{
				steps.POST("/customer", r.wizardController.SaveCustomerInfo)
				steps.POST("/location", r.wizardController.SaveLocation)
				steps.POST("/technical", r.wizardController.SaveTechnical)
				steps.POST("/financial", r.wizardController.SaveFinancial)
			}
		}

		customers := v1.Group("/customers")
		customers.Use(r.authMiddleware.Authenticate())
		{
			customers.GET("", r.customerController.Search)
			customers.GET("/:id", r.customerController.Get)
			customers.DELETE("/:id", r.customerController.Delete)
			customers.POST("/:id/power-of-attorney", r.poaController.CreateFromCustomer)
		}

		poa := v1.Group("/power-of-attorneys")
		poa.Use(r.authMiddleware.Authenticate())
		{
			poa.GET("", r.poaController.List)
			poa.POST("", r.poaController.Create)
			poa.GET("/:id", r.poaController.Get)
			poa.DELETE("/:id", r.poaController.Delete)
		}

		documents := v1.Group("/documents")
		documents.Use(r.authMiddleware.Authenticate())
		{
			documents.GET("/contract/:customer_id", r.documentController.GetContract)
			documents.GET("/power-of-attorney/:id", r.documentController.GetPowerOfAttorney)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
