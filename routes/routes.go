package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	appconfig "barbershop-backend/config"
	"barbershop-backend/controllers"
	"barbershop-backend/services"
	"barbershop-backend/utils"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	DB      *gorm.DB
	Config  *appconfig.Config
	Orders  *services.OrderService
	Reviews *services.ReviewService
	Masters *services.MasterService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(appconfig.PerformanceLogger())

	authController := controllers.NewAuthController(deps.DB, deps.Config)
	serviceController := controllers.NewServiceController(deps.DB)
	masterController := controllers.NewMasterController(deps.DB, deps.Masters)
	orderController := controllers.NewOrderController(deps.Orders)
	reviewController := controllers.NewReviewController(deps.Reviews)
	thanksController := controllers.NewThanksController(deps.Masters)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(deps.Config.JWTSecret))
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	{
		// Public catalog and profiles
		api.GET("/services", serviceController.GetServices)
		api.GET("/services/:id", serviceController.GetService)
		api.GET("/masters", masterController.GetMasters)
		api.GET("/masters/:id", masterController.GetMaster)
		api.GET("/masters/:id/services", masterController.GetMasterServices)

		// Public intake
		api.POST("/orders", orderController.CreateOrder)
		api.POST("/reviews", reviewController.CreateReview)
		api.GET("/reviews", reviewController.GetReviews)

		api.GET("/thanks/:source", thanksController.Thanks)

		// Staff-only management
		staff := api.Group("")
		staff.Use(utils.AuthMiddleware(deps.Config.JWTSecret), utils.StaffRequired())
		{
			orders := staff.Group("/orders")
			{
				orders.GET("", orderController.GetOrders)
				orders.GET("/:id", orderController.GetOrder)
				orders.POST("/:id/services", orderController.AddOrderServices)
				orders.PATCH("/:id/status", orderController.UpdateOrderStatus)
			}

			catalog := staff.Group("/services")
			{
				catalog.POST("", serviceController.CreateService)
				catalog.PUT("/:id", serviceController.UpdateService)
				catalog.DELETE("/:id", serviceController.DeleteService)
			}

			masters := staff.Group("/masters")
			{
				masters.POST("", masterController.CreateMaster)
				masters.PUT("/:id", masterController.UpdateMaster)
				masters.DELETE("/:id", masterController.DeleteMaster)
			}
		}
	}

	return r
}
