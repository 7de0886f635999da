package router

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/mymedina/commerce/internal/config"
	"github.com/mymedina/commerce/internal/server/http/handlers"
	"github.com/mymedina/commerce/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CommerceFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(corsMiddleware(cfg.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	shipmentHandler := handlers.NewShipmentHandler(facade)
	reportHandler := handlers.NewReportHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.AuthRequired(facade), authHandler.Me)

	// The gateway posts status notifications here; the signature inside the
	// body is the authenticity check.
	api.POST("/payments/webhook", paymentHandler.Webhook)

	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/products", catalogHandler.ListProducts)
	api.GET("/products/:id", catalogHandler.GetProduct)
	api.GET("/products/slug/:slug", catalogHandler.GetProductBySlug)
	api.GET("/products/:id/variants", catalogHandler.ListVariants)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.POST("/addresses", authHandler.AddAddress)
	authed.GET("/addresses", authHandler.ListAddresses)
	authed.PATCH("/addresses/:id/default", authHandler.SetDefaultAddress)

	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.Mine)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.POST("/orders/:id/cancel", orderHandler.Cancel)
	authed.POST("/orders/:id/payments", paymentHandler.Create)
	authed.GET("/orders/:id/payments", paymentHandler.ListByOrder)
	authed.GET("/orders/:id/shipment", shipmentHandler.GetByOrder)
	authed.GET("/orders/:id/shipment/tracking", shipmentHandler.TrackByOrder)
	authed.GET("/payments/:id", paymentHandler.Get)

	staff := api.Group("")
	staff.Use(middleware.AuthRequired(facade), middleware.StaffRequired())

	staff.POST("/categories", catalogHandler.CreateCategory)
	staff.POST("/products", catalogHandler.CreateProduct)
	staff.PATCH("/products/:id", catalogHandler.UpdateProduct)
	staff.DELETE("/products/:id", catalogHandler.DeactivateProduct)
	staff.POST("/products/:id/variants", catalogHandler.CreateVariant)
	staff.PATCH("/variants/:id", catalogHandler.UpdateVariant)

	staff.GET("/orders/all", orderHandler.ListAll)
	staff.PATCH("/orders/:id/status", orderHandler.UpdateStatus)

	staff.POST("/shipments", shipmentHandler.Create)
	staff.POST("/shipments/book", shipmentHandler.Book)
	staff.POST("/shipments/rates", shipmentHandler.Rates)
	staff.GET("/shipments/areas", shipmentHandler.Areas)
	staff.PATCH("/shipments/:id/status", shipmentHandler.UpdateStatus)
	staff.PATCH("/shipments/:id/waybill", shipmentHandler.SetWaybill)

	owner := api.Group("/reports")
	owner.Use(middleware.AuthRequired(facade), middleware.OwnerRequired())
	owner.GET("/sales", reportHandler.Sales)
	owner.GET("/sales/export", reportHandler.ExportCSV)

	return engine
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if allowedOrigins == "" || allowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	return cors.New(corsConfig)
}
