package handler

import (
	"net/http"

	"github.com/dafibh/mandataire/mandataire-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the HTTP handlers served under /api/v1
type Handlers struct {
	Dashboard *DashboardHandler
	Export    *ExportHandler
	Prospect  *ProspectHandler
	Client    *ClientHandler
	Service   *ServiceHandler
	Sale      *SaleHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes. A nil authMiddleware leaves the API open.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, h Handlers) {
	e.Validator = NewRequestValidator()

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	// Change feed (authenticates with the token query parameter)
	e.GET("/ws", h.WebSocket.HandleWS)

	// API version 1
	api := e.Group("/api/v1")
	if authMiddleware != nil {
		api.Use(authMiddleware.Authenticate())
	}

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", h.Dashboard.GetSummary)
	dashboard.GET("/export", h.Export.Download)
	dashboard.POST("/exports", h.Export.Archive)

	// Prospect routes
	prospects := api.Group("/prospects")
	prospects.POST("", h.Prospect.CreateProspect)
	prospects.GET("", h.Prospect.GetProspects)
	prospects.GET("/:id", h.Prospect.GetProspect)
	prospects.PUT("/:id", h.Prospect.UpdateProspect)
	prospects.DELETE("/:id", h.Prospect.DeleteProspect)

	// Client routes
	clients := api.Group("/clients")
	clients.POST("", h.Client.CreateClient)
	clients.GET("", h.Client.GetClients)
	clients.GET("/:id", h.Client.GetClient)
	clients.PUT("/:id", h.Client.UpdateClient)
	clients.DELETE("/:id", h.Client.DeleteClient)

	// Service catalog routes
	services := api.Group("/services")
	services.POST("", h.Service.CreateService)
	services.GET("", h.Service.GetServices)
	services.GET("/:id", h.Service.GetService)
	services.PUT("/:id", h.Service.UpdateService)
	services.DELETE("/:id", h.Service.DeleteService)

	// Sale (client service) routes
	sales := api.Group("/client-services")
	sales.POST("", h.Sale.CreateSale)
	sales.GET("", h.Sale.GetSales)
	sales.GET("/:id", h.Sale.GetSale)
	sales.PUT("/:id", h.Sale.UpdateSale)
	sales.DELETE("/:id", h.Sale.DeleteSale)
}
