package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"themepark/internal/api/handlers"
	"themepark/internal/api/middleware"
)

type Router struct {
	rideHandler     *handlers.RideHandler
	employeeHandler *handlers.EmployeeHandler
	logger          *slog.Logger
}

func NewRouter(
	rideHandler *handlers.RideHandler,
	employeeHandler *handlers.EmployeeHandler,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		rideHandler:     rideHandler,
		employeeHandler: employeeHandler,
		logger:          logger,
	}
}

func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery(r.logger), middleware.RequestLogger(r.logger))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/")
	api.Use(middleware.MockAuth())
	{
		// Visitors and staff
		api.GET("/rides", r.rideHandler.ListRides)
		api.GET("/rides/:id", r.rideHandler.GetRide)
		api.GET("/rides/:id/queue", r.rideHandler.GetQueue)
		api.POST("/rides/:id/queue", r.rideHandler.Enqueue)
		api.GET("/rides/:id/history", r.rideHandler.GetHistory)
		api.POST("/rides/:id/history/contains", r.rideHandler.HistoryContains)

		// Staff only
		staff := api.Group("/")
		staff.Use(middleware.RequireEmployee())
		{
			staff.POST("/employees", r.employeeHandler.Register)
			staff.GET("/employees", r.employeeHandler.ListEmployees)
			staff.GET("/employees/:id", r.employeeHandler.GetEmployee)

			staff.POST("/rides", r.rideHandler.CreateRide)
			staff.PATCH("/rides/:id", r.rideHandler.UpdateRide)
			staff.PUT("/rides/:id/operator", r.rideHandler.AssignOperator)
			staff.DELETE("/rides/:id/operator", r.rideHandler.UnassignOperator)

			staff.DELETE("/rides/:id/queue/head", r.rideHandler.Dequeue)
			staff.DELETE("/rides/:id/queue", r.rideHandler.ClearQueue)

			staff.POST("/rides/:id/history", r.rideHandler.AddToHistory)
			staff.DELETE("/rides/:id/history", r.rideHandler.ClearHistory)
			staff.POST("/rides/:id/history/sort", r.rideHandler.SortHistory)
			staff.POST("/rides/:id/history/export", r.rideHandler.ExportHistory)
			staff.POST("/rides/:id/history/import", r.rideHandler.ImportHistory)

			staff.POST("/rides/:id/cycle", r.rideHandler.RunCycle)
		}
	}
}
