// Package router wires the HTTP handlers onto echo routes.
package router

import (
	"todo/internal/delivery/api/middleware"
	"todo/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	TaskHandler    *handler.TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Static segments are matched before :id by the echo router.
	tasksGroup := e.Group("/tasks")
	tasksGroup.Use(r.authMiddleware.Authenticate)
	{
		tasksGroup.GET("", r.taskHandler.List)
		tasksGroup.POST("", r.taskHandler.Create)
		tasksGroup.GET("/dates", r.taskHandler.AvailableDates)
		tasksGroup.GET("/months", r.taskHandler.AvailableMonths)
		tasksGroup.GET("/:id", r.taskHandler.Get)
		tasksGroup.PUT("/:id", r.taskHandler.Update)
		tasksGroup.DELETE("/:id", r.taskHandler.Delete)
	}
}
