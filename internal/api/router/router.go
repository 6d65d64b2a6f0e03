package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/petclinic/reminder-notifier/internal/api/handlers/notification"
	"github.com/petclinic/reminder-notifier/internal/middlewares"
)

// New builds the HTTP routing table for the notification API.
func New(handler *notification.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")
	{
		api.POST("/schedules", handler.CreateSchedule)
		api.GET("/notifications", handler.GetNotifications)
		api.GET("/notifications/:id", handler.GetStatus)
		api.POST("/notifications/test", handler.SendTest)
		api.PUT("/owners/:id/notification-preferences", handler.UpdatePreference)
	}

	return e
}
