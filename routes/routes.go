package routes

import (
	"net/http"

	"github.com/Bhaskar125/macro-tracking-webapp/controllers"
	"github.com/Bhaskar125/macro-tracking-webapp/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Handlers is everything the router dispatches to.
type Handlers struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Foods     *controllers.FoodController
	Logs      *controllers.FoodLogController
	Goals     *controllers.GoalController
	Progress  *controllers.ProgressController
	Analytics *controllers.AnalyticsController
	Devices   *controllers.DeviceController
	Realtime  *controllers.RealtimeController
}

type Options struct {
	JWTSecret []byte
	Logger    logrus.FieldLogger
	// Registry receives the HTTP metrics and backs /metrics.
	Registry *prometheus.Registry
}

func SetupRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(opts.Logger))
	if opts.Registry != nil {
		r.Use(middlewares.NewMetrics(opts.Registry).Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Everything else needs a bearer token
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(opts.JWTSecret))
	{
		api.GET("/users", h.Users.List)

		user := api.Group("/user")
		user.GET("/profile", h.Users.GetProfile)
		user.PUT("/profile", h.Users.UpdateProfile)
		user.DELETE("/profile", h.Users.DeleteProfile)
		user.POST("/notifications/toggle", h.Devices.ToggleNotifications)

		foods := api.Group("/foods")
		foods.GET("", h.Foods.Search)
		foods.POST("", h.Foods.Create)
		foods.POST("/recognize", h.Foods.Recognize)
		foods.GET("/:id", h.Foods.Get)
		foods.PUT("/:id", h.Foods.Update)

		logs := api.Group("/logs")
		logs.POST("", h.Logs.Create)
		logs.GET("", h.Logs.List)
		logs.PUT("/:id", h.Logs.Replace)
		logs.DELETE("/:id", h.Logs.Delete)

		api.GET("/goals", h.Goals.Get)
		api.PUT("/goals", h.Goals.Upsert)
		api.POST("/goals/calculate", h.Goals.Calculate)

		api.GET("/dashboard", h.Progress.Dashboard)
		api.GET("/progress/history", h.Progress.History)
		api.POST("/export", h.Progress.ExportDay)

		api.GET("/analytics/weekly", h.Analytics.GetWeeklyOverview)
		api.GET("/analytics/summary", h.Analytics.GetAnalyticsSummary)

		api.POST("/devices", h.Devices.Register)
		api.GET("/alerts", h.Realtime.ListAlerts)
		api.GET("/ws/alerts", h.Realtime.AlertsWS)
	}

	return r
}
