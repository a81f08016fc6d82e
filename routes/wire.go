package routes

import (
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/controllers"
	"github.com/Bhaskar125/macro-tracking-webapp/services"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the collaborators the services are built from. Optional
// integrations are nil when not configured.
type Deps struct {
	DB       *gorm.DB
	Log      logrus.FieldLogger
	Location *time.Location
	JWT      struct {
		Secret string
		TTL    time.Duration
	}

	Publisher services.EventPublisher
	Labeler   services.Labeler
	Store     services.ObjectStore
	SNS       services.SNSAPI
	FCMArn    string
	Mailer    services.WelcomeMailer
}

// Services is the built service graph, exposed for the CLI and tests.
type Services struct {
	Hub       *services.RealtimeHub
	Alerts    *services.AlertBus
	Push      *services.PushService
	Users     *services.UserService
	Auth      *services.AuthService
	Foods     *services.FoodService
	Logs      *services.FoodLogService
	Goals     *services.GoalService
	Progress  *services.ProgressService
	Analytics *services.AnalyticsService
	Export    *services.ExportService
}

func NewServices(d Deps) *Services {
	s := &Services{}
	s.Hub = services.NewRealtimeHub()
	events := services.NewEvents(d.Publisher, s.Hub, d.Log)

	s.Push = services.NewPushService(d.DB, d.SNS, d.FCMArn, d.Log)
	s.Alerts = services.NewAlertBus(d.DB, s.Hub, s.Push, d.Log)
	s.Users = services.NewUserService(d.DB, d.Mailer, d.Log)
	s.Auth = services.NewAuthService(d.DB, d.JWT.Secret, d.JWT.TTL)
	s.Foods = services.NewFoodService(d.DB, d.Labeler)
	s.Logs = services.NewFoodLogService(d.DB, events)
	s.Goals = services.NewGoalService(d.DB, events)
	s.Progress = services.NewProgressService(d.DB, s.Logs, s.Foods, s.Goals, s.Alerts)
	s.Analytics = services.NewAnalyticsService(d.DB)
	s.Export = services.NewExportService(s.Progress, d.Store)
	return s
}

func NewHandlers(s *Services, loc *time.Location) Handlers {
	return Handlers{
		Auth:      controllers.NewAuthController(s.Users, s.Auth),
		Users:     controllers.NewUserController(s.Users),
		Foods:     controllers.NewFoodController(s.Foods),
		Logs:      controllers.NewFoodLogController(s.Logs, loc),
		Goals:     controllers.NewGoalController(s.Goals),
		Progress:  controllers.NewProgressController(s.Progress, s.Export, loc),
		Analytics: controllers.NewAnalyticsController(s.Analytics, loc),
		Devices:   controllers.NewDeviceController(s.Push),
		Realtime:  controllers.NewRealtimeController(s.Hub, s.Alerts),
	}
}
