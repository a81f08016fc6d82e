package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/config"
	"github.com/Bhaskar125/macro-tracking-webapp/routes"
	"github.com/Bhaskar125/macro-tracking-webapp/services"
	"github.com/Bhaskar125/macro-tracking-webapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

// bootstrap loads config, the logger and the database shared by every
// command.
func bootstrap() (*config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := utils.NewLogger(cfg.Log)
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

// integrations wires the optional AWS and RabbitMQ backends into deps.
func integrations(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, deps *routes.Deps) (closeFn func(), err error) {
	closeFn = func() {}
	deps.Publisher = services.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		pub := services.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		deps.Publisher = pub
		closeFn = func() {
			if err := pub.Close(); err != nil {
				log.WithError(err).Warn("close rabbitmq")
			}
		}
	}

	if !cfg.AWS.AWSEnabled() {
		log.Info("AWS_REGION not set; export, push, email and image recognition are disabled")
		return closeFn, nil
	}
	awsCfg, err := utils.LoadAWSConfig(ctx, cfg.AWS.Region)
	if err != nil {
		return closeFn, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.AWS.S3Bucket != "" {
		deps.Store = utils.NewS3Uploader(awsCfg, cfg.AWS.S3Region, cfg.AWS.S3Bucket, cfg.AWS.S3PublicURL)
	}
	if cfg.AWS.SESEmail != "" {
		deps.Mailer = utils.NewMailer(awsCfg, cfg.AWS.SESEmail)
	}
	if cfg.AWS.SNSFCMArn != "" {
		deps.SNS = services.NewSNSClient(awsCfg)
		deps.FCMArn = cfg.AWS.SNSFCMArn
	}
	if cfg.AWS.RekognitionEnabled {
		deps.Labeler = services.NewRekognitionService(awsCfg)
	}
	return closeFn, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := routes.Deps{DB: db, Log: log, Location: cfg.Location()}
	deps.JWT.Secret = cfg.JWT.Secret
	deps.JWT.TTL = cfg.JWT.TTL
	closeIntegrations, err := integrations(ctx, cfg, log, &deps)
	if err != nil {
		return err
	}
	defer closeIntegrations()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gin.SetMode(gin.ReleaseMode)
	r := routes.SetupRouter(routes.NewHandlers(routes.NewServices(deps), deps.Location), routes.Options{
		JWTSecret: []byte(cfg.JWT.Secret),
		Logger:    log,
		Registry:  reg,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
