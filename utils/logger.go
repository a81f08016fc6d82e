package utils

import (
	"net"
	"os"

	"github.com/Bhaskar125/macro-tracking-webapp/config"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const logSource = "macrotrack"

// NewLogger builds the process logger. Shipping to logstash or
// Elasticsearch is enabled by setting their URLs; a sink that cannot be
// reached is reported on the logger itself and skipped.
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stdout

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if cfg.ElasticURL != "" {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{cfg.ElasticURL},
		})
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client")
		} else if hook, err := elogrus.NewAsyncElasticHook(client, logSource, level, cfg.ElasticIndex); err != nil {
			logger.WithError(err).Warn("elasticsearch hook")
		} else {
			logger.Hooks.Add(hook)
		}
	}

	if cfg.LogstashURL != "" {
		conn, err := net.Dial("udp", cfg.LogstashURL)
		if err != nil {
			logger.WithError(err).Warn("logstash dial")
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": logSource}))
			logger.Hooks.Add(hook)
		}
	}

	return logger
}
