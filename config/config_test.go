package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9091")
	t.Setenv("APP_TIMEZONE", "Asia/Colombo")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("AWS_REGION", "ap-south-1")
	t.Setenv("S3_BUCKET", "exports")
	t.Setenv("JWT_TTL", "1h")

	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 9091, cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "ap-south-1", cfg.AWS.S3Region)
	assert.True(t, cfg.AWS.AWSEnabled())
	assert.Equal(t, "Asia/Colombo", cfg.Location().String())
}

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")

	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, "macrotrack.events", cfg.RabbitMQ.Exchange)
	assert.False(t, cfg.AWS.AWSEnabled())
}

func TestFromViper_Invalid(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := fromViper(viper.New())
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")
		_, err := fromViper(viper.New())
		assert.ErrorContains(t, err, "APP_TIMEZONE")
	})
	t.Run("bad driver", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("DB_DRIVER", "mysql")
		_, err := fromViper(viper.New())
		assert.ErrorContains(t, err, "DB_DRIVER")
	})
}

func TestInitDB_SQLite(t *testing.T) {
	db, err := InitDB(DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.Same(t, db, DB)
	assert.True(t, db.Migrator().HasTable("food_logs"))
}
