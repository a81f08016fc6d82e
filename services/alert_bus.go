package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Pusher delivers a mobile notification to a user's devices.
type Pusher interface {
	PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string)
}

// AlertBus persists alerts and fans them out to open sockets and devices.
type AlertBus struct {
	db  *gorm.DB
	rt  Broadcaster
	ps  Pusher
	log logrus.FieldLogger
}

func NewAlertBus(db *gorm.DB, rt Broadcaster, ps Pusher, log logrus.FieldLogger) *AlertBus {
	return &AlertBus{db: db, rt: rt, ps: ps, log: log}
}

// EmitAlert never fails the caller; storage errors are logged.
func (b *AlertBus) EmitAlert(ctx context.Context, userID uint, typ, message string) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now().UTC()}
	if err := b.db.WithContext(ctx).Create(a).Error; err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("store alert")
		return
	}

	if b.rt != nil {
		b.rt.Broadcast(userID, Event{Kind: EventAlertCreated, UserID: userID, At: a.CreatedAt, Data: a})
	}
	if b.ps != nil {
		b.ps.PushToUser(ctx, userID, "New Alert", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

// Recent lists the user's latest alerts, newest first.
func (b *AlertBus) Recent(ctx context.Context, userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []models.Alert
	if err := b.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, dbError(err, "list alerts")
	}
	return out, nil
}
