package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	EventFoodLogCreated = "food_log.created"
	EventFoodLogDeleted = "food_log.deleted"
	EventGoalUpdated    = "goal.updated"
	EventAlertCreated   = "alert.created"
)

// EventPublisher ships domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Broadcaster pushes a payload to every live connection of a user.
type Broadcaster interface {
	Broadcast(userID uint, payload any)
}

type Event struct {
	Kind   string    `json:"kind"`
	UserID uint      `json:"user_id"`
	At     time.Time `json:"at"`
	Data   any       `json:"data,omitempty"`
}

// Events fans a domain event out to the broker and to the user's open
// websockets. A nil *Events drops everything.
type Events struct {
	pub EventPublisher
	hub Broadcaster
	log logrus.FieldLogger
}

func NewEvents(pub EventPublisher, hub Broadcaster, log logrus.FieldLogger) *Events {
	return &Events{pub: pub, hub: hub, log: log}
}

func (e *Events) Emit(ctx context.Context, userID uint, kind string, data any) {
	if e == nil {
		return
	}
	ev := Event{Kind: kind, UserID: userID, At: time.Now().UTC(), Data: data}
	if e.pub != nil {
		if err := e.pub.Publish(ctx, kind, ev); err != nil && e.log != nil {
			e.log.WithError(err).WithField("kind", kind).Warn("publish event")
		}
	}
	if e.hub != nil {
		e.hub.Broadcast(userID, ev)
	}
}
