package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealtimeHub_Broadcast(t *testing.T) {
	hub := NewRealtimeHub()
	registered := make(chan *WSClient, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := &WSClient{UserID: 7, Conn: conn}
		hub.Register(c)
		registered <- c
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unregister(c)
				return
			}
		}
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	c := <-registered
	assert.Equal(t, 1, hub.Connections(7))

	hub.Broadcast(8, map[string]string{"kind": "ignored"})
	hub.Broadcast(7, Event{Kind: EventGoalUpdated, UserID: 7})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventGoalUpdated, got.Kind)
	assert.Equal(t, uint(7), got.UserID)

	hub.Unregister(c)
	hub.Unregister(c)
	assert.Zero(t, hub.Connections(7))
}
