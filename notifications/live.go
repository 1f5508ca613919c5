package notifications

import (
	"context"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/realtime"
)

const liveAlertMessageType = "alert.created"

// RoomBroadcaster is the part of realtime.Hub that live push needs.
type RoomBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// LivePush pushes every new alert to the websocket room of its owner.
type LivePush struct {
	hub RoomBroadcaster
}

func NewLivePush(hub RoomBroadcaster) *LivePush {
	return &LivePush{hub: hub}
}

func (l *LivePush) AlertsCreated(ctx context.Context, alerts []*models.Alert) {
	for _, a := range alerts {
		l.hub.BroadcastToRoom(realtime.UserRoom(a.UserID), realtime.Message{
			Type:    liveAlertMessageType,
			Payload: a,
		})
	}
}
