package live

import (
	"encoding/json"
	"sync"

	"github.com/TyCGroup/serviciosgenerales/models"
	"github.com/gorilla/websocket"
)

// Event types pushed to connected dashboards. They replace the
// polling the client would otherwise do after every write.
const (
	EventRecordCreated   = "record_created"
	EventReportReviewed  = "report_reviewed"
	EventUserUpdated     = "user_updated"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected client (admin dashboards and cleaner
// screens) keyed by role.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastRecordCreated announces a fresh cleaning record.
func BroadcastRecordCreated(entry models.CleaningLog) {
	broadcast(Message{
		Event: EventRecordCreated,
		Data:  entry,
	})
}

// BroadcastReportReviewed announces a report review.
func BroadcastReportReviewed(entry models.CleaningLog) {
	broadcast(Message{
		Event: EventReportReviewed,
		Data:  entry,
	})
}

// BroadcastUserUpdated announces an account change so open admin
// screens refresh their user list.
func BroadcastUserUpdated(user models.User) {
	broadcast(Message{
		Event: EventUserUpdated,
		Data:  user,
	})
}

// BroadcastDashboardUpdate pushes recomputed dashboard data.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			continue
		}
	}
}
