package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/korylprince/proactiveshield-server/api"
)

//DefaultSensorInterval is the default push interval of the sensor stream
const DefaultSensorInterval = 2 * time.Second

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

//GET /sensor-data/initial
func handleReadInitialSensorData(w http.ResponseWriter, r *http.Request) *handlerResponse {
	sim := api.NewSensorSimulator(api.DefaultSensorWindow, time.Now(), nil)
	return &handlerResponse{Code: http.StatusOK, Body: sim.Window()}
}

//sensorStream pushes simulated sensor readings to websocket clients. Each connection has its own simulator.
type sensorStream struct {
	interval time.Duration
}

func newSensorStream(interval time.Duration) *sensorStream {
	if interval <= 0 {
		interval = DefaultSensorInterval
	}
	return &sensorStream{interval: interval}
}

//GET /sensor-data/stream
func (s *sensorStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go s.readPump(conn, done)
	s.writePump(conn, done, api.NewSensorSimulator(api.DefaultSensorWindow, time.Now(), nil))
}

//readPump discards client messages and closes done when the client goes away
func (s *sensorStream) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
	}
}

func (s *sensorStream) writePump(conn *websocket.Conn, done <-chan struct{}, sim *api.SensorSimulator) {
	ticker := time.NewTicker(s.interval)
	ping := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer ping.Stop()

	write := func(msg *SensorMessage) bool {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return false
		}
		return true
	}

	if !write(&SensorMessage{Type: SensorMessageWindow, Points: sim.Window()}) {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if !write(&SensorMessage{Type: SensorMessagePoint, Points: []api.SensorDataPoint{sim.Next()}}) {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("WebSocket ping error: %v", err)
				return
			}
		}
	}
}
