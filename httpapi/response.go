package httpapi

import "github.com/korylprince/proactiveshield-server/api"

//Sensor stream message types
const (
	SensorMessageWindow = "window"
	SensorMessagePoint  = "point"
)

//SensorMessage is pushed over the sensor stream. The first message is the full window; every later one is a single new point.
type SensorMessage struct {
	Type   string                `json:"type"`
	Points []api.SensorDataPoint `json:"points"`
}
