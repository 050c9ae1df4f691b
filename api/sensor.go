package api

import (
	"math/rand"
	"sync"
	"time"
)

//SensorDataPoint is one simulated real-time reading
type SensorDataPoint struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Vibration   float64   `json:"vibration"`
	Pressure    float64   `json:"pressure"`
}

//sensor simulation defaults
const (
	DefaultSensorWindow = 10
	SensorStep          = 5 * time.Second
)

//SensorSimulator produces a rolling window of simulated sensor readings.
//The window length never changes; Next drops the oldest point and appends a new one.
type SensorSimulator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	window []SensorDataPoint
}

//NewSensorSimulator returns a SensorSimulator with size points ending at now, SensorStep apart.
//If rnd is nil, a time-seeded source is used.
func NewSensorSimulator(size int, now time.Time, rnd *rand.Rand) *SensorSimulator {
	if size <= 0 {
		size = DefaultSensorWindow
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &SensorSimulator{rnd: rnd, window: make([]SensorDataPoint, size)}
	for i := range s.window {
		s.window[i] = SensorDataPoint{
			Time:        now.Add(-time.Duration(size-i) * SensorStep),
			Temperature: 75 + rnd.Float64()*5,
			Vibration:   1.2 + rnd.Float64()*0.5,
			Pressure:    200 + rnd.Float64()*10,
		}
	}
	return s
}

//Window returns a copy of the current window, oldest first
func (s *SensorSimulator) Window() []SensorDataPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SensorDataPoint{}, s.window...)
}

//Next advances the window by one point and returns the new point
func (s *SensorSimulator) Next() SensorDataPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.window[len(s.window)-1]
	p := SensorDataPoint{
		Time:        last.Time.Add(SensorStep),
		Temperature: 75 + s.rnd.Float64()*10,
		Vibration:   1.2 + s.rnd.Float64()*0.8,
		Pressure:    200 + s.rnd.Float64()*15,
	}

	copy(s.window, s.window[1:])
	s.window[len(s.window)-1] = p
	return p
}
