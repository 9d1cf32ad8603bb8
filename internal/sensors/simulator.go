package sensors

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Simulator produces a plausible climb without hardware: a slow ascent
// with noise on every channel. Used when SENSOR_MODE=simulated and by
// tests that need a never-failing provider.
type Simulator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	start time.Time

	baseLat float64
	baseLon float64
	baseAlt float64
	climbMS float64 // vertical meters per second of simulated climb
}

func NewSimulator(seed int64) *Simulator {
	return &Simulator{
		rng:     rand.New(rand.NewSource(seed)),
		start:   time.Now(),
		baseLat: 45.9763,
		baseLon: 7.6586,
		baseAlt: 1608,
		climbMS: 0.4,
	}
}

func (s *Simulator) Acceleration(_ context.Context) (Acceleration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Acceleration{
		X:  s.rng.NormFloat64() * 0.8,
		Y:  s.rng.NormFloat64() * 0.8,
		Z:  9.81 + s.rng.NormFloat64()*0.5,
		TS: time.Now().UnixMilli(),
	}, nil
}

func (s *Simulator) AltitudeReading(_ context.Context) (Altitude, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alt := s.altitudeLocked()
	return Altitude{
		Altitude: alt + s.rng.NormFloat64()*0.3,
		Pressure: pressureAt(alt),
		TS:       time.Now().UnixMilli(),
	}, nil
}

func (s *Simulator) Location(_ context.Context) (Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := time.Since(s.start).Seconds()
	return Location{
		Lat:      s.baseLat + elapsed*1e-6 + s.rng.NormFloat64()*1e-6,
		Lon:      s.baseLon + elapsed*1e-6 + s.rng.NormFloat64()*1e-6,
		Altitude: s.altitudeLocked() + s.rng.NormFloat64()*2,
		Speed:    0.5 + s.rng.Float64()*0.3,
		TS:       time.Now().UnixMilli(),
	}, nil
}

func (s *Simulator) altitudeLocked() float64 {
	return s.baseAlt + time.Since(s.start).Seconds()*s.climbMS
}

// pressureAt approximates the barometric formula for the troposphere.
func pressureAt(altitude float64) float64 {
	return 1013.25 * math.Pow(1-2.25577e-5*altitude, 5.25588)
}
