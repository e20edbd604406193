package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	AverageChanged       float64
	TotalGenerations     int
	TotalWrites          int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update folds one tick into the running figures. sinceLast is the wall time since the previous tick.
func (s *Stats) Update(generation, population, changed int, sinceLast time.Duration) {
	s.TotalGenerations = generation
	s.TotalWrites += changed
	if sinceLast > 0 {
		s.GenerationsPerSecond = 1.0 / sinceLast.Seconds()
	}

	// Simple moving averages
	if s.TotalGenerations <= 1 {
		s.AveragePopulation = float64(population)
		s.AverageChanged = float64(changed)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
		s.AverageChanged = (s.AverageChanged * 0.9) + (float64(changed) * 0.1)
	}
}

// Runtime returns the time elapsed since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
