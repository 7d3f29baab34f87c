package main

import "time"

type Timer struct {
	last time.Time
}

func makeTimer() Timer {
	return Timer{last: time.Now()}
}

// tick returns the seconds since the previous tick (or since creation).
func (t *Timer) tick() float64 {
	now := time.Now()
	elapsed := now.Sub(t.last).Seconds()
	t.last = now
	return elapsed
}

// smooth is an exponential moving average so the overlay numbers don't jitter.
func smooth(avg, sample float64) float64 {
	return avg*0.9 + sample*0.1
}
