package anim

import "time"

const defaultStatsWindow = 60

// FrameStats keeps a rolling window of frame timings for the stats overlay.
type FrameStats struct {
	starts    []time.Time
	durations []time.Duration
	next      int
	filled    bool
	frames    uint64
}

// NewFrameStats returns stats over the last window frames.
func NewFrameStats(window int) *FrameStats {
	if window <= 1 {
		window = defaultStatsWindow
	}
	return &FrameStats{
		starts:    make([]time.Time, window),
		durations: make([]time.Duration, window),
	}
}

// Record notes a frame that ran from start to end.
func (s *FrameStats) Record(start, end time.Time) {
	s.starts[s.next] = start
	s.durations[s.next] = end.Sub(start)
	s.next = (s.next + 1) % len(s.starts)
	if s.next == 0 {
		s.filled = true
	}
	s.frames++
}

// Frames returns the total number of recorded frames.
func (s *FrameStats) Frames() uint64 {
	return s.frames
}

func (s *FrameStats) count() int {
	if s.filled {
		return len(s.starts)
	}
	return s.next
}

// FPS returns frames per second across the window, 0 until two frames
// have been recorded.
func (s *FrameStats) FPS() float64 {
	n := s.count()
	if n < 2 {
		return 0
	}
	newest := s.starts[(s.next-1+len(s.starts))%len(s.starts)]
	oldest := s.starts[0]
	if s.filled {
		oldest = s.starts[s.next]
	}
	span := newest.Sub(oldest).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(n-1) / span
}

// FrameTime returns the mean time spent per frame in the window.
func (s *FrameStats) FrameTime() time.Duration {
	n := s.count()
	if n == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < n; i++ {
		total += s.durations[i]
	}
	return total / time.Duration(n)
}
