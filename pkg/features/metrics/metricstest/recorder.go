// Package metricstest records metrics in memory for assertions.
package metricstest

import "sync"

type Recorder struct {
	mu      sync.Mutex
	Totals  map[string]int64
	Flushes int
}

func (r *Recorder) Incr(name string, tags ...string) {
	r.Count(name, 1, tags...)
}

func (r *Recorder) Count(name string, value int64, tags ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Totals == nil {
		r.Totals = map[string]int64{}
	}
	r.Totals[name] += value
}

func (r *Recorder) Flush() {
	r.mu.Lock()
	r.Flushes++
	r.mu.Unlock()
}

// Total returns the accumulated value of a metric.
func (r *Recorder) Total(name string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Totals[name]
}
