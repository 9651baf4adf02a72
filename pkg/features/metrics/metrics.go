package metrics

import (
	"github.com/DataDog/datadog-go/v5/statsd"
)

const namespace = "grocery."

// Recorder counts handler events. Implementations swallow delivery errors,
// a lost data point must never fail an invocation.
type Recorder interface {
	Incr(name string, tags ...string)
	Count(name string, value int64, tags ...string)
	// Flush pushes buffered points before the Lambda environment is frozen.
	Flush()
}

// NewStatsd connects to a DogStatsD listener such as the Datadog Lambda
// extension. An empty address disables metrics.
func NewStatsd(addr string) (Recorder, error) {
	if addr == "" {
		return Discard, nil
	}

	client, err := statsd.New(addr, statsd.WithNamespace(namespace))
	if err != nil {
		return nil, err
	}

	return &Statsd{Client: client}, nil
}

type Statsd struct {
	Client statsd.ClientInterface
}

func (s *Statsd) Incr(name string, tags ...string) {
	_ = s.Client.Incr(name, tags, 1)
}

func (s *Statsd) Count(name string, value int64, tags ...string) {
	_ = s.Client.Count(name, value, tags, 1)
}

func (s *Statsd) Flush() {
	_ = s.Client.Flush()
}

// Discard drops every data point.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Incr(string, ...string)         {}
func (discard) Count(string, int64, ...string) {}
func (discard) Flush()                         {}
