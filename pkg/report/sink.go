package report

import (
	"sync"

	"github.com/arthur-debert/targetenv/pkg/requirement"
	"github.com/arthur-debert/targetenv/pkg/versions"
	"github.com/rs/zerolog"
)

// Kind distinguishes plugin and built-in events.
type Kind string

const (
	KindPlugin  Kind = "plugin"
	KindBuiltIn Kind = "built-in"
)

// Event reports one required feature.
type Event struct {
	Kind     Kind                 `json:"kind"`
	Decision requirement.Decision `json:"decision"`
}

// Sink receives debug events.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit implements Sink.
func (f SinkFunc) Emit(e Event) { f(e) }

// Session suppresses repeated events within one run. The zero value is ready
// to use and safe for concurrent use.
type Session struct {
	mu   sync.Mutex
	seen map[string]bool
}

// First reports whether key has not been seen before, and marks it seen.
func (s *Session) First(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	return true
}

// Reset forgets every key.
func (s *Session) Reset() {
	s.mu.Lock()
	s.seen = nil
	s.mu.Unlock()
}

// Dedup forwards each distinct event to next once per session.
func Dedup(session *Session, next Sink) Sink {
	return SinkFunc(func(e Event) {
		if session.First(string(e.Kind) + "\x00" + e.Decision.Feature) {
			next.Emit(e)
		}
	})
}

// Collector keeps every event in order.
type Collector struct {
	mu     sync.Mutex
	Events []Event
}

// Emit implements Sink.
func (c *Collector) Emit(e Event) {
	c.mu.Lock()
	c.Events = append(c.Events, e)
	c.mu.Unlock()
}

// LogSink writes events to a zerolog logger at debug level.
type LogSink struct {
	Logger zerolog.Logger
}

// Emit implements Sink.
func (l LogSink) Emit(e Event) {
	ev := l.Logger.Debug().
		Str("kind", string(e.Kind)).
		Str("feature", e.Decision.Feature)
	if e.Decision.Reason != requirement.ReasonTargets {
		ev = ev.Str("reason", string(e.Decision.Reason))
	}
	ev.Interface("targets", TriggerMap(e.Decision.Triggers)).
		Msg("Feature required")
}

// TriggerMap renders triggers as environment to prettified target version.
func TriggerMap(triggers []requirement.Trigger) map[string]string {
	out := make(map[string]string, len(triggers))
	for _, t := range triggers {
		out[t.Environment] = versions.Prettify(t.Target)
	}
	return out
}
