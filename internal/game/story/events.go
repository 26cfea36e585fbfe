package story

import (
	"time"

	"github.com/miragecorp/mirageos/internal/game/session"
)

// TriggerKind is the closed set of event trigger shapes.
type TriggerKind int

const (
	// TimeElapsed fires once the session is older than Seconds.
	TimeElapsed TriggerKind = iota
	// FileViewed fires once Path has been cat'ed.
	FileViewed
	// ProgressReached fires once progression reaches Stage.
	ProgressReached
)

// Event is one scripted narrative beat. Each fires at most once.
type Event struct {
	Name    string
	Kind    TriggerKind
	Seconds int
	Path    string
	Stage   session.Stage
	Action  func()

	fired bool
}

// Fired reports whether the event already ran.
func (e *Event) Fired() bool {
	return e.fired
}

// Engine evaluates the event table against live session state. The
// owning run loop calls Evaluate on a one-second cadence and after
// every progression or discovery mutation.
type Engine struct {
	sess    *session.Session
	now     func() time.Time
	started time.Time
	events  []*Event
}

// NewEngine returns an engine over the given event table. A nil now
// uses the wall clock; the session's age is measured from this call.
func NewEngine(sess *session.Session, now func() time.Time, events []*Event) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		sess:    sess,
		now:     now,
		started: now(),
		events:  events,
	}
}

// Evaluate fires every unfired event whose trigger condition holds. It
// reports how many events fired.
func (e *Engine) Evaluate() int {
	elapsed := int(e.now().Sub(e.started) / time.Second)

	fired := 0
	for _, evt := range e.events {
		if evt.fired || !e.ready(evt, elapsed) {
			continue
		}
		evt.fired = true
		fired++
		evt.Action()
	}
	return fired
}

func (e *Engine) ready(evt *Event, elapsed int) bool {
	switch evt.Kind {
	case TimeElapsed:
		return elapsed >= evt.Seconds
	case FileViewed:
		return e.sess.Discovered(evt.Path)
	case ProgressReached:
		return e.sess.Progress().AtLeast(evt.Stage)
	default:
		return false
	}
}
