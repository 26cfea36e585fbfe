// Package storage defines the persistence contract for terminal
// transcripts. Game state itself is never persisted; the transcript is
// an operational record of what each session saw.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable indicates the transcript store cannot accept writes.
var ErrUnavailable = errors.New("transcript storage unavailable")

// Entry kinds.
const (
	KindCommand = "command"
	KindLine    = "line"
	KindChat    = "chat"
)

// Entry is one transcript record.
type Entry struct {
	SessionID  string
	Kind       string
	Actor      string
	Body       string
	RecordedAt time.Time
}

// TranscriptStore persists transcript entries.
type TranscriptStore interface {
	AppendEntry(ctx context.Context, entry Entry) error
	ListEntries(ctx context.Context, sessionID string, limit int) ([]Entry, error)
}
