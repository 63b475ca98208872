package qir

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	LevelInfo = "info"
	LevelWarn = "warn"
)

type Event struct {
	At      time.Time `json:"at"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// Trail is the log of a single merge request. It lives in the request context
// and dies with it; every event is mirrored to the process log.
type Trail struct {
	RequestID string

	mu     sync.Mutex // certificates load concurrently
	events []Event
}

func NewTrail(requestID string) *Trail {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &Trail{RequestID: requestID}
}

func (t *Trail) add(level string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t.mu.Lock()
	t.events = append(t.events, Event{At: time.Now(), Level: level, Message: msg})
	t.mu.Unlock()
	switch level {
	case LevelWarn:
		log.Printf("[WARN][%s] %s", t.RequestID, msg)
	default:
		log.Printf("[INFO][%s] %s", t.RequestID, msg)
	}
}

func (t *Trail) Infof(format string, args ...any) {
	t.add(LevelInfo, format, args...)
}

func (t *Trail) Warnf(format string, args ...any) {
	t.add(LevelWarn, format, args...)
}

// Events returns a copy of the recorded events in order
func (t *Trail) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Ctx Access Helpers

type trailKey struct{}

func WithTrail(ctx context.Context, t *Trail) context.Context {
	return context.WithValue(ctx, trailKey{}, t)
}

func TrailFromContext(ctx context.Context) (*Trail, bool) {
	t, ok := ctx.Value(trailKey{}).(*Trail)
	return t, ok && t != nil
}

// trailOf returns the trail of ctx or a fresh one
func trailOf(ctx context.Context) *Trail {
	if t, ok := TrailFromContext(ctx); ok {
		return t
	}
	return NewTrail("")
}
