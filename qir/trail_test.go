package qir_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/qir"
)

func TestTrail(t *testing.T) {
	trail := qir.NewTrail("req-1")
	trail.Infof("loaded %d pages", 3)
	trail.Warnf("dropped %q", "Mill TC")

	events := trail.Events()
	require.Len(t, events, 2)
	assert.Equal(t, qir.LevelInfo, events[0].Level)
	assert.Equal(t, "loaded 3 pages", events[0].Message)
	assert.Equal(t, qir.LevelWarn, events[1].Level)
	assert.Equal(t, `dropped "Mill TC"`, events[1].Message)
	assert.False(t, events[0].At.IsZero())

	// copies
	events[0].Message = "changed"
	assert.Equal(t, "loaded 3 pages", trail.Events()[0].Message)
}

func TestTrail_GeneratesRequestID(t *testing.T) {
	a, b := qir.NewTrail(""), qir.NewTrail("")
	assert.NotEmpty(t, a.RequestID)
	assert.NotEqual(t, a.RequestID, b.RequestID)
}

func TestTrail_Context(t *testing.T) {
	_, ok := qir.TrailFromContext(context.Background())
	assert.False(t, ok)

	trail := qir.NewTrail("abc")
	got, ok := qir.TrailFromContext(qir.WithTrail(context.Background(), trail))
	require.True(t, ok)
	assert.Same(t, trail, got)
}

func TestTrail_ConcurrentWrites(t *testing.T) {
	trail := qir.NewTrail("concurrent")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			trail.Infof("event %d", i)
		}()
	}
	wg.Wait()
	assert.Len(t, trail.Events(), 20)
}
