package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tool did not finish")
	}
}

func TestDispatch_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	wait(t, Dispatch(context.Background(), zap.New(core), "refresh", func(ctx context.Context) error {
		return errors.New("boom")
	}))

	entries := logs.FilterMessage("tool failed").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "refresh", entries[0].ContextMap()["tool"])
	}
}

func TestDispatch_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	wait(t, Dispatch(context.Background(), zap.New(core), "explode", func(ctx context.Context) error {
		panic("unexpected")
	}))

	assert.Equal(t, 1, logs.FilterMessage("tool panicked").Len())
}

func TestDispatch_NilLogger(t *testing.T) {
	ran := false
	wait(t, Dispatch(context.Background(), nil, "noop", func(ctx context.Context) error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}
