package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	name     string
	success  bool
	duration time.Duration
	calls    int
}

func (h *recordingHandler) OnCommandComplete(name string, success bool, duration time.Duration) {
	h.name, h.success, h.duration = name, success, duration
	h.calls++
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fnErr       error
		wantSuccess bool
	}{
		"success": {wantSuccess: true},
		"failure": {fnErr: errors.New("boom")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			h := &recordingHandler{}

			err := Run(h, "draft", func() error { return tt.fnErr })

			assert.Equal(t, tt.fnErr, err)
			assert.Equal(t, 1, h.calls)
			assert.Equal(t, "draft", h.name)
			assert.Equal(t, tt.wantSuccess, h.success)
			assert.GreaterOrEqual(t, h.duration, time.Duration(0))
		})
	}
}

func TestRun_NilHandler(t *testing.T) {
	t.Parallel()
	called := false
	assert.NoError(t, Run(nil, "bump", func() error { called = true; return nil }))
	assert.True(t, called)
}

func TestLogHandler(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		NewLogHandler().OnCommandComplete("draft", true, 1500*time.Millisecond)
	})
}
