package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jobsync/internal/adapters/logger"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing uncolored output to a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_InfoAndWarn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("loaded 3 bookmarks")
	lg.Warn("ignoring unreadable value stored under bookmarkedIds")

	g := goldie.New(t)
	g.Assert(t, "info_warn", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "plain error",
			err:        errors.New("permission denied"),
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("connection refused"), "failed to reach job API"),
				"search failed",
			),
			goldenName: "error_chain",
		},
		{
			name:       "network error with metadata",
			err:        zerr.With(&domain.NetworkError{StatusCode: 404, Description: "not found"}, "query", "job-item/9"),
			goldenName: "error_network",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("hello")
	lg.Error(zerr.With(zerr.New("search failed"), "query", "job-items/go"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"msg":"operation failed"`)
	assert.Contains(t, out, `"level":"ERROR"`)

	lg.SetJSON(false)
	buf.Reset()
	lg.Info("plain")
	assert.Equal(t, "plain\n", buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	err := zerr.Wrap(zerr.With(errors.New("eof"), "key", "v"), "read failed")
	assert.Equal(t, []string{"read failed", "eof"}, logger.CollectErrorEntries(err))
	assert.Equal(t, "Error: read failed\n\n  Caused by:\n    → eof",
		logger.FormatErrorEntries(logger.CollectErrorEntries(err)))
}
