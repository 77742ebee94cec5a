package okcolor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestLoggerDefaultsToSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("fitted gamut", "id", "p3")
	assert.Contains(t, buf.String(), "fitted gamut")
	assert.Contains(t, buf.String(), "id=p3")

	SetLogger(nil)
	buf.Reset()
	Logger().Debug("dropped")
	assert.Empty(t, buf.String())
}

func TestVersion(t *testing.T) {
	older := OKColorVersion{0, 2, 9}
	assert.True(t, Version.After(older))
	assert.True(t, older.Before(Version))
	assert.True(t, Version.Equal(Version))
	assert.False(t, Version.Before(Version))
	assert.Equal(t, "0.3.0", Version.String())
}
