package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitRejectsBadLevel(t *testing.T) {
	err := Init(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestInitWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	require.NoError(t, Init(Options{Level: "debug", Format: "json", OutputPath: dir, MaxSize: 1}))
	Infow("hello", "k", "v")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "tagsync.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	Errorw("request failed", "status", 500)
	Debugw("detail")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "request failed", logs.All()[0].Message)
	assert.Equal(t, int64(500), logs.All()[0].ContextMap()["status"])
}
