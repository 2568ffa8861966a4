package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuild_JSONLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "warn", JSON: true, Out: &buf})
	l.Info("hidden")
	l.Warn("shown", zap.String("k", "v"))
	cleanup()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":"v"`)
}

func TestBuild_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "loud", JSON: true, Out: &buf})
	l.Debug("debug-line")
	l.Info("info-line")
	cleanup()
	assert.NotContains(t, buf.String(), "debug-line")
	assert.Contains(t, buf.String(), "info-line")
}

func TestBuild_RotateFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer
	l, cleanup := Build(Options{
		Level: "info", JSON: true, Out: &buf,
		Rotate: FileRotate{Enable: true, Filename: file, MaxSizeMB: 1},
	})
	l.Info("to-file")
	cleanup()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), "to-file")
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup := Build(Options{Level: "debug", JSON: true, Out: &buf})
	ToPrintf(l, zapcore.WarnLevel).Printf("slow sql %dms", 250)
	cleanup()
	assert.Contains(t, buf.String(), "slow sql 250ms")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
