package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nsxzhou1114/blog-core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestInitLogger_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")
	InitLogger(&config.LogConfig{Level: "warn", Filename: file, MaxSize: 1})
	t.Cleanup(func() {
		Logger = zap.NewNop()
		SugaredLogger = Logger.Sugar()
	})

	Info("ignored")
	Warn("slug冲突", zap.String("slug", "hello"))
	SetLevel("error")
	Warn("ignored too")
	require.NoError(t, Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"msg":"slug冲突"`)
	assert.Contains(t, content, `"slug":"hello"`)
	assert.NotContains(t, content, "ignored")
}
