package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplogConsole(t *testing.T) {
	t.Run("prefixes by level and hides debug", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := NewSplogWithOptions(SplogOptions{Writer: &out})
		require.NoError(t, err)

		splog.Info("plain %d", 1)
		splog.Warn("careful")
		splog.Error("broken: %s", "x")
		splog.Tip("try this")
		splog.Success("done")
		splog.Debug("hidden")

		assert.Equal(t, "plain 1\n⚠️  careful\n❌ broken: x\n💡 try this\n✅ done\n", out.String())
	})

	t.Run("debug mode shows debug output", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := NewSplogWithOptions(SplogOptions{Writer: &out, Debug: true})
		require.NoError(t, err)

		splog.Debug("git %s", "status")
		assert.Equal(t, "git status\n", out.String())
	})

	t.Run("quiet silences the console", func(t *testing.T) {
		var out bytes.Buffer
		splog, err := NewSplogWithOptions(SplogOptions{Writer: &out})
		require.NoError(t, err)

		splog.SetQuiet(true)
		splog.Info("hidden")
		splog.Page("hidden page\n")
		splog.Newline()
		assert.Empty(t, out.String())

		splog.SetQuiet(false)
		splog.Page("page")
		splog.Newline()
		assert.Equal(t, "page\n", out.String())
	})
}

func TestSplogLogFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "snap.log")
	splog, err := NewSplogWithOptions(SplogOptions{Writer: &out, LogFile: path})
	require.NoError(t, err)

	splog.SetQuiet(true)
	splog.Debug("git fetch origin main")
	splog.Warn("offline")
	require.NoError(t, splog.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "level=DEBUG")
	assert.Contains(t, content, `msg="git fetch origin main"`)
	assert.Contains(t, content, "level=WARN")
	assert.Contains(t, content, "pid="+strconv.Itoa(os.Getpid()))
	assert.Empty(t, out.String())
}

func TestRotatingFileSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SNAP_LOG_MAX_SIZE", "")
		t.Setenv("SNAP_LOG_MAX_BACKUPS", "")
		t.Setenv("SNAP_LOG_MAX_AGE", "")

		file := newRotatingFile("snap.log")
		assert.Equal(t, 1, file.MaxSize)
		assert.Equal(t, 2, file.MaxBackups)
		assert.Equal(t, 30, file.MaxAge)
	})

	t.Run("environment overrides and invalid values", func(t *testing.T) {
		t.Setenv("SNAP_LOG_MAX_SIZE", "5")
		t.Setenv("SNAP_LOG_MAX_BACKUPS", "0")
		t.Setenv("SNAP_LOG_MAX_AGE", "-3")

		file := newRotatingFile("snap.log")
		assert.Equal(t, 5, file.MaxSize)
		assert.Equal(t, 0, file.MaxBackups)
		assert.Equal(t, 30, file.MaxAge)
	})
}
