//go:build test

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestSetup_Defaults(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	cl, err := Setup(Options{Name: "defaults-app", Dir: t.TempDir()})
	require.NoError(t, err)
	defer cl.Close()

	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	c, ok := cl.(*closer)
	require.True(t, ok)
	require.Len(t, c.closers, 1)

	mainFile, ok := c.closers[0].(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, defaultMaxSizeMB, mainFile.MaxSize)
	assert.Equal(t, defaultMaxBackups, mainFile.MaxBackups)
}

func TestSetup_WritesRoutedFiles(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	dir := t.TempDir()
	cl, err := Setup(Options{
		Name:              "routed-app",
		Dir:               dir,
		Level:             TraceLevel,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
	})
	require.NoError(t, err)

	WithComponent("test").Info("info message")
	WithComponentAndFields("test", Fields{"url": "https://amzn.eu/d/x"}).Error("error message")
	WithComponent("test").Debug("debug message")

	require.NoError(t, cl.Close())

	read := func(name string) string {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(b)
	}

	mainLog := read("routed-app.log")
	assert.Contains(t, mainLog, "info message")
	assert.Contains(t, mainLog, "error message")
	assert.NotContains(t, mainLog, "debug message")
	assert.Contains(t, mainLog, "component=test")

	assert.Contains(t, read("routed-app.critical.log"), "error message")
	assert.Contains(t, read("routed-app.verbose.log"), "debug message")
}

func TestSetup_OnlyOnce(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	first, err := Setup(Options{Name: "once-app", Dir: t.TempDir()})
	require.NoError(t, err)
	defer first.Close()

	second, err := Setup(Options{Name: "ignored", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSetDebugMode(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	SetDebugMode(true)
	assert.Equal(t, TraceLevel, logrus.GetLevel())
	assert.True(t, IsDebugEnabled())

	SetDebugMode(false)
	assert.Equal(t, InfoLevel, logrus.GetLevel())
	assert.False(t, IsDebugEnabled())
}
