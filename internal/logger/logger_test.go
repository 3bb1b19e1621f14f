package logger

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// resetLogger clears the package state so each test starts fresh.
func resetLogger() {
	defaultLogger = nil
	once = *new(sync.Once)
}

func TestLogger_LevelFiltering(t *testing.T) {
	resetLogger()
	Init("warn")
	SetColorEnable(false)

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestLogger_SetLevel(t *testing.T) {
	resetLogger()
	Init("info")
	SetColorEnable(false)

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	SetLevel("debug")
	Debug("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestLogger_LevelNamesInOutput(t *testing.T) {
	resetLogger()
	Init("debug")
	SetColorEnable(false)

	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("something odd")
	assert.Contains(t, buf.String(), "[WARN] something odd")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, parseLevel("debug"))
	assert.Equal(t, WARN, parseLevel("WARNING"))
	assert.Equal(t, ERROR, parseLevel("error"))
	// Unknown levels default to INFO.
	assert.Equal(t, INFO, parseLevel("verbose"))
}
