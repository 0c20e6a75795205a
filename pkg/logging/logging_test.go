package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestInitAndWrite(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: log.DebugLevel, Output: &buf, Metadata: map[string]any{"component": "test"}})
	defer Init(Config{Level: log.InfoLevel})

	Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "key")
	assert.Contains(t, out, "component")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: log.WarnLevel, Output: &buf})
	defer Init(Config{Level: log.InfoLevel})

	Debug("too quiet")
	Info("still too quiet")
	Warn("audible")

	out := buf.String()
	assert.NotContains(t, out, "too quiet")
	assert.Contains(t, out, "audible")
}

func TestScopeOverridesAndRestores(t *testing.T) {
	var baseBuf, scopedBuf bytes.Buffer

	Init(Config{Level: log.InfoLevel, Output: &baseBuf})
	defer Init(Config{Level: log.InfoLevel})

	restore := Scope(Config{Level: log.InfoLevel, Output: &scopedBuf})
	Info("scoped message")
	restore()

	Info("base message")

	assert.Contains(t, scopedBuf.String(), "scoped message")
	assert.NotContains(t, scopedBuf.String(), "base message")
	assert.Contains(t, baseBuf.String(), "base message")
	assert.NotContains(t, baseBuf.String(), "scoped message")
}

func TestScopeStackIsLIFO(t *testing.T) {
	var outer, inner bytes.Buffer

	Init(Config{Level: log.InfoLevel})
	defer Init(Config{Level: log.InfoLevel})

	restoreOuter := Scope(Config{Level: log.InfoLevel, Output: &outer})
	restoreInner := Scope(Config{Level: log.InfoLevel, Output: &inner})

	Info("innermost wins")

	restoreInner()
	Info("outer active")

	restoreOuter()

	assert.Contains(t, inner.String(), "innermost wins")
	assert.NotContains(t, outer.String(), "innermost wins")
	assert.Contains(t, outer.String(), "outer active")
}

func TestOutOfOrderPopIsNotFatal(t *testing.T) {
	Init(Config{Level: log.InfoLevel})
	defer Init(Config{Level: log.InfoLevel})

	var first, second bytes.Buffer

	restoreFirst := Scope(Config{Level: log.InfoLevel, Output: &first})
	restoreSecond := Scope(Config{Level: log.InfoLevel, Output: &second})

	// Popping the outer scope first leaves the inner scope active.
	restoreFirst()

	Info("after misordered pop")
	assert.True(t, strings.Contains(second.String(), "after misordered pop"))

	restoreSecond()
}

func TestDoublePopIsNoOp(t *testing.T) {
	Init(Config{Level: log.InfoLevel})
	defer Init(Config{Level: log.InfoLevel})

	restore := Scope(Config{Level: log.InfoLevel, Output: &bytes.Buffer{}})
	restore()
	restore()
}
