package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := DebugWriter
	DebugWriter = &buf
	t.Cleanup(func() {
		DebugWriter = prev
		SetVerbose(false)
	})
	return &buf
}

func TestDebugfSilentByDefault(t *testing.T) {
	buf := captureDebug(t)

	Debugf("sheet %q: %d tables", "Budget", 2)
	assert.Empty(t, buf.String())
}

func TestDebugfVerbose(t *testing.T) {
	buf := captureDebug(t)

	SetVerbose(true)
	assert.True(t, Verbose())

	Debugf("sheet %q: %d tables", "Budget", 2)
	assert.Equal(t, "debug: sheet \"Budget\": 2 tables\n", buf.String())
}

func TestWriterWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{dest: &buf, format: FormatJSON}

	assert.NoError(t, w.WriteJSON(map[string]int{"tables": 3}))
	assert.Equal(t, "{\n  \"tables\": 3\n}\n", buf.String())
}
