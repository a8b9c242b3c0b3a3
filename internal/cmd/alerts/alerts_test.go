package alerts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, false)

	w.Success("Saved review for %s", "Blue Door Cafe")
	w.Warning(errors.New("timeout"), "osm failed")
	w.Write(&Alert{Level: LevelInfo, Message: "imported", Details: []string{"dataset: 3"}})

	assert.Equal(t, "✓ Saved review for Blue Door Cafe\n! osm failed: timeout\n- imported\n   dataset: 3\n", buf.String())
}

func TestQuietWriterKeepsProblems(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf, true)

	w.Success("done")
	w.Info("note")
	w.Error(errors.New("boom"), "import failed")

	assert.Equal(t, "✗ import failed: boom\n", buf.String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}
