package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "entries", 100, 10)

	tracker.Start()
	tracker.Update(25)
	tracker.Update(50)
	tracker.Update(110)

	assert.Greater(t, tracker.Elapsed(), time.Duration(0))

	output := buf.String()
	assert.Contains(t, output, "50/100")
	assert.Contains(t, output, "100/100", "should cap at total")
	assert.NotContains(t, output, "110/100")
	assert.Contains(t, output, "100.0%")
	assert.Contains(t, output, "entries/s")
}

func TestProgressTracker_Interval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "entries", 1000, 100)

	tracker.Start()
	tracker.Update(50)
	assert.Empty(t, buf.String(), "below interval should not report")

	tracker.Update(150)
	assert.Contains(t, buf.String(), "150/1000")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "entries", 100, 10)

	tracker.Start()
	tracker.Update(75)
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "100/100")
	assert.Contains(t, output, "\n")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, "entries", 100, 0)

	tracker.Update(50)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Zero(t, tracker.Elapsed())
}
