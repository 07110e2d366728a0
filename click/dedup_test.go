package click

import (
	"testing"
	"time"
)

func TestDedupFlagsRepeatedPairWithinWindow(t *testing.T) {
	d := NewDedup(time.Hour, 1000)
	if d.Seen("1.2.3.4", "station-1") {
		t.Fatal("first sighting must not be a duplicate")
	}
	if !d.Seen("1.2.3.4", "station-1") {
		t.Fatal("second sighting within the window must be a duplicate")
	}
	if d.Seen("1.2.3.4", "station-2") {
		t.Fatal("a different station from the same ip must not be a duplicate")
	}
}

func TestDedupRotatesAfterTwoValidTimeouts(t *testing.T) {
	// Entries survive the current-then-previous rotation (up to ~2x
	// validTimeout) before they're fully evicted, so two rotations must
	// elapse before a sighting is guaranteed gone.
	d := NewDedup(10*time.Millisecond, 1000)
	d.Seen("1.2.3.4", "station-1")

	time.Sleep(15 * time.Millisecond)
	d.Seen("1.2.3.4", "station-2") // triggers rotation #1

	time.Sleep(15 * time.Millisecond)
	d.Seen("1.2.3.4", "station-3") // triggers rotation #2, evicts station-1

	if d.Seen("1.2.3.4", "station-1") {
		t.Fatal("entry should have fully aged out after two rotations")
	}
}
