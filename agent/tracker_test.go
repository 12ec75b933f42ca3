package agent

import (
	"fmt"
	"testing"
	"time"
)

func TestTrackerRecordsInOrder(t *testing.T) {
	tr := &ToolCallTracker{}
	tr.Record("a", map[string]any{"x": 1}, "ok", 5*time.Millisecond, nil)
	tr.Record("b", nil, nil, time.Millisecond, fmt.Errorf("failed"))

	recs := tr.Calls()
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Name != "a" || recs[0].Error != "" || recs[0].Result != "ok" {
		t.Errorf("first record wrong: %+v", recs[0])
	}
	if recs[1].Name != "b" || recs[1].Error != "failed" {
		t.Errorf("second record wrong: %+v", recs[1])
	}
	if recs[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestTrackerCallsFor(t *testing.T) {
	tr := &ToolCallTracker{}
	tr.Record("a", nil, 1, 0, nil)
	tr.Record("b", nil, 2, 0, nil)
	tr.Record("a", nil, 3, 0, nil)

	recs := tr.CallsFor("a")
	if len(recs) != 2 || recs[0].Result != 1 || recs[1].Result != 3 {
		t.Errorf("CallsFor returned %+v", recs)
	}
}

func TestTrackerReset(t *testing.T) {
	tr := &ToolCallTracker{}
	tr.Record("a", nil, nil, 0, nil)
	tr.Reset()
	if tr.Len() != 0 {
		t.Errorf("expected empty tracker after reset, got %d records", tr.Len())
	}
}

func TestTrackerCallsReturnsCopy(t *testing.T) {
	tr := &ToolCallTracker{}
	tr.Record("a", nil, nil, 0, nil)

	recs := tr.Calls()
	recs[0].Name = "mutated"

	if tr.Calls()[0].Name != "a" {
		t.Error("mutating the returned slice leaked into the tracker")
	}
}
