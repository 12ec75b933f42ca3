package agent

import "time"

// ToolCallRecord captures one tool execution attempt for diagnostics. It is
// independent of conversation memory and never feeds back into the loop.
type ToolCallRecord struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
	Result    any            `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	Duration  time.Duration  `json:"duration"`
	Timestamp time.Time      `json:"timestamp"`
}

// ToolCallTracker is an append-only log of tool execution attempts. Record
// never fails; diagnostics must not disturb the turn.
type ToolCallTracker struct {
	records []ToolCallRecord
}

// Record appends one execution attempt.
func (t *ToolCallTracker) Record(name string, args map[string]any, result any, duration time.Duration, execErr error) {
	rec := ToolCallRecord{
		Name:      name,
		Arguments: args,
		Result:    result,
		Duration:  duration,
		Timestamp: time.Now(),
	}
	if execErr != nil {
		rec.Error = execErr.Error()
	}
	t.records = append(t.records, rec)
}

// Calls returns a copy of all recorded attempts in order.
func (t *ToolCallTracker) Calls() []ToolCallRecord {
	out := make([]ToolCallRecord, len(t.records))
	copy(out, t.records)
	return out
}

// CallsFor returns the recorded attempts for one tool, in order.
func (t *ToolCallTracker) CallsFor(name string) []ToolCallRecord {
	var out []ToolCallRecord
	for _, rec := range t.records {
		if rec.Name == name {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of recorded attempts.
func (t *ToolCallTracker) Len() int {
	return len(t.records)
}

// Reset clears the log.
func (t *ToolCallTracker) Reset() {
	t.records = nil
}
