package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a dispatch record is recorded
	st.RecordDispatch(DispatchRecord{
		PID:      1,
		Clock:    1000,
		Response: 12,
	})

	// THEN the trace contains one dispatch record with correct data
	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].PID != 1 {
		t.Errorf("expected PID 1, got %d", st.Dispatches[0].PID)
	}
	if st.Dispatches[0].Response != 12 {
		t.Errorf("expected response 12, got %d", st.Dispatches[0].Response)
	}
}

func TestSimulationTrace_RecordAllocation_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a failed allocation attempt is recorded
	st.RecordAllocation(AllocationRecord{
		PID:       4,
		Label:     "editor",
		SizeKB:    512,
		Placement: "best-fit",
		Succeeded: false,
		Reason:    "no free block large enough",
	})

	// THEN the trace contains one allocation record with correct data
	if len(st.Allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(st.Allocations))
	}
	if st.Allocations[0].Succeeded {
		t.Error("expected succeeded=false")
	}
	if st.Allocations[0].Placement != "best-fit" {
		t.Errorf("expected placement best-fit, got %s", st.Allocations[0].Placement)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordDispatch(DispatchRecord{PID: 1, Clock: 0, Response: 0})
	st.RecordDispatch(DispatchRecord{PID: 2, Clock: 3, Response: 3})
	st.RecordCompletion(CompletionRecord{PID: 1, Clock: 3, Wait: 0, Turnaround: 3})

	// THEN order is preserved
	if len(st.Dispatches) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].PID != 1 || st.Dispatches[1].PID != 2 {
		t.Error("dispatch order not preserved")
	}
	if len(st.Completions) != 1 || st.Completions[0].PID != 1 {
		t.Error("completion record mismatch")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
