package report

import (
	"testing"

	"github.com/google/uuid"

	"mdcleaner/internal/ledger"
	"mdcleaner/internal/model"
	"mdcleaner/internal/model/enum"
)

func TestPartitionInvariant(t *testing.T) {
	led := ledger.New()
	led.Append(model.DropRecord{RowIndex: 1, Stage: enum.DropStageNormalization, Reason: enum.DropReasonInvalidPrice})
	led.Append(model.DropRecord{RowIndex: 2, Stage: enum.DropStageDuplicate, Reason: enum.DropReasonDuplicate})
	led.Append(model.DropRecord{RowIndex: 3, Stage: enum.DropStageReference, Reason: enum.DropReasonUnmatchedInstrument})

	runID := uuid.New()
	s := Build(runID, 4, led)

	if s.RunID != runID {
		t.Fatalf("run id = %s, want %s", s.RunID, runID)
	}
	if s.RetainedRows != 4 {
		t.Fatalf("retained = %d, want 4", s.RetainedRows)
	}
	if s.InputRows != s.RetainedRows+s.TotalDropped() {
		t.Fatalf("partition violated: input %d != retained %d + dropped %d",
			s.InputRows, s.RetainedRows, s.TotalDropped())
	}
	if s.DroppedByReason[enum.DropReasonDuplicate] != 1 {
		t.Fatalf("counts = %v", s.DroppedByReason)
	}
}

func TestBuildIsRecomputable(t *testing.T) {
	led := ledger.New()
	led.Append(model.DropRecord{RowIndex: 0, Stage: enum.DropStageNormalization, Reason: enum.DropReasonInvalidDate})

	runID := uuid.New()
	first := Build(runID, 2, led)
	second := Build(runID, 2, led)

	if first.InputRows != second.InputRows || first.RetainedRows != second.RetainedRows {
		t.Fatal("summary must be a pure function of its inputs")
	}
}

func TestEmptyLedger(t *testing.T) {
	s := Build(uuid.New(), 0, ledger.New())
	if s.InputRows != 0 || s.TotalDropped() != 0 {
		t.Fatalf("summary = %+v, want all zero", s)
	}
}
