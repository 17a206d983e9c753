package enum

// DropStage names the pipeline stage that rejected a row.
type DropStage uint8

const (
	DropStageUnknown DropStage = iota
	DropStageSchema
	DropStageNormalization
	DropStageFilter
	DropStageDuplicate
	DropStageReference
)

func (s DropStage) String() string {
	switch s {
	case DropStageSchema:
		return "schema"
	case DropStageNormalization:
		return "normalization"
	case DropStageFilter:
		return "filter"
	case DropStageDuplicate:
		return "duplicate"
	case DropStageReference:
		return "reference"
	default:
		return "unknown"
	}
}
