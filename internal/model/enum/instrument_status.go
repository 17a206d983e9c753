package enum

// InstrumentStatus is the lifecycle state of a reference catalog entry.
// Values outside the known set are carried as-is; validation only cares
// whether an entry is Active.
type InstrumentStatus string

const (
	InstrumentStatusActive   InstrumentStatus = "Active"
	InstrumentStatusInactive InstrumentStatus = "Inactive"
)

// IsActive reports whether the entry participates in validation when
// the pipeline restricts matching to active instruments.
func (s InstrumentStatus) IsActive() bool {
	return s == InstrumentStatusActive
}
