package order

// Stage is the position a settlement reached. Failed settlements report the
// last stage they completed before rolling back.
type Stage int

const (
	StageDraft Stage = iota
	StageHeaderPersisted
	StageLinesArchived
	StageTaxesArchived
	StagePaymentResolved
	StageCommitted
	StageRolledBack
)

func (s Stage) String() string {
	switch s {
	case StageDraft:
		return "draft"
	case StageHeaderPersisted:
		return "header_persisted"
	case StageLinesArchived:
		return "lines_archived"
	case StageTaxesArchived:
		return "taxes_archived"
	case StagePaymentResolved:
		return "payment_resolved"
	case StageCommitted:
		return "committed"
	case StageRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}
