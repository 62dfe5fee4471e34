package liquidity

// Operation names an engine entry point.
type Operation string

const (
	OpDeposit  Operation = "deposit"
	OpWithdraw Operation = "withdraw"
)

// Stage is a step of a deposit or withdraw run. Runs move forward only:
//
//	idle -> pool_resolved -> state_read -> amount_computed -> [approved ->] submitted -> confirmed | failed
type Stage string

const (
	StageIdle           Stage = "idle"
	StagePoolResolved   Stage = "pool_resolved"
	StageStateRead      Stage = "state_read"
	StageAmountComputed Stage = "amount_computed"
	StageApproved       Stage = "approved"
	StageSubmitted      Stage = "submitted"
	StageConfirmed      Stage = "confirmed"
	StageFailed         Stage = "failed"
)

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StageConfirmed || s == StageFailed
}
