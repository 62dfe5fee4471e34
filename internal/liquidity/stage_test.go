package liquidity

import "testing"

func TestStageTerminal(t *testing.T) {
	for _, s := range []Stage{StageConfirmed, StageFailed} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []Stage{StageIdle, StagePoolResolved, StageStateRead, StageAmountComputed, StageApproved, StageSubmitted} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}
