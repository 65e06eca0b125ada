package core

// Risk is the deterministic risk tier for a pattern, recomputed fresh on
// every analysis run.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// approvalFloor is the minimum approval count before a never-denied,
// non-destructive pattern is considered low risk.
const approvalFloor = 5

// ScoreRisk computes the risk tier from aggregated stats. Precedence: any
// denial wins, then destructiveness or thin evidence, then low.
func ScoreRisk(approved, denied int, destructive bool) Risk {
	switch {
	case denied > 0:
		return RiskHigh
	case destructive || approved < approvalFloor:
		return RiskMedium
	default:
		return RiskLow
	}
}
