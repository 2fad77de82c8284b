// internal/scoring/selection.go
package scoring

import "fmt"

// Selection is the caller-owned explorer state. Changing either field means
// every profile is rescored; nothing is carried over between selections.
type Selection struct {
	IssueIndex int     `json:"issueIndex"`
	Threshold  float64 `json:"threshold"`
}

func DefaultSelection() Selection {
	return Selection{IssueIndex: 0, Threshold: DefaultThreshold}
}

func (s Selection) Validate(issueCount int) error {
	if s.IssueIndex < 0 || s.IssueIndex >= issueCount {
		return fmt.Errorf("%w: index %d outside [0,%d)", ErrIssueNotFound, s.IssueIndex, issueCount)
	}
	return ValidateThreshold(s.Threshold)
}

// ThresholdFromPercent converts a 0-100 slider position into a threshold.
func ThresholdFromPercent(percent float64) float64 {
	return percent / 100
}

// ThresholdOrDefault resolves an optional threshold from job input.
func ThresholdOrDefault(t *float64) float64 {
	if t == nil {
		return DefaultThreshold
	}
	return *t
}

// ResolveSelection builds the selection for a job. A nil threshold falls
// back to fallback, and a zero fallback to DefaultThreshold.
func ResolveSelection(issueIndex int, threshold *float64, fallback float64) Selection {
	if fallback == 0 {
		fallback = DefaultThreshold
	}
	s := Selection{IssueIndex: issueIndex, Threshold: fallback}
	if threshold != nil {
		s.Threshold = *threshold
	}
	return s
}
