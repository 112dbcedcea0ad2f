package model

import "github.com/google/uuid"

// RunSummary holds the per-run counts reported to the caller.
type RunSummary struct {
	RunID        uuid.UUID `json:"runId"`
	Redeemed     int       `json:"redeemed"`
	OwnedSkipped int       `json:"ownedSkipped"`
	Errored      int       `json:"errored"`
}

// Add counts an outcome into the summary.
func (s *RunSummary) Add(outcome RedemptionOutcome) {
	switch outcome.Bucket {
	case BucketRedeemed:
		s.Redeemed++
	case BucketAlreadyOwned:
		s.OwnedSkipped++
	default:
		s.Errored++
	}
}
