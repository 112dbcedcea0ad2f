package model

// Status codes returned by the store's key registration endpoint.
const (
	StatusRedeemed           = 0
	StatusAlreadyOwned       = 9
	StatusRegionLocked       = 13
	StatusInvalidKey         = 14
	StatusActivatedElsewhere = 15
	StatusMissingBaseGame    = 24
	StatusRequiresPS3        = 36
	StatusWalletCode         = 50
	StatusRateLimited        = 53
)

// Bucket classifies a redemption outcome into an output stream.
type Bucket int

const (
	BucketRedeemed Bucket = iota
	BucketAlreadyOwned
	BucketErrored
)

// String returns the bucket name.
func (b Bucket) String() string {
	switch b {
	case BucketRedeemed:
		return "redeemed"
	case BucketAlreadyOwned:
		return "already_owned"
	default:
		return "errored"
	}
}

// BucketFor maps a status code to its bucket.
func BucketFor(statusCode int) Bucket {
	switch statusCode {
	case StatusRedeemed:
		return BucketRedeemed
	case StatusActivatedElsewhere, StatusAlreadyOwned:
		return BucketAlreadyOwned
	default:
		return BucketErrored
	}
}

// RedemptionOutcome records a single redemption attempt.
type RedemptionOutcome struct {
	Key        string
	Title      string
	StatusCode int
	Bucket     Bucket
}

// NewOutcome creates an outcome with the bucket derived from the status code.
func NewOutcome(entry CandidateEntry, statusCode int) RedemptionOutcome {
	return RedemptionOutcome{
		Key:        entry.Key,
		Title:      entry.Title,
		StatusCode: statusCode,
		Bucket:     BucketFor(statusCode),
	}
}
