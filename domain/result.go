// SPDX-License-Identifier: GPL-3.0-or-later
package domain

// BulkFailure records one item's failure inside a bulk operation.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult is the per-item accounting of a bulk operation. Every input id
// ends up in exactly one bucket: SuccessCount + FailureCount equals the
// number of inputs, and Failures holds the failing ids in input order.
type BulkResult struct {
	SuccessCount int           `json:"successCount"`
	FailureCount int           `json:"failureCount"`
	Failures     []BulkFailure `json:"failures,omitempty"`
}

type Verdict string

const (
	VerdictRelevant   = Verdict("truly-relevant")
	VerdictSuperseded = Verdict("superseded")
	VerdictDuplicate  = Verdict("duplicate")
	VerdictExpired    = Verdict("expired")
)

func (v Verdict) Valid() bool {
	switch v {
	case VerdictRelevant, VerdictSuperseded, VerdictDuplicate, VerdictExpired:
		return true
	}
	return false
}

// MessageVerdict is the cross-message classification of a single message
// within a holistic batch. CanonicalID points at the message that supersedes
// or duplicates this one, where applicable.
type MessageVerdict struct {
	MessageID    string  `json:"id"`
	Verdict      Verdict `json:"verdict"`
	Priority     string  `json:"priority,omitempty"`
	BlocksOthers bool    `json:"blocksOthers,omitempty"`
	CanonicalID  string  `json:"canonicalId,omitempty"`
}

// HolisticResult is a per-invocation batch verdict. The engine does not
// persist it.
type HolisticResult struct {
	Verdicts              []MessageVerdict `json:"verdicts"`
	EmailsAnalyzed        int              `json:"emailsAnalyzed"`
	ProcessingTimeSeconds float64          `json:"processingTimeSeconds"`
}

// PropagateOutcome reports the best-effort label propagation of a
// classification update. It never affects the primary result.
type PropagateOutcome struct {
	Attempted bool
	Err       error
}
