package workflow

import "github.com/souqsyria/backend/internal/models"

// KycMachine declares the full KYC document lifecycle. Review decisions are
// only reachable from submitted or under-review documents; approved
// documents can later expire or be suspended, and a clarification request
// sends the document back through resubmission.
var KycMachine = NewMachine("kyc", map[models.KycStatus][]models.KycStatus{
	models.KycStatusDraft: {
		models.KycStatusSubmitted,
	},
	models.KycStatusSubmitted: {
		models.KycStatusUnderReview,
		models.KycStatusApproved,
		models.KycStatusRejected,
		models.KycStatusRequiresClarification,
	},
	models.KycStatusUnderReview: {
		models.KycStatusApproved,
		models.KycStatusRejected,
		models.KycStatusRequiresClarification,
	},
	models.KycStatusRequiresClarification: {
		models.KycStatusSubmitted,
	},
	models.KycStatusApproved: {
		models.KycStatusExpired,
		models.KycStatusSuspended,
	},
	models.KycStatusSuspended: {
		models.KycStatusUnderReview,
		models.KycStatusExpired,
	},
	// rejected and expired are terminal
})

// KycReviewableStatuses are the statuses from which a reviewer decision
// may be taken
var KycReviewableStatuses = []models.KycStatus{
	models.KycStatusSubmitted,
	models.KycStatusUnderReview,
}

// KycBlockingStatuses are the statuses that block a new active submission
// of the same document type for the same user
var KycBlockingStatuses = []models.KycStatus{
	models.KycStatusSubmitted,
	models.KycStatusUnderReview,
	models.KycStatusApproved,
}

// IsKycReviewable reports whether a document in the given status can
// receive a reviewer decision
func IsKycReviewable(status models.KycStatus) bool {
	for _, s := range KycReviewableStatuses {
		if s == status {
			return true
		}
	}
	return false
}
