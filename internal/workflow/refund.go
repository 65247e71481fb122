package workflow

import "github.com/souqsyria/backend/internal/models"

// RefundMachine declares the refund lifecycle. Approval and rejection stay
// mutually reversible as an administrative override; processed is the only
// terminal success state and failed the only terminal error state.
var RefundMachine = NewMachine("refund", map[models.RefundStatus][]models.RefundStatus{
	models.RefundStatusPending: {
		models.RefundStatusApproved,
		models.RefundStatusRejected,
		models.RefundStatusFailed,
	},
	models.RefundStatusApproved: {
		models.RefundStatusProcessed,
		models.RefundStatusRejected,
		models.RefundStatusFailed,
	},
	models.RefundStatusRejected: {
		models.RefundStatusApproved,
		models.RefundStatusFailed,
	},
	// processed and failed are terminal
})
