package refund

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/queue"
	"github.com/souqsyria/backend/internal/services/order"
	"github.com/souqsyria/backend/internal/services/payment"
	"github.com/souqsyria/backend/internal/utils"
	"github.com/souqsyria/backend/internal/workflow"
)

// JobEnqueuer enqueues background jobs; satisfied by queue.Queue
type JobEnqueuer interface {
	EnqueueJob(jobType queue.JobType, payload interface{}) (string, error)
}

// Service handles refund initiation and admin review
type Service struct {
	db       *gorm.DB
	orders   *order.Service
	payments *payment.Service
	jobs     JobEnqueuer
}

// NewService creates a new refund service
func NewService(db *gorm.DB, orders *order.Service, payments *payment.Service, jobs JobEnqueuer) *Service {
	return &Service{
		db:       db,
		orders:   orders,
		payments: payments,
		jobs:     jobs,
	}
}

// InitiateInput carries a new refund request
type InitiateInput struct {
	OrderID              uuid.UUID           `json:"order_id" binding:"required"`
	PaymentTransactionID uuid.UUID           `json:"payment_transaction_id" binding:"required"`
	Amount               float64             `json:"amount"`
	Method               models.RefundMethod `json:"method"`
	ReasonCode           string              `json:"reason_code"`
	Notes                string              `json:"notes"`
	Evidence             []string            `json:"evidence"`
}

// ReviewInput carries an admin decision on a refund
type ReviewInput struct {
	Status models.RefundStatus `json:"status" binding:"required"`
	Notes  *string             `json:"notes"`
}

// RefundProcessedPayload is the notification job payload for processed refunds
type RefundProcessedPayload struct {
	RefundID string  `json:"refund_id"`
	OrderID  string  `json:"order_id"`
	UserID   string  `json:"user_id"`
	Amount   float64 `json:"amount"`
}

// InitiateRefund validates order and payment linkage and persists a pending
// refund. Amount and evidence are stored exactly as given; zero amounts and
// empty evidence lists are valid.
func (s *Service) InitiateRefund(ctx context.Context, input InitiateInput) (*models.RefundTransaction, error) {
	ord, err := s.orders.GetOrderDetails(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	transaction, err := s.payments.GetTransactionByID(ctx, input.PaymentTransactionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.BadRequest(
				"Payment transaction not found",
				"معاملة الدفع غير موجودة",
			)
		}
		return nil, err
	}

	if transaction.OrderID != ord.ID {
		return nil, apperrors.BadRequest(
			"Payment transaction does not belong to the given order",
			"معاملة الدفع لا تخص الطلب المحدد",
		)
	}

	method := input.Method
	if method == "" {
		method = models.RefundMethodManual
	}

	refund := models.RefundTransaction{
		Reference:            utils.GenerateReference("RFD"),
		Amount:               input.Amount,
		Status:               models.RefundStatusPending,
		Method:               method,
		ReasonCode:           input.ReasonCode,
		Notes:                input.Notes,
		Evidence:             models.StringArray(input.Evidence),
		OrderID:              ord.ID,
		PaymentTransactionID: transaction.ID,
	}
	if refund.Evidence == nil {
		refund.Evidence = models.StringArray{}
	}

	if err := s.db.WithContext(ctx).Create(&refund).Error; err != nil {
		return nil, fmt.Errorf("error creating refund: %w", err)
	}

	return &refund, nil
}

// ApproveRefund applies an admin decision to a refund. A processed refund
// is terminal and refuses any further change; other transitions are
// validated against the refund state machine. RefundedAt is stamped exactly
// when the refund reaches processed.
func (s *Service) ApproveRefund(ctx context.Context, refundID uuid.UUID, input ReviewInput, adminUserID uuid.UUID) (*models.RefundTransaction, error) {
	var refund models.RefundTransaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).First(&refund, "id = ?", refundID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Refund not found", "طلب الاسترداد غير موجود")
			}
			return fmt.Errorf("error finding refund: %w", err)
		}

		if refund.Status == models.RefundStatusProcessed {
			return apperrors.BadRequest(
				"Refund has already been completed",
				"تم إكمال عملية الاسترداد بالفعل",
			)
		}

		if err := workflow.RefundMachine.Validate(refund.Status, input.Status); err != nil {
			return apperrors.BadRequest(
				fmt.Sprintf("Invalid refund status transition: %s", err),
				"انتقال حالة استرداد غير صالح",
			)
		}

		refund.Status = input.Status
		refund.ProcessedByID = &adminUserID
		if input.Notes != nil {
			refund.Notes = *input.Notes
		}
		if input.Status == models.RefundStatusProcessed {
			now := time.Now()
			refund.RefundedAt = &now
		}

		if err := tx.Save(&refund).Error; err != nil {
			return fmt.Errorf("error updating refund: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if refund.Status == models.RefundStatusProcessed {
		s.enqueueProcessedNotification(ctx, &refund)
	}

	return &refund, nil
}

// GetRefundStatusByOrder returns the most recently created refund for an
// order. "Most recent" is defined purely by created_at descending.
func (s *Service) GetRefundStatusByOrder(ctx context.Context, orderID uuid.UUID) (*models.RefundTransaction, error) {
	var refund models.RefundTransaction
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&refund).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No refund found for order", "لا يوجد طلب استرداد لهذا الطلب")
		}
		return nil, fmt.Errorf("error finding refund: %w", err)
	}
	return &refund, nil
}

func (s *Service) enqueueProcessedNotification(ctx context.Context, refund *models.RefundTransaction) {
	if s.jobs == nil {
		return
	}

	ord, err := s.orders.GetOrderDetails(ctx, refund.OrderID)
	if err != nil {
		log.Printf("failed to load order for refund notification %s: %v", refund.ID, err)
		return
	}

	_, err = s.jobs.EnqueueJob(queue.JobTypeNotifyRefundProcessed, RefundProcessedPayload{
		RefundID: refund.ID.String(),
		OrderID:  refund.OrderID.String(),
		UserID:   ord.UserID.String(),
		Amount:   refund.Amount,
	})
	if err != nil {
		log.Printf("failed to enqueue refund processed notification for %s: %v", refund.ID, err)
	}
}

// lockForUpdate applies SELECT ... FOR UPDATE on engines that support it
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
