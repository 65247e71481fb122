package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/utils"
)

// Service exposes payment transaction lookups and recording
type Service struct {
	db *gorm.DB
}

// NewService creates a new payment service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetTransactionByID loads a payment transaction
func (s *Service) GetTransactionByID(ctx context.Context, txID uuid.UUID) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := s.db.WithContext(ctx).First(&transaction, "id = ?", txID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Payment transaction not found", "معاملة الدفع غير موجودة")
		}
		return nil, fmt.Errorf("error finding payment transaction: %w", err)
	}
	return &transaction, nil
}

// RecordTransaction persists a payment transaction against an order
func (s *Service) RecordTransaction(ctx context.Context, orderID uuid.UUID, amount float64, currency, method string) (*models.PaymentTransaction, error) {
	var ord models.Order
	if err := s.db.WithContext(ctx).First(&ord, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found", "الطلب غير موجود")
		}
		return nil, fmt.Errorf("error finding order: %w", err)
	}

	if currency == "" {
		currency = ord.Currency
	}

	transaction := models.PaymentTransaction{
		Reference: utils.GenerateReference("PAY"),
		OrderID:   ord.ID,
		Amount:    amount,
		Currency:  currency,
		Method:    method,
		Status:    models.PaymentTransactionStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&transaction).Error; err != nil {
		return nil, fmt.Errorf("error creating payment transaction: %w", err)
	}
	return &transaction, nil
}

// MarkCompleted flips a pending transaction to completed
func (s *Service) MarkCompleted(ctx context.Context, txID uuid.UUID) (*models.PaymentTransaction, error) {
	transaction, err := s.GetTransactionByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if transaction.Status == models.PaymentTransactionStatusCompleted {
		return transaction, nil
	}
	transaction.Status = models.PaymentTransactionStatusCompleted
	if err := s.db.WithContext(ctx).Save(transaction).Error; err != nil {
		return nil, fmt.Errorf("error updating payment transaction: %w", err)
	}
	return transaction, nil
}
