package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/models"
)

// Service exposes read access to orders for the refund and storefront flows
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetOrderDetails loads an order with its line items
func (s *Service) GetOrderDetails(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		First(&ord, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found", "الطلب غير موجود")
		}
		return nil, fmt.Errorf("error finding order: %w", err)
	}
	return &ord, nil
}

// GetOrdersByUser returns a user's orders, newest first
func (s *Service) GetOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting orders: %w", err)
	}

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("error listing orders: %w", err)
	}
	return orders, total, nil
}
