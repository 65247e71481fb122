package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/queue"
	"github.com/souqsyria/backend/internal/services/catalog"
)

const (
	plansCacheKey = "membership:plans"
	cacheTTL      = 30 * time.Minute
)

// JobEnqueuer enqueues background jobs; satisfied by queue.Queue
type JobEnqueuer interface {
	EnqueueJob(jobType queue.JobType, payload interface{}) (string, error)
}

// Service manages membership plans and user enrollments
type Service struct {
	db    *gorm.DB
	cache catalog.Cacher
	jobs  JobEnqueuer
}

// NewService creates a new membership service
func NewService(db *gorm.DB, cacher catalog.Cacher, jobs JobEnqueuer) *Service {
	return &Service{db: db, cache: cacher, jobs: jobs}
}

// ExpiryPayload is the notification job payload for expired memberships
type ExpiryPayload struct {
	UserMembershipID string `json:"user_membership_id"`
	UserID           string `json:"user_id"`
	Tier             string `json:"tier"`
}

// ListPlans returns all active membership plans, served from cache when warm
func (s *Service) ListPlans(ctx context.Context) ([]models.Membership, error) {
	var plans []models.Membership
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, plansCacheKey, &plans); err == nil {
			return plans, nil
		}
	}

	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("monthly_fee ASC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("error listing membership plans: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, plansCacheKey, plans, cacheTTL)
	}
	return plans, nil
}

// Enroll subscribes a user to a plan. An existing active enrollment is
// deactivated first so a user carries at most one active membership.
func (s *Service) Enroll(ctx context.Context, userID uuid.UUID, tier models.MembershipTier) (*models.UserMembership, error) {
	var plan models.Membership
	err := s.db.WithContext(ctx).First(&plan, "tier = ? AND is_active = ?", tier, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Membership plan not found", "خطة العضوية غير موجودة")
		}
		return nil, fmt.Errorf("error finding membership plan: %w", err)
	}

	var enrollment *models.UserMembership
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.UserMembership{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error
		if err != nil {
			return fmt.Errorf("error deactivating previous membership: %w", err)
		}

		now := time.Now()
		enrollment = &models.UserMembership{
			UserID:       userID,
			MembershipID: plan.ID,
			StartsAt:     now,
			ExpiresAt:    now.AddDate(0, 0, plan.DurationDays),
			IsActive:     true,
		}
		if err := tx.Create(enrollment).Error; err != nil {
			return fmt.Errorf("error creating membership enrollment: %w", err)
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("membership_id", plan.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// GetActiveMembership returns a user's current enrollment with its plan
func (s *Service) GetActiveMembership(ctx context.Context, userID uuid.UUID) (*models.UserMembership, error) {
	var enrollment models.UserMembership
	err := s.db.WithContext(ctx).
		Preload("Membership").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No active membership", "لا توجد عضوية نشطة")
		}
		return nil, fmt.Errorf("error finding membership: %w", err)
	}
	return &enrollment, nil
}

// ExpireMemberships deactivates enrollments past their expiry and queues a
// notification per affected user. Runs from the scheduler.
func (s *Service) ExpireMemberships(ctx context.Context, now time.Time) (int, error) {
	var expired []models.UserMembership
	err := s.db.WithContext(ctx).
		Preload("Membership").
		Where("is_active = ? AND expires_at <= ?", true, now).
		Find(&expired).Error
	if err != nil {
		return 0, fmt.Errorf("error listing expired memberships: %w", err)
	}

	for i := range expired {
		enrollment := &expired[i]
		enrollment.IsActive = false
		if err := s.db.WithContext(ctx).Save(enrollment).Error; err != nil {
			return 0, fmt.Errorf("error expiring membership %s: %w", enrollment.ID, err)
		}
		if s.jobs != nil {
			_, _ = s.jobs.EnqueueJob(queue.JobTypeNotifyMembershipExpiry, ExpiryPayload{
				UserMembershipID: enrollment.ID.String(),
				UserID:           enrollment.UserID.String(),
				Tier:             string(enrollment.Membership.Tier),
			})
		}
	}
	return len(expired), nil
}
