package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/queue"
)

// Service persists user notifications and provides the queue job handlers
// that turn workflow events into notification rows
type Service struct {
	db *gorm.DB
}

// NewService creates a new notification service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// kycDecisionPayload mirrors the KYC review job payload
type kycDecisionPayload struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
	NewStatus  string `json:"new_status"`
	NotesEn    string `json:"notes_en"`
	NotesAr    string `json:"notes_ar"`
}

// refundProcessedPayload mirrors the refund processed job payload
type refundProcessedPayload struct {
	RefundID string  `json:"refund_id"`
	OrderID  string  `json:"order_id"`
	UserID   string  `json:"user_id"`
	Amount   float64 `json:"amount"`
}

// membershipExpiryPayload mirrors the membership expiry job payload
type membershipExpiryPayload struct {
	UserMembershipID string `json:"user_membership_id"`
	UserID           string `json:"user_id"`
	Tier             string `json:"tier"`
}

// RegisterHandlers wires the notification job handlers into the queue
func (s *Service) RegisterHandlers(q *queue.Queue) {
	q.RegisterHandler(queue.JobTypeNotifyKycDecision, s.handleKycDecision)
	q.RegisterHandler(queue.JobTypeNotifyRefundProcessed, s.handleRefundProcessed)
	q.RegisterHandler(queue.JobTypeNotifyMembershipExpiry, s.handleMembershipExpiry)
}

func (s *Service) handleKycDecision(ctx context.Context, job queue.Job) (interface{}, error) {
	var payload kycDecisionPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kyc decision payload: %w", err)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in kyc decision payload: %w", err)
	}

	titleEn, titleAr := kycDecisionTitles(payload.NewStatus)
	notification := models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeKycDecision,
		TitleEn: titleEn,
		TitleAr: titleAr,
		BodyEn:  payload.NotesEn,
		BodyAr:  payload.NotesAr,
		Metadata: models.JSON{
			"document_id": payload.DocumentID,
			"new_status":  payload.NewStatus,
		},
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create kyc notification: %w", err)
	}
	return map[string]string{"notification_id": notification.ID.String()}, nil
}

func kycDecisionTitles(status string) (string, string) {
	switch status {
	case string(models.KycStatusApproved):
		return "Your identity verification was approved", "تمت الموافقة على التحقق من هويتك"
	case string(models.KycStatusRejected):
		return "Your identity verification was rejected", "تم رفض التحقق من هويتك"
	case string(models.KycStatusRequiresClarification):
		return "Your identity verification needs clarification", "التحقق من هويتك يحتاج إلى توضيح"
	default:
		return "Your identity verification status changed", "تغيرت حالة التحقق من هويتك"
	}
}

func (s *Service) handleRefundProcessed(ctx context.Context, job queue.Job) (interface{}, error) {
	var payload refundProcessedPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refund payload: %w", err)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in refund payload: %w", err)
	}

	notification := models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeRefundProcessed,
		TitleEn: "Your refund has been processed",
		TitleAr: "تمت معالجة طلب الاسترداد الخاص بك",
		BodyEn:  fmt.Sprintf("A refund of %.2f SYP for your order has been processed.", payload.Amount),
		BodyAr:  fmt.Sprintf("تمت معالجة استرداد بقيمة %.2f ليرة سورية لطلبك.", payload.Amount),
		Metadata: models.JSON{
			"refund_id": payload.RefundID,
			"order_id":  payload.OrderID,
		},
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create refund notification: %w", err)
	}
	return map[string]string{"notification_id": notification.ID.String()}, nil
}

func (s *Service) handleMembershipExpiry(ctx context.Context, job queue.Job) (interface{}, error) {
	var payload membershipExpiryPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal membership expiry payload: %w", err)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in membership expiry payload: %w", err)
	}

	notification := models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeMembershipExpiry,
		TitleEn: "Your membership has expired",
		TitleAr: "انتهت صلاحية عضويتك",
		BodyEn:  fmt.Sprintf("Your %s membership has expired. Renew to keep your benefits.", payload.Tier),
		BodyAr:  "انتهت صلاحية عضويتك. جدد عضويتك للاحتفاظ بالمزايا.",
		Metadata: models.JSON{
			"user_membership_id": payload.UserMembershipID,
			"tier":               payload.Tier,
		},
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create membership notification: %w", err)
	}
	return map[string]string{"notification_id": notification.ID.String()}, nil
}

// ListForUser returns a user's notifications, newest first
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	var notifications []models.Notification
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead stamps a notification as read. Already-read notifications keep
// their original read time.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	var notification models.Notification
	err := s.db.WithContext(ctx).First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Notification not found", "الإشعار غير موجود")
		}
		return fmt.Errorf("error finding notification: %w", err)
	}

	if notification.ReadAt != nil {
		return nil
	}

	now := time.Now()
	notification.ReadAt = &now
	if err := s.db.WithContext(ctx).Save(&notification).Error; err != nil {
		return fmt.Errorf("error updating notification: %w", err)
	}
	return nil
}
