package kyc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/config"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/queue"
	"github.com/souqsyria/backend/internal/workflow"
)

// allowedMimeTypes is the allow-list for KYC document uploads
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// JobEnqueuer enqueues background jobs; satisfied by queue.Queue
type JobEnqueuer interface {
	EnqueueJob(jobType queue.JobType, payload interface{}) (string, error)
}

// Service handles KYC document submission and review
type Service struct {
	db   *gorm.DB
	cfg  config.KycConfig
	jobs JobEnqueuer
}

// NewService creates a new KYC service
func NewService(db *gorm.DB, cfg config.KycConfig, jobs JobEnqueuer) *Service {
	return &Service{
		db:   db,
		cfg:  cfg,
		jobs: jobs,
	}
}

// SubmitInput carries a new KYC document submission
type SubmitInput struct {
	DocumentType      models.KycDocumentType      `json:"document_type" binding:"required"`
	VerificationLevel models.KycVerificationLevel `json:"verification_level"`
	TitleEn           string                      `json:"title_en"`
	TitleAr           string                      `json:"title_ar"`
	FileSize          int64                       `json:"file_size" binding:"required"`
	FileMimeType      string                      `json:"file_mime_type" binding:"required"`
	FileURL           string                      `json:"file_url" binding:"required"`
	DocumentData      models.JSON                 `json:"document_data"`
	GovernorateID     *uuid.UUID                  `json:"governorate_id"`
	Priority          models.KycPriority          `json:"priority"`
}

// ReviewInput carries a reviewer decision on a submitted document
type ReviewInput struct {
	NewStatus models.KycStatus `json:"new_status" binding:"required"`
	NotesEn   string           `json:"notes_en"`
	NotesAr   string           `json:"notes_ar"`
}

// KycDecisionPayload is the notification job payload for review decisions
type KycDecisionPayload struct {
	DocumentID string `json:"document_id"`
	UserID     string `json:"user_id"`
	NewStatus  string `json:"new_status"`
	NotesEn    string `json:"notes_en"`
	NotesAr    string `json:"notes_ar"`
}

// SubmitKycDocument validates and persists a new KYC document for a user.
// File metadata is validated before any persistence. The document is
// created in draft and immediately moved to submitted through the workflow,
// seeding the first status log.
func (s *Service) SubmitKycDocument(ctx context.Context, userID uuid.UUID, input SubmitInput) (*models.KycDocument, error) {
	if err := s.validateFileMetadata(input); err != nil {
		return nil, err
	}

	if input.GovernorateID != nil {
		var governorate models.Governorate
		err := s.db.WithContext(ctx).First(&governorate, "id = ?", *input.GovernorateID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("Governorate not found", "المحافظة غير موجودة")
			}
			return nil, fmt.Errorf("error resolving governorate: %w", err)
		}
	}

	document := models.KycDocument{
		UserID:            userID,
		DocumentType:      input.DocumentType,
		Status:            models.KycStatusDraft,
		VerificationLevel: defaultLevel(input.VerificationLevel),
		TitleEn:           input.TitleEn,
		TitleAr:           input.TitleAr,
		FileSize:          input.FileSize,
		FileMimeType:      input.FileMimeType,
		FileURL:           input.FileURL,
		DocumentData:      input.DocumentData,
		GovernorateID:     input.GovernorateID,
		Priority:          defaultPriority(input.Priority),
		IsActive:          true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Blocking-status check runs under a row lock; the partial unique
		// index in migrations backs the same invariant at the storage layer.
		var existing models.KycDocument
		err := lockForUpdate(tx).
			Where("user_id = ? AND document_type = ? AND is_active = ? AND status IN ?",
				userID, input.DocumentType, true, workflow.KycBlockingStatuses).
			First(&existing).Error
		if err == nil {
			return apperrors.Conflict(
				"An active KYC document of this type already exists",
				"يوجد بالفعل مستند تحقق نشط من هذا النوع",
			)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("error checking existing document: %w", err)
		}

		if err := tx.Create(&document).Error; err != nil {
			return fmt.Errorf("error creating document: %w", err)
		}

		return s.transitionStatus(tx, &document, models.KycStatusSubmitted, nil,
			"Document submitted for verification",
			"تم تقديم المستند للتحقق")
	})
	if err != nil {
		return nil, err
	}

	return &document, nil
}

// ReviewKycDocument applies a reviewer decision to a document. Decisions
// are only accepted from submitted or under-review documents; on failure
// no status log is created and the document is not mutated.
func (s *Service) ReviewKycDocument(ctx context.Context, documentID uuid.UUID, input ReviewInput, reviewerID uuid.UUID) (*models.KycDocument, error) {
	var document models.KycDocument

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			First(&document, "id = ?", documentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("KYC document not found", "مستند التحقق غير موجود")
			}
			return fmt.Errorf("error finding document: %w", err)
		}

		if !workflow.IsKycReviewable(document.Status) {
			return apperrors.BadRequest(
				fmt.Sprintf("Document in status %s cannot be reviewed", document.Status),
				"لا يمكن مراجعة المستند في حالته الحالية",
			)
		}

		if err := workflow.KycMachine.Validate(document.Status, input.NewStatus); err != nil {
			return apperrors.BadRequest(
				fmt.Sprintf("Invalid status transition: %s", err),
				"انتقال حالة غير صالح",
			)
		}

		document.ReviewedByID = &reviewerID
		if input.NewStatus == models.KycStatusApproved && s.cfg.DocumentValidity > 0 {
			expires := time.Now().AddDate(0, 0, s.cfg.DocumentValidity)
			document.ExpiresAt = &expires
		}

		return s.transitionStatus(tx, &document, input.NewStatus, &reviewerID, input.NotesEn, input.NotesAr)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueDecisionNotification(&document, input)

	return &document, nil
}

// MarkUnderReview moves a submitted document to under review
func (s *Service) MarkUnderReview(ctx context.Context, documentID uuid.UUID, reviewerID uuid.UUID) (*models.KycDocument, error) {
	return s.ReviewKycDocument(ctx, documentID, ReviewInput{
		NewStatus: models.KycStatusUnderReview,
		NotesEn:   "Review started",
		NotesAr:   "بدأت المراجعة",
	}, reviewerID)
}

// GetDocument returns a single KYC document by id
func (s *Service) GetDocument(ctx context.Context, documentID uuid.UUID) (*models.KycDocument, error) {
	var document models.KycDocument
	err := s.db.WithContext(ctx).First(&document, "id = ?", documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("KYC document not found", "مستند التحقق غير موجود")
		}
		return nil, fmt.Errorf("error finding document: %w", err)
	}
	return &document, nil
}

// GetLatestDocument returns the most recently submitted KYC document for a user
func (s *Service) GetLatestDocument(ctx context.Context, userID uuid.UUID) (*models.KycDocument, error) {
	var document models.KycDocument
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No KYC document found", "لا يوجد مستند تحقق")
		}
		return nil, fmt.Errorf("error finding document: %w", err)
	}
	return &document, nil
}

// GetStatusLogs returns the transition history of a document, newest first
func (s *Service) GetStatusLogs(ctx context.Context, documentID uuid.UUID) ([]models.KycStatusLog, error) {
	var logs []models.KycStatusLog
	err := s.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("error finding status logs: %w", err)
	}
	return logs, nil
}

// GetPendingDocuments returns documents awaiting review, paginated
func (s *Service) GetPendingDocuments(ctx context.Context, page, pageSize int) ([]models.KycDocument, int64, error) {
	var documents []models.KycDocument
	var count int64

	query := s.db.WithContext(ctx).Model(&models.KycDocument{}).
		Where("status IN ?", workflow.KycReviewableStatuses)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting pending documents: %w", err)
	}

	offset := (page - 1) * pageSize
	err := query.Order("priority DESC, created_at ASC").
		Offset(offset).Limit(pageSize).
		Find(&documents).Error
	if err != nil {
		return nil, 0, fmt.Errorf("error finding pending documents: %w", err)
	}

	return documents, count, nil
}

// ExpireDocuments moves approved documents past their validity window to
// expired. Returns the number of documents expired. Called by the daily
// expiry job.
func (s *Service) ExpireDocuments(ctx context.Context, now time.Time) (int, error) {
	var documents []models.KycDocument
	err := s.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", models.KycStatusApproved, now).
		Find(&documents).Error
	if err != nil {
		return 0, fmt.Errorf("error finding expiring documents: %w", err)
	}

	expired := 0
	for i := range documents {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			doc := &documents[i]
			return s.transitionStatus(tx, doc, models.KycStatusExpired, nil,
				"Document validity window elapsed",
				"انتهت فترة صلاحية المستند")
		})
		if err != nil {
			return expired, fmt.Errorf("error expiring document %s: %w", documents[i].ID, err)
		}
		expired++
	}

	return expired, nil
}

// transitionStatus mutates the document status and appends the status log
// row inside the caller's transaction. The transition is validated against
// the KYC state machine.
func (s *Service) transitionStatus(tx *gorm.DB, document *models.KycDocument, newStatus models.KycStatus, reviewerID *uuid.UUID, notesEn, notesAr string) error {
	if err := workflow.KycMachine.Validate(document.Status, newStatus); err != nil {
		return apperrors.BadRequest(
			fmt.Sprintf("Invalid status transition: %s", err),
			"انتقال حالة غير صالح",
		)
	}

	previous := document.Status
	document.Status = newStatus

	if err := tx.Save(document).Error; err != nil {
		return fmt.Errorf("error updating document: %w", err)
	}

	statusLog := models.KycStatusLog{
		DocumentID:     document.ID,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		ReviewerID:     reviewerID,
		NotesEn:        notesEn,
		NotesAr:        notesAr,
	}

	if err := tx.Create(&statusLog).Error; err != nil {
		return fmt.Errorf("error creating status log: %w", err)
	}

	return nil
}

// validateFileMetadata checks the uploaded file descriptor before anything
// is persisted
func (s *Service) validateFileMetadata(input SubmitInput) error {
	maxSize := s.cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = 50 << 20
	}
	if input.FileSize > maxSize {
		return apperrors.BadRequest(
			"File size cannot exceed 50MB",
			"لا يمكن أن يتجاوز حجم الملف 50 ميغابايت",
		)
	}
	if !allowedMimeTypes[input.FileMimeType] {
		return apperrors.BadRequest(
			fmt.Sprintf("Unsupported file type: %s", input.FileMimeType),
			"نوع الملف غير مدعوم",
		)
	}
	if !strings.HasPrefix(input.FileURL, "https://") {
		return apperrors.BadRequest(
			"Document URL must use HTTPS",
			"يجب أن يستخدم رابط المستند بروتوكول HTTPS",
		)
	}
	return nil
}

func (s *Service) enqueueDecisionNotification(document *models.KycDocument, input ReviewInput) {
	if s.jobs == nil {
		return
	}
	_, err := s.jobs.EnqueueJob(queue.JobTypeNotifyKycDecision, KycDecisionPayload{
		DocumentID: document.ID.String(),
		UserID:     document.UserID.String(),
		NewStatus:  string(document.Status),
		NotesEn:    input.NotesEn,
		NotesAr:    input.NotesAr,
	})
	if err != nil {
		// Notification delivery is best-effort; the review itself has
		// already committed.
		log.Printf("failed to enqueue KYC decision notification for %s: %v", document.ID, err)
	}
}

// lockForUpdate applies SELECT ... FOR UPDATE on engines that support it
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func defaultLevel(level models.KycVerificationLevel) models.KycVerificationLevel {
	if level == "" {
		return models.KycLevelBasic
	}
	return level
}

func defaultPriority(priority models.KycPriority) models.KycPriority {
	if priority == "" {
		return models.KycPriorityNormal
	}
	return priority
}
