package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqsyria/backend/internal/audit"
	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/services/kyc"
)

// KycHandler handles KYC document submission and admin review requests
type KycHandler struct {
	kycSvc *kyc.Service
	audit  *audit.Logger
}

// NewKycHandler creates a new KYC handler
func NewKycHandler(kycSvc *kyc.Service, auditLogger *audit.Logger) *KycHandler {
	return &KycHandler{kycSvc: kycSvc, audit: auditLogger}
}

// Submit handles POST /api/kyc/submit
func (h *KycHandler) Submit(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	var input kyc.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	document, err := h.kycSvc.SubmitKycDocument(c.Request.Context(), userID, input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	h.audit.LogFromRequest(c, audit.Entry{
		EventType:   models.AuditEventKycSubmitted,
		Description: "KYC document submitted",
		ActorID:     &userID,
		Success:     true,
		Details: map[string]interface{}{
			"document_id":   document.ID.String(),
			"document_type": document.DocumentType,
		},
	})

	c.JSON(http.StatusCreated, document)
}

// Status handles GET /api/kyc/status
func (h *KycHandler) Status(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	document, err := h.kycSvc.GetLatestDocument(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}

// Logs handles GET /api/kyc/documents/:id/logs
func (h *KycHandler) Logs(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	logs, err := h.kycSvc.GetStatusLogs(c.Request.Context(), documentID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// Pending handles GET /api/admin/kyc/pending
func (h *KycHandler) Pending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	documents, total, err := h.kycSvc.GetPendingDocuments(c.Request.Context(), page, pageSize)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Review handles PUT /api/admin/kyc/approve/:id
func (h *KycHandler) Review(c *gin.Context) {
	reviewerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	var input kyc.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	document, err := h.kycSvc.ReviewKycDocument(c.Request.Context(), documentID, input, reviewerID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	h.audit.LogFromRequest(c, audit.Entry{
		EventType:   models.AuditEventKycReviewed,
		Description: "KYC document reviewed",
		ActorID:     &reviewerID,
		Success:     true,
		Details: map[string]interface{}{
			"document_id": document.ID.String(),
			"new_status":  string(document.Status),
		},
	})

	c.JSON(http.StatusOK, document)
}

type rejectRequest struct {
	NotesEn string `json:"notes_en"`
	NotesAr string `json:"notes_ar"`
}

// Reject handles PUT /api/admin/kyc/reject/:id
func (h *KycHandler) Reject(c *gin.Context) {
	reviewerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	var req rejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.RespondValidationError(c, err)
			return
		}
	}

	document, err := h.kycSvc.ReviewKycDocument(c.Request.Context(), documentID, kyc.ReviewInput{
		NewStatus: models.KycStatusRejected,
		NotesEn:   req.NotesEn,
		NotesAr:   req.NotesAr,
	}, reviewerID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	h.audit.LogFromRequest(c, audit.Entry{
		EventType:   models.AuditEventKycReviewed,
		Description: "KYC document rejected",
		ActorID:     &reviewerID,
		Success:     true,
		Details: map[string]interface{}{
			"document_id": document.ID.String(),
			"new_status":  string(document.Status),
		},
	})

	c.JSON(http.StatusOK, document)
}

// Get handles GET /api/admin/kyc/:id
func (h *KycHandler) Get(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	document, err := h.kycSvc.GetDocument(c.Request.Context(), documentID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}

// StartReview handles PUT /api/admin/kyc/under-review/:id
func (h *KycHandler) StartReview(c *gin.Context) {
	reviewerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	document, err := h.kycSvc.MarkUnderReview(c.Request.Context(), documentID, reviewerID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, document)
}
