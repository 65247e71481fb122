package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/services/order"
)

// OrderHandler handles buyer order requests
type OrderHandler struct {
	orderSvc *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderSvc *order.Service) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// List handles GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	orders, total, err := h.orderSvc.GetOrdersByUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":    orders,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Get handles GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	ord, err := h.orderSvc.GetOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	// buyers only see their own orders
	if ord.UserID != userID {
		middleware.RespondError(c, apperrors.NotFound("Order not found", "الطلب غير موجود"))
		return
	}

	c.JSON(http.StatusOK, ord)
}
