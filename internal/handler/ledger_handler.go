package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Peerawityam/classfund-web/internal/models"
	"github.com/Peerawityam/classfund-web/internal/service"
)

type LedgerHandler struct {
	service *service.ReconciliationService
	logger  *zap.Logger
}

func NewLedgerHandler(service *service.ReconciliationService, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{
		service: service,
		logger:  logger,
	}
}

// SubmitPayment handles POST /api/v1/transactions.
func (h *LedgerHandler) SubmitPayment(c *gin.Context) {
	var req models.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.SubmitPayment(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// CheckSlip handles GET /api/v1/transactions/check-slip/:hash. Clients call
// it with the SHA-256 of the slip bytes before uploading the image.
func (h *LedgerHandler) CheckSlip(c *gin.Context) {
	hash := c.Param("hash")

	ownerLabel, duplicate, err := h.service.CheckSlip(c.Request.Context(), hash)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"is_duplicate": duplicate}
	if duplicate {
		resp["owner_label"] = ownerLabel
	}
	c.JSON(http.StatusOK, resp)
}

// ReviewSubmission handles PATCH /api/v1/transactions/:id/review.
func (h *LedgerHandler) ReviewSubmission(c *gin.Context) {
	entryID := c.Param("id")

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	primary, secondary, err := h.service.ReviewSubmission(c.Request.Context(), entryID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"entry": primary}
	if secondary != nil {
		resp["split_entry"] = secondary
	}
	c.JSON(http.StatusOK, resp)
}

// SuggestAllocation handles GET /api/v1/transactions/:id/suggestions.
func (h *LedgerHandler) SuggestAllocation(c *gin.Context) {
	suggestions, err := h.service.SuggestAllocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetBalance handles GET /api/v1/balance?owner_id=&mode=.
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	ownerID := c.Query("owner_id")
	mode := service.BalanceMode(c.DefaultQuery("mode", string(service.BalanceNet)))
	if !service.ValidBalanceMode(mode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be net, income or expense"})
		return
	}

	balance, err := h.service.QueryBalance(c.Request.Context(), ownerID, mode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owner_id": ownerID,
		"mode":     mode,
		"balance":  balance,
	})
}

// ListMemberBalances handles GET /api/v1/balance/members.
func (h *LedgerHandler) ListMemberBalances(c *gin.Context) {
	balances, err := h.service.MemberBalances(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": balances})
}

// PeriodReport handles GET /api/v1/reports/periods.
func (h *LedgerHandler) PeriodReport(c *gin.Context) {
	reports, err := h.service.PeriodTotals(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": reports})
}

func (h *LedgerHandler) respondError(c *gin.Context, err error) {
	var dup *models.DuplicateEvidenceError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{
			"error":       dup.Error(),
			"owner_label": dup.OwnerLabel,
		})
	case errors.Is(err, models.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrEvidenceRequired),
		errors.Is(err, models.ErrPeriodRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
