package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"expiryx-backend/internal/service/expiry"
)

// JobsHandler exposes manual triggers for the evaluation jobs. These run the
// same pass functions the scheduler invokes; each pass opens its own
// transaction, so a manual run never shares state with a request handler.
type JobsHandler struct {
	svc    *expiry.Service
	logger *zap.Logger
}

// NewJobsHandler constructs the HTTP handler adapter.
func NewJobsHandler(svc *expiry.Service, logger *zap.Logger) *JobsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobsHandler{svc: svc, logger: logger}
}

// RunExpiryCheck triggers one expiry evaluation pass on demand and returns
// its summary.
func (h *JobsHandler) RunExpiryCheck(c *gin.Context) {
	summary, err := h.svc.CheckExpiringBatches(c.Request.Context())
	if err != nil {
		h.logger.Error("manual expiry check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "expiry check failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RunLowStockCheck triggers one low-stock evaluation pass on demand and
// returns its summary.
func (h *JobsHandler) RunLowStockCheck(c *gin.Context) {
	summary, err := h.svc.CheckLowStock(c.Request.Context())
	if err != nil {
		h.logger.Error("manual low stock check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "low stock check failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
