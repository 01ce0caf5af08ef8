package handlers

import (
	"net/http"
	"time"

	"leagueops/internal/config"
	"leagueops/internal/events"
	"leagueops/internal/logger"
	"leagueops/internal/models"
	"leagueops/internal/refund"
	"leagueops/internal/services/shopify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RefundHandler struct {
	db        *gorm.DB
	logger    *logger.Logger
	config    *config.Config
	client    *shopify.Client
	publisher *events.Publisher
}

func NewRefundHandler(db *gorm.DB, logger *logger.Logger, cfg *config.Config, publisher *events.Publisher) *RefundHandler {
	return &RefundHandler{
		db:        db,
		logger:    logger,
		config:    cfg,
		client:    shopify.NewClient(cfg.ShopifyShopDomain, cfg.ShopifyAccessToken, cfg.RefundRetryAttempts, logger),
		publisher: publisher,
	}
}

// kindStatus maps classification kinds onto HTTP statuses at the API
// boundary. NotFound and NoContent both read as "order not found" to the
// requester.
var kindStatus = map[refund.ResponseKind]int{
	refund.KindOK:                  http.StatusOK,
	refund.KindNoContent:           http.StatusNotFound,
	refund.KindNotFound:            http.StatusNotFound,
	refund.KindForbidden:           http.StatusForbidden,
	refund.KindBadRequest:          http.StatusBadRequest,
	refund.KindNotAcceptable:       http.StatusNotAcceptable,
	refund.KindUnprocessableEntity: http.StatusUnprocessableEntity,
	refund.KindMultiStatus:         http.StatusMultiStatus,
	refund.KindServerError:         http.StatusBadGateway,
	refund.KindUnexpectedError:     http.StatusInternalServerError,
}

// Submit looks the order up, runs the refund decision pipeline, stores the
// resulting request and hands it to the worker for reviewer approval.
func (h *RefundHandler) Submit(c *gin.Context) {
	var request struct {
		OrderName   string     `json:"order_name" binding:"required"`
		Mode        string     `json:"mode" binding:"required,oneof=REFUND CREDIT"`
		SubmittedAt *time.Time `json:"submitted_at"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submittedAt := time.Now().UTC()
	if request.SubmittedAt != nil {
		submittedAt = request.SubmittedAt.UTC()
	}

	raw, err := h.client.FindOrder(request.OrderName)
	if err != nil {
		if apiErr, ok := err.(*shopify.APIError); ok {
			classified := refund.FromTransportStatus(apiErr.Status, "order lookup failed upstream")
			h.respondClassified(c, classified)
			return
		}
		h.logger.Error("Failed to look up order %s: %v", request.OrderName, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach the storefront API"})
		return
	}

	// The paid amount and description come from the order itself, so the
	// classification runs first and the context is built only for OK data.
	classified := refund.Classify(raw)
	if classified.Kind != refund.KindOK {
		h.respondClassified(c, classified)
		return
	}

	summary, err := shopify.ExtractOrderSummary(classified.Data)
	if err != nil {
		h.logger.Error("Order %s classified OK but had no usable node: %v", request.OrderName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order data was not usable"})
		return
	}

	outcome := refund.Decide(raw, summary.ProductDescription, refund.RefundContext{
		TotalPaid:   summary.TotalPrice,
		Mode:        refund.Mode(request.Mode),
		SubmittedAt: submittedAt,
	})

	record := &models.RefundRequest{
		OrderID:           summary.ID,
		OrderName:         summary.Name,
		Email:             summary.Email,
		ProductTitle:      summary.ProductTitle,
		Mode:              request.Mode,
		TotalPaid:         summary.TotalPrice,
		AmountDue:         outcome.Decision.AmountDue,
		TierIndex:         outcome.Decision.TierIndex,
		Percentage:        outcome.Decision.Percentage,
		PenaltyPercentage: outcome.Decision.PenaltyPercentage,
		Explanation:       outcome.Decision.Explanation,
		IsFallback:        outcome.Decision.IsFallback,
		Status:            string(models.RefundStatusPending),
		SubmittedAt:       submittedAt,
	}

	if err := h.db.Create(record).Error; err != nil {
		h.logger.Error("Failed to save refund request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save refund request"})
		return
	}

	if err := h.publisher.Publish(events.Event{
		Type:      events.TypeRefundRequested,
		RequestID: record.ID,
		OrderName: record.OrderName,
	}); err != nil {
		h.logger.Error("Failed to publish refund.requested for %s: %v", record.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"request_id": record.ID,
		"decision":   outcome.Decision,
	})
}

// List returns refund requests, optionally filtered by status.
func (h *RefundHandler) List(c *gin.Context) {
	query := h.db.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.RefundRequest
	if err := query.Find(&requests).Error; err != nil {
		h.logger.Error("Failed to list refund requests: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list refund requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests, "count": len(requests)})
}

// Get returns a single refund request by ID.
func (h *RefundHandler) Get(c *gin.Context) {
	var record models.RefundRequest
	if err := h.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Refund request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch refund request"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// Resolve approves or denies a pending refund request.
func (h *RefundHandler) Resolve(c *gin.Context) {
	var request struct {
		Status     string `json:"status" binding:"required,oneof=APPROVED DENIED"`
		ResolvedBy string `json:"resolved_by"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := resolveRefundRequest(h.db, c.Param("id"), request.Status, request.ResolvedBy)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Refund request not found"})
		return
	}
	if err == errAlreadyResolved {
		c.JSON(http.StatusConflict, gin.H{"error": "Refund request was already resolved"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to resolve refund request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve refund request"})
		return
	}

	if err := h.publisher.Publish(events.Event{
		Type:      events.TypeRefundResolved,
		RequestID: record.ID,
		OrderName: record.OrderName,
		Data:      map[string]interface{}{"status": record.Status},
	}); err != nil {
		h.logger.Error("Failed to publish refund.resolved for %s: %v", record.ID, err)
	}

	c.JSON(http.StatusOK, record)
}

func (h *RefundHandler) respondClassified(c *gin.Context, classified refund.ClassifiedResponse) {
	status, ok := kindStatus[classified.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := gin.H{"kind": classified.Kind}
	switch classified.Kind {
	case refund.KindNoContent, refund.KindNotFound:
		body["error"] = "order not found"
	case refund.KindMultiStatus:
		body["error"] = "order lookup returned partial data; manual review required"
		body["message"] = classified.Message
	default:
		body["error"] = classified.Message
	}

	c.JSON(status, body)
}
