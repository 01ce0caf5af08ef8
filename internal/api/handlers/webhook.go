package handlers

import (
	"net/http"

	"leagueops/internal/config"
	"leagueops/internal/events"
	"leagueops/internal/logger"
	"leagueops/internal/services/shopify"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type WebhookHandler struct {
	logger    *logger.Logger
	config    *config.Config
	publisher *events.Publisher
}

func NewWebhookHandler(logger *logger.Logger, cfg *config.Config, publisher *events.Publisher) *WebhookHandler {
	return &WebhookHandler{
		logger:    logger,
		config:    cfg,
		publisher: publisher,
	}
}

// Shopify handles incoming Shopify webhooks. The HMAC header is verified
// against the raw body before the topic is dispatched.
func (h *WebhookHandler) Shopify(c *gin.Context) {
	topic := c.GetHeader("X-Shopify-Topic")
	shopDomain := c.GetHeader("X-Shopify-Shop-Domain")
	signature := c.GetHeader("X-Shopify-Hmac-Sha256")

	if topic == "" || shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required headers"})
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	if !shopify.VerifyWebhookSignature(h.config.ShopifyWebhookSecret, payload, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook signature"})
		return
	}

	switch topic {
	case "orders/create":
		err = h.handleOrderCreated(payload)
	default:
		h.logger.Debug("Unhandled webhook topic: %s", topic)
		c.JSON(http.StatusOK, gin.H{"message": "Webhook received but not processed"})
		return
	}

	if err != nil {
		h.logger.Error("Failed to process webhook %s: %v", topic, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed"})
}

func (h *WebhookHandler) handleOrderCreated(payload []byte) error {
	var order shopify.WebhookOrder
	if err := json.Unmarshal(payload, &order); err != nil {
		return err
	}

	return h.publisher.Publish(events.Event{
		Type:      events.TypeOrderCreated,
		OrderName: order.Name,
		Data: map[string]interface{}{
			"order_id":    order.ID,
			"email":       order.Email,
			"total_price": order.TotalPrice,
			"currency":    order.Currency,
		},
	})
}
