package handlers

import (
	"bytes"
	"io"
	"net/http"

	"leagueops/internal/config"
	"leagueops/internal/events"
	"leagueops/internal/logger"
	"leagueops/internal/services/slack"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

type SlackHandler struct {
	db        *gorm.DB
	logger    *logger.Logger
	config    *config.Config
	publisher *events.Publisher
}

func NewSlackHandler(db *gorm.DB, logger *logger.Logger, cfg *config.Config, publisher *events.Publisher) *SlackHandler {
	return &SlackHandler{
		db:        db,
		logger:    logger,
		config:    cfg,
		publisher: publisher,
	}
}

// interactionPayload is the slice of Slack's block_actions callback the
// approval flow needs.
type interactionPayload struct {
	Type string `json:"type"`
	User struct {
		Username string `json:"username"`
	} `json:"user"`
	Actions []struct {
		ActionID string `json:"action_id"`
		Value    string `json:"value"`
	} `json:"actions"`
}

// Interactions handles the approve/deny button callbacks. Slack sends a
// form-encoded body with the JSON payload under "payload"; the signature
// covers the raw body.
func (h *SlackHandler) Interactions(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	timestamp := c.GetHeader("X-Slack-Request-Timestamp")
	signature := c.GetHeader("X-Slack-Signature")
	if !slack.VerifySignature(h.config.SlackSigningSecret, timestamp, body, signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid request signature"})
		return
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	raw := c.Request.PostFormValue("payload")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payload"})
		return
	}

	var payload interactionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payload"})
		return
	}

	if payload.Type != "block_actions" || len(payload.Actions) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to do"})
		return
	}

	action := payload.Actions[0]
	var status string
	switch action.ActionID {
	case slack.ActionApproveRefund:
		status = "APPROVED"
	case slack.ActionDenyRefund:
		status = "DENIED"
	default:
		h.logger.Debug("Unhandled slack action: %s", action.ActionID)
		c.JSON(http.StatusOK, gin.H{"message": "Action received but not processed"})
		return
	}

	record, err := resolveRefundRequest(h.db, action.Value, status, payload.User.Username)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Refund request not found"})
		return
	}
	if err == errAlreadyResolved {
		c.JSON(http.StatusOK, gin.H{"message": "Refund request was already resolved"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to resolve refund request from slack: %v", err)
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

	c.JSON(http.StatusOK, gin.H{
		"message":    "Refund request " + record.Status,
		"request_id": record.ID,
	})
}
