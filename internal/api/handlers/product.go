package handlers

import (
	"fmt"
	"net/http"
	"time"

	"leagueops/internal/config"
	"leagueops/internal/events"
	"leagueops/internal/logger"
	"leagueops/internal/models"
	"leagueops/internal/services/shopify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	db        *gorm.DB
	logger    *logger.Logger
	client    *shopify.Client
	publisher *events.Publisher
}

func NewProductHandler(db *gorm.DB, logger *logger.Logger, cfg *config.Config, publisher *events.Publisher) *ProductHandler {
	return &ProductHandler{
		db:        db,
		logger:    logger,
		client:    shopify.NewClient(cfg.ShopifyShopDomain, cfg.ShopifyAccessToken, cfg.RefundRetryAttempts, logger),
		publisher: publisher,
	}
}

type variantInput struct {
	Title string  `json:"title"`
	Price float64 `json:"price" binding:"required"`
	SKU   string  `json:"sku"`
}

// Create creates a league product in Shopify, as a draft when a publish
// time is set. Scheduled products are tracked locally until the worker
// publishes them.
func (h *ProductHandler) Create(c *gin.Context) {
	var request struct {
		Title       string         `json:"title" binding:"required"`
		Description string         `json:"description"`
		ProductType string         `json:"product_type"`
		Tags        string         `json:"tags"`
		Variants    []variantInput `json:"variants" binding:"required,min=1"`
		PublishAt   *time.Time     `json:"publish_at"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &shopify.Product{
		Title:       request.Title,
		BodyHTML:    request.Description,
		ProductType: request.ProductType,
		Tags:        request.Tags,
	}
	if request.PublishAt != nil {
		product.Status = "draft"
	}
	for _, v := range request.Variants {
		variant := shopify.Variant{
			Title: v.Title,
			Price: fmt.Sprintf("%.2f", v.Price),
			Sku:   v.SKU,
		}
		product.Variants = append(product.Variants, variant)
	}

	created, err := h.client.CreateProduct(product)
	if err != nil {
		h.logger.Error("Failed to create product: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create product in Shopify"})
		return
	}

	response := gin.H{"product_id": created.ID, "title": created.Title}

	if request.PublishAt != nil {
		record := &models.ScheduledProduct{
			ExternalID: created.ID,
			Title:      created.Title,
			PublishAt:  request.PublishAt.UTC(),
			Status:     string(models.ScheduleStatusScheduled),
		}
		if len(request.Variants) > 0 {
			record.Price = request.Variants[0].Price
			if request.Variants[0].SKU != "" {
				sku := request.Variants[0].SKU
				record.SKU = &sku
			}
		}

		if err := h.db.Create(record).Error; err != nil {
			h.logger.Error("Failed to save scheduled product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Product created but scheduling failed"})
			return
		}

		if err := h.publisher.Publish(events.Event{
			Type: events.TypeProductScheduled,
			Data: map[string]interface{}{
				"schedule_id": record.ID,
				"product_id":  created.ID,
				"publish_at":  record.PublishAt,
			},
		}); err != nil {
			h.logger.Error("Failed to publish product.scheduled for %s: %v", record.ID, err)
		}

		response["schedule_id"] = record.ID
		response["publish_at"] = record.PublishAt
	}

	c.JSON(http.StatusCreated, response)
}

// List returns tracked scheduled products.
func (h *ProductHandler) List(c *gin.Context) {
	query := h.db.Order("publish_at ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var products []models.ScheduledProduct
	if err := query.Find(&products).Error; err != nil {
		h.logger.Error("Failed to list scheduled products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list scheduled products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}
