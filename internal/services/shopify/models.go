package shopify

import (
	"time"
)

// Product represents a Shopify product
type Product struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	BodyHTML    string     `json:"body_html,omitempty"`
	Vendor      string     `json:"vendor,omitempty"`
	ProductType string     `json:"product_type,omitempty"`
	Handle      string     `json:"handle,omitempty"`
	Status      string     `json:"status,omitempty"`
	Tags        string     `json:"tags,omitempty"`
	Variants    []Variant  `json:"variants,omitempty"`
	Options     []Option   `json:"options,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Variant represents a product variant
type Variant struct {
	ID                int64   `json:"id,omitempty"`
	ProductID         int64   `json:"product_id,omitempty"`
	Title             string  `json:"title,omitempty"`
	Price             string  `json:"price"`
	Sku               string  `json:"sku,omitempty"`
	Position          int     `json:"position,omitempty"`
	InventoryPolicy   string  `json:"inventory_policy,omitempty"`
	CompareAtPrice    *string `json:"compare_at_price,omitempty"`
	Option1           *string `json:"option1,omitempty"`
	Option2           *string `json:"option2,omitempty"`
	Option3           *string `json:"option3,omitempty"`
	Taxable           bool    `json:"taxable,omitempty"`
	InventoryQuantity int     `json:"inventory_quantity,omitempty"`
	RequiresShipping  bool    `json:"requires_shipping,omitempty"`
}

// Option represents a product option
type Option struct {
	ID        int64    `json:"id,omitempty"`
	ProductID int64    `json:"product_id,omitempty"`
	Name      string   `json:"name"`
	Position  int      `json:"position,omitempty"`
	Values    []string `json:"values"`
}

// OrderSummary is the slice of an order the refund workflow needs: who
// bought what, for how much, and the product description the season
// schedule is parsed from.
type OrderSummary struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	TotalPrice         float64 `json:"total_price"`
	ProductTitle       string  `json:"product_title"`
	ProductDescription string  `json:"product_description"`
}

// WebhookOrder is the payload shape of orders/* webhook topics.
type WebhookOrder struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	TotalPrice string `json:"total_price"`
	Currency   string `json:"currency"`
	CreatedAt  string `json:"created_at"`
}
