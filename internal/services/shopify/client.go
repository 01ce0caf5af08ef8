package shopify

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"leagueops/internal/logger"
	"leagueops/internal/refund"

	"github.com/goccy/go-json"
)

const apiVersion = "2023-10"

// orderQuery looks an order up by its storefront name. The search engine
// tolerates malformed filters, so shape diagnostics come back under
// errors/extensions rather than HTTP status codes; classification of that
// envelope happens downstream.
const orderQuery = `query($query: String!) {
  orders(first: 1, query: $query) {
    edges {
      node {
        id
        name
        email
        totalPriceSet { shopMoney { amount } }
        lineItems(first: 1) {
          edges {
            node {
              title
              product { descriptionHtml }
            }
          }
        }
      }
    }
  }
}`

// APIError is a non-2xx Admin API response that never produced a usable body.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify API request failed: %d - %s", e.Status, e.Body)
}

type Client struct {
	shopDomain    string
	accessToken   string
	retryAttempts int
	httpClient    *http.Client
	logger        *logger.Logger
}

func NewClient(shopDomain, accessToken string, retryAttempts int, logger *logger.Logger) *Client {
	if retryAttempts < 1 {
		retryAttempts = 1
	}
	return &Client{
		shopDomain:    shopDomain,
		accessToken:   accessToken,
		retryAttempts: retryAttempts,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FindOrder runs the order lookup query and returns the decoded envelope
// untouched. Retries cover transport failures and 429/5xx; other statuses
// surface as APIError for the caller to map.
func (c *Client) FindOrder(orderName string) (*refund.RawResponse, error) {
	payload := struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}{
		Query:     orderQuery,
		Variables: map[string]interface{}{"query": fmt.Sprintf("name:%s", orderName)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	url := fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json", c.shopDomain, apiVersion)

	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(attempt-1) * time.Second)
			c.logger.Debug("Retrying order lookup (attempt %d/%d)", attempt, c.retryAttempts)
		}

		raw, err := c.postQuery(url, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if apiErr, ok := err.(*APIError); ok {
			if apiErr.Status != http.StatusTooManyRequests && apiErr.Status < 500 {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("order lookup exhausted %d attempts: %w", c.retryAttempts, lastErr)
}

func (c *Client) postQuery(url string, body []byte) (*refund.RawResponse, error) {
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Status: resp.StatusCode, Body: string(b)}
	}

	var raw refund.RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &raw, nil
}

// CreateProduct creates a product in Shopify
func (c *Client) CreateProduct(product *Product) (*Product, error) {
	url := fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/products.json", c.shopDomain, apiVersion)

	payload := struct {
		Product Product `json:"product"`
	}{
		Product: *product,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var productResp struct {
		Product Product `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&productResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &productResp.Product, nil
}

// PublishProduct flips a product to active with the given publish time.
func (c *Client) PublishProduct(productID int64, publishedAt time.Time) error {
	url := fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/products/%d.json", c.shopDomain, apiVersion, productID)

	payload := struct {
		Product struct {
			ID          int64     `json:"id"`
			Status      string    `json:"status"`
			PublishedAt time.Time `json:"published_at"`
		} `json:"product"`
	}{}
	payload.Product.ID = productID
	payload.Product.Status = "active"
	payload.Product.PublishedAt = publishedAt

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	req, err := http.NewRequest("PUT", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	return nil
}
