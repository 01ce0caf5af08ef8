package shopify

import (
	"fmt"
	"strconv"
)

// ExtractOrderSummary walks the orders query data tree down to the first
// order node and flattens it into an OrderSummary. Every step in the tree
// is type-asserted; a missing branch leaves the field zero-valued.
func ExtractOrderSummary(data map[string]interface{}) (*OrderSummary, error) {
	node, err := firstEdgeNode(data, "orders")
	if err != nil {
		return nil, err
	}

	summary := &OrderSummary{}
	summary.ID, _ = node["id"].(string)
	summary.Name, _ = node["name"].(string)
	summary.Email, _ = node["email"].(string)

	if priceSet, ok := node["totalPriceSet"].(map[string]interface{}); ok {
		if shopMoney, ok := priceSet["shopMoney"].(map[string]interface{}); ok {
			if amount, ok := shopMoney["amount"].(string); ok {
				summary.TotalPrice, _ = strconv.ParseFloat(amount, 64)
			}
		}
	}

	if lineItems, ok := node["lineItems"].(map[string]interface{}); ok {
		if item, err := firstEdgeNodeOf(lineItems); err == nil {
			summary.ProductTitle, _ = item["title"].(string)
			if product, ok := item["product"].(map[string]interface{}); ok {
				summary.ProductDescription, _ = product["descriptionHtml"].(string)
			}
		}
	}

	if summary.ID == "" {
		return nil, fmt.Errorf("order node carried no id")
	}

	return summary, nil
}

func firstEdgeNode(data map[string]interface{}, field string) (map[string]interface{}, error) {
	connection, ok := data[field].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("no %s connection in response data", field)
	}
	return firstEdgeNodeOf(connection)
}

func firstEdgeNodeOf(connection map[string]interface{}) (map[string]interface{}, error) {
	edges, ok := connection["edges"].([]interface{})
	if !ok || len(edges) == 0 {
		return nil, fmt.Errorf("connection has no edges")
	}

	edge, ok := edges[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed edge")
	}

	node, ok := edge["node"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("edge has no node")
	}

	return node, nil
}
