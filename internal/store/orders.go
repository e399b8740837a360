package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

type ordersStore struct {
	*MYSQLStore
}

// Orders returns an object implementing Orders interface
func (ms *MYSQLStore) Orders() dependency.Orders {
	return &ordersStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) GetOrderById(ctx context.Context, orderID int) (*entity.Order, error) {
	query := `
	SELECT id, customer_id, status, billing_phone, billing_normalized_phone,
		billing_email, billing_name, currency, total_price, shipping_method,
		shipping_city, shipping_state, shipping_total, is_refund, placed
	FROM customer_order WHERE id = :orderId`

	order, err := QueryNamedOne[entity.Order](ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order not found: %d", orderID)
		}
		return nil, fmt.Errorf("can't get order by id: %w", err)
	}
	return &order, nil
}

func (ms *MYSQLStore) GetOrderLineItems(ctx context.Context, orderID int) ([]entity.OrderLineItem, error) {
	query := `
	SELECT order_id, product_id, variation_id, sku, product_name, quantity,
		item_total, item_tax_total
	FROM order_item WHERE order_id = :orderId ORDER BY id`

	items, err := QueryListNamed[entity.OrderLineItem](ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get order line items: %w", err)
	}
	return items, nil
}

// GetProductCosts returns the cost setup for a product variation. The
// variation row wins when present, the parent product row is the fallback
// and all costs default to zero when neither exists.
func (ms *MYSQLStore) GetProductCosts(ctx context.Context, productID, variationID int) (*entity.ProductCosts, error) {
	query := `
	SELECT cost_price, additional_cost, shipping_cost
	FROM product_cost
	WHERE product_id = :productId AND variation_id = :variationId`

	if variationID != 0 {
		costs, err := QueryNamedOne[entity.ProductCosts](ctx, ms.DB(), query, map[string]any{
			"productId":   productID,
			"variationId": variationID,
		})
		if err == nil {
			return &costs, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("can't get variation costs: %w", err)
		}
	}

	costs, err := QueryNamedOne[entity.ProductCosts](ctx, ms.DB(), query, map[string]any{
		"productId":   productID,
		"variationId": 0,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entity.ProductCosts{}, nil
		}
		return nil, fmt.Errorf("can't get product costs: %w", err)
	}
	return &costs, nil
}

func (ms *MYSQLStore) SetOrderNormalizedPhone(ctx context.Context, orderID int, phone string) error {
	query := `UPDATE customer_order SET billing_normalized_phone = :phone WHERE id = :orderId`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
		"phone":   phone,
	})
	if err != nil {
		return fmt.Errorf("can't set normalized phone: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) GetOrdersByCustomerId(ctx context.Context, customerID int) ([]entity.Order, error) {
	query := `
	SELECT id, customer_id, status, billing_phone, billing_normalized_phone,
		billing_email, billing_name, currency, total_price, shipping_method,
		shipping_city, shipping_state, shipping_total, is_refund, placed
	FROM customer_order
	WHERE customer_id = :customerId AND status IN (:statuses) AND is_refund = FALSE
	ORDER BY placed ASC`

	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, map[string]any{
		"customerId": customerID,
		"statuses":   qualifyingStatuses(),
	})
	if err != nil {
		return nil, fmt.Errorf("can't get orders by customer id: %w", err)
	}
	return orders, nil
}

func (ms *MYSQLStore) GetOrdersByNormalizedPhone(ctx context.Context, phone string) ([]entity.Order, error) {
	query := `
	SELECT id, customer_id, status, billing_phone, billing_normalized_phone,
		billing_email, billing_name, currency, total_price, shipping_method,
		shipping_city, shipping_state, shipping_total, is_refund, placed
	FROM customer_order
	WHERE billing_normalized_phone = :phone
		AND (customer_id IS NULL OR customer_id = 0)
		AND status IN (:statuses)
		AND is_refund = FALSE
	ORDER BY placed ASC`

	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, map[string]any{
		"phone":    phone,
		"statuses": qualifyingStatuses(),
	})
	if err != nil {
		return nil, fmt.Errorf("can't get orders by phone: %w", err)
	}
	return orders, nil
}

func (ms *MYSQLStore) ListCustomerIds(ctx context.Context) ([]int, error) {
	query := `
	SELECT DISTINCT customer_id FROM customer_order
	WHERE customer_id IS NOT NULL AND customer_id != 0
		AND status IN (:statuses) AND is_refund = FALSE`

	type row struct {
		CustomerID int `db:"customer_id"`
	}
	rows, err := QueryListNamed[row](ctx, ms.DB(), query, map[string]any{
		"statuses": qualifyingStatuses(),
	})
	if err != nil {
		return nil, fmt.Errorf("can't list customer ids: %w", err)
	}

	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.CustomerID)
	}
	return ids, nil
}

func (ms *MYSQLStore) ListGuestPhones(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT billing_normalized_phone FROM customer_order
	WHERE (customer_id IS NULL OR customer_id = 0)
		AND billing_normalized_phone != ''
		AND status IN (:statuses) AND is_refund = FALSE`

	type row struct {
		Phone string `db:"billing_normalized_phone"`
	}
	rows, err := QueryListNamed[row](ctx, ms.DB(), query, map[string]any{
		"statuses": qualifyingStatuses(),
	})
	if err != nil {
		return nil, fmt.Errorf("can't list guest phones: %w", err)
	}

	phones := make([]string, 0, len(rows))
	for _, r := range rows {
		phones = append(phones, r.Phone)
	}
	return phones, nil
}

func qualifyingStatuses() []string {
	statuses := make([]string, 0, len(entity.QualifyingOrderStatuses))
	for _, s := range entity.QualifyingOrderStatuses {
		statuses = append(statuses, s.String())
	}
	return statuses
}
