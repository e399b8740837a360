package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

type courierStore struct {
	*MYSQLStore
}

// Courier returns an object implementing Courier interface
func (ms *MYSQLStore) Courier() dependency.Courier {
	return &courierStore{
		MYSQLStore: ms,
	}
}

// InitCourierRecord creates the pending row for an order. A duplicate init
// is a no-op, the unique key on order_id keeps one row per order.
func (ms *MYSQLStore) InitCourierRecord(ctx context.Context, rec *entity.CourierRecord) error {
	query := `
	INSERT INTO courier_performance
		(order_id, courier_name, shipping_method, tracking_number,
		customer_city, customer_state, order_placed_date, delivery_status,
		shipping_cost, notes, created_at, updated_at)
	VALUES
		(:orderId, :courierName, :shippingMethod, :trackingNumber,
		:customerCity, :customerState, :orderPlacedDate, :deliveryStatus,
		:shippingCost, :notes, :createdAt, :updatedAt)`

	now := ms.Now()
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"orderId":         rec.OrderID,
		"courierName":     rec.CourierName,
		"shippingMethod":  rec.ShippingMethod,
		"trackingNumber":  rec.TrackingNumber,
		"customerCity":    rec.CustomerCity,
		"customerState":   rec.CustomerState,
		"orderPlacedDate": rec.OrderPlacedDate,
		"deliveryStatus":  entity.DeliveryPending,
		"shippingCost":    rec.ShippingCost,
		"notes":           rec.Notes,
		"createdAt":       now,
		"updatedAt":       now,
	})
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("can't init courier record: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) GetCourierRecord(ctx context.Context, orderID int) (*entity.CourierRecord, error) {
	query := `
	SELECT id, order_id, courier_name, shipping_method, tracking_number,
		customer_city, customer_state, order_placed_date, dispatch_date,
		estimated_delivery_date, actual_delivery_date, delivery_time_days,
		delay_days, on_time_delivery, delivery_status, shipping_cost, notes,
		created_at, updated_at
	FROM courier_performance WHERE order_id = :orderId`

	rec, err := QueryNamedOne[entity.CourierRecord](ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("courier record not found for order %d: %w", orderID, sql.ErrNoRows)
		}
		return nil, fmt.Errorf("can't get courier record: %w", err)
	}
	return &rec, nil
}

func (ms *MYSQLStore) UpdateCourierRecord(ctx context.Context, rec *entity.CourierRecord) error {
	query := `
	UPDATE courier_performance
	SET courier_name = :courierName,
		tracking_number = :trackingNumber,
		dispatch_date = :dispatchDate,
		estimated_delivery_date = :estimatedDeliveryDate,
		actual_delivery_date = :actualDeliveryDate,
		delivery_time_days = :deliveryTimeDays,
		delay_days = :delayDays,
		on_time_delivery = :onTimeDelivery,
		delivery_status = :deliveryStatus,
		notes = :notes,
		updated_at = :updatedAt
	WHERE order_id = :orderId`

	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"orderId":               rec.OrderID,
		"courierName":           rec.CourierName,
		"trackingNumber":        rec.TrackingNumber,
		"dispatchDate":          rec.DispatchDate,
		"estimatedDeliveryDate": rec.EstimatedDeliveryDate,
		"actualDeliveryDate":    rec.ActualDeliveryDate,
		"deliveryTimeDays":      rec.DeliveryTimeDays,
		"delayDays":             rec.DelayDays,
		"onTimeDelivery":        rec.OnTimeDelivery,
		"deliveryStatus":        rec.DeliveryStatus,
		"notes":                 rec.Notes,
		"updatedAt":             ms.Now(),
	})
	if err != nil {
		return fmt.Errorf("can't update courier record: %w", err)
	}
	return nil
}
