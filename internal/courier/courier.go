// Package courier tracks per-order delivery lifecycle and derives courier
// performance metrics.
package courier

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

// DeriveMetrics computes the derived portion of a courier record from its
// lifecycle dates. Delivery time and punctuality need both dispatch and
// actual delivery, punctuality additionally needs an estimate to compare
// against. A delivery on or before the estimate is on time with zero delay.
func DeriveMetrics(dispatch, estimated, actual sql.NullTime) entity.DeliveryMetrics {
	m := entity.DeliveryMetrics{
		DelayDays: decimal.Zero,
		Status:    entity.DeliveryPending,
	}

	if dispatch.Valid {
		m.Status = entity.DeliveryInTransit
	}
	if !actual.Valid {
		return m
	}
	m.Status = entity.DeliveryDelivered
	if !dispatch.Valid {
		return m
	}

	days := decimal.NewFromFloat(actual.Time.Sub(dispatch.Time).Hours() / hoursPerDay).Round(1)
	if days.IsNegative() {
		days = decimal.Zero
	}
	m.DeliveryTimeDays = decimal.NullDecimal{Decimal: days, Valid: true}

	if estimated.Valid {
		if actual.Time.After(estimated.Time) {
			m.DelayDays = decimal.NewFromFloat(actual.Time.Sub(estimated.Time).Hours() / hoursPerDay).Round(1)
		} else {
			m.OnTimeDelivery = true
		}
	}
	return m
}

// Tracker maintains courier_performance rows across the order lifecycle.
type Tracker struct {
	rep dependency.Repository
}

func New(rep dependency.Repository) *Tracker {
	return &Tracker{rep: rep}
}

// InitOrder creates the pending record for a freshly placed order. Called
// again for the same order it is a no-op.
func (t *Tracker) InitOrder(ctx context.Context, orderID int) error {
	order, err := t.rep.Orders().GetOrderById(ctx, orderID)
	if err != nil {
		return fmt.Errorf("can't get order: %w", err)
	}

	rec := &entity.CourierRecord{
		OrderID:         orderID,
		ShippingMethod:  order.ShippingMethod,
		CustomerCity:    order.ShippingCity,
		CustomerState:   order.ShippingState,
		OrderPlacedDate: order.Placed,
		DeliveryStatus:  entity.DeliveryPending,
		ShippingCost:    order.ShippingTotal,
	}
	if err := t.rep.Courier().InitCourierRecord(ctx, rec); err != nil {
		return fmt.Errorf("can't init courier record: %w", err)
	}
	return nil
}

// UpdateFields applies externally edited courier fields and rederives the
// metrics. Empty strings and nil dates leave the stored value untouched.
// An update arriving before the order was initialized creates the pending
// row first.
func (t *Tracker) UpdateFields(ctx context.Context, orderID int, upd entity.CourierUpdate) (*entity.CourierRecord, error) {
	rec, err := t.ensureRecord(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if upd.CourierName != "" {
		rec.CourierName = upd.CourierName
	}
	if upd.TrackingNumber != "" {
		rec.TrackingNumber = upd.TrackingNumber
	}
	if upd.Notes != "" {
		rec.Notes = upd.Notes
	}
	if upd.DispatchDate != nil {
		rec.DispatchDate = sql.NullTime{Time: *upd.DispatchDate, Valid: true}
	}
	if upd.EstimatedDelivery != nil {
		rec.EstimatedDeliveryDate = sql.NullTime{Time: *upd.EstimatedDelivery, Valid: true}
	}
	if upd.ActualDelivery != nil {
		rec.ActualDeliveryDate = sql.NullTime{Time: *upd.ActualDelivery, Valid: true}
	}

	t.applyMetrics(rec)

	if err := t.rep.Courier().UpdateCourierRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("can't update courier record: %w", err)
	}

	slog.Default().InfoContext(ctx, "updated courier record",
		slog.Int("orderId", orderID),
		slog.String("courier", rec.CourierName),
		slog.String("status", rec.DeliveryStatus.String()),
	)
	return rec, nil
}

// HandleOrderCompleted marks the delivery done. When no actual delivery
// date has been entered the completion time is used.
func (t *Tracker) HandleOrderCompleted(ctx context.Context, orderID int) error {
	rec, err := t.ensureRecord(ctx, orderID)
	if err != nil {
		return err
	}

	if !rec.ActualDeliveryDate.Valid {
		rec.ActualDeliveryDate = sql.NullTime{Time: t.rep.Now(), Valid: true}
	}
	t.applyMetrics(rec)

	if err := t.rep.Courier().UpdateCourierRecord(ctx, rec); err != nil {
		return fmt.Errorf("can't update courier record: %w", err)
	}
	return nil
}

func (t *Tracker) ensureRecord(ctx context.Context, orderID int) (*entity.CourierRecord, error) {
	rec, err := t.rep.Courier().GetCourierRecord(ctx, orderID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("can't get courier record: %w", err)
	}

	if err := t.InitOrder(ctx, orderID); err != nil {
		return nil, err
	}
	rec, err = t.rep.Courier().GetCourierRecord(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("can't get courier record: %w", err)
	}
	return rec, nil
}

func (t *Tracker) applyMetrics(rec *entity.CourierRecord) {
	m := DeriveMetrics(rec.DispatchDate, rec.EstimatedDeliveryDate, rec.ActualDeliveryDate)
	rec.DeliveryTimeDays = m.DeliveryTimeDays
	rec.DelayDays = m.DelayDays
	rec.OnTimeDelivery = m.OnTimeDelivery
	rec.DeliveryStatus = m.Status
}
