package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatusName is the custom type to enforce enum-like behavior
type DeliveryStatusName string

func (dsn DeliveryStatusName) String() string {
	return string(dsn)
}

const (
	DeliveryPending   DeliveryStatusName = "pending"
	DeliveryInTransit DeliveryStatusName = "in_transit"
	DeliveryDelivered DeliveryStatusName = "delivered"
)

// CourierRecord represents one row of the courier_performance table, unique
// per order. A row is created empty in pending at order placement and
// updated across the dispatch/delivery lifecycle.
type CourierRecord struct {
	ID                    int                 `db:"id"`
	OrderID               int                 `db:"order_id"`
	CourierName           string              `db:"courier_name"`
	ShippingMethod        string              `db:"shipping_method"`
	TrackingNumber        string              `db:"tracking_number"`
	CustomerCity          string              `db:"customer_city"`
	CustomerState         string              `db:"customer_state"`
	OrderPlacedDate       time.Time           `db:"order_placed_date"`
	DispatchDate          sql.NullTime        `db:"dispatch_date"`
	EstimatedDeliveryDate sql.NullTime        `db:"estimated_delivery_date"`
	ActualDeliveryDate    sql.NullTime        `db:"actual_delivery_date"`
	DeliveryTimeDays      decimal.NullDecimal `db:"delivery_time_days"`
	DelayDays             decimal.Decimal     `db:"delay_days"`
	OnTimeDelivery        bool                `db:"on_time_delivery"`
	DeliveryStatus        DeliveryStatusName  `db:"delivery_status"`
	ShippingCost          decimal.Decimal     `db:"shipping_cost"`
	Notes                 string              `db:"notes"`
	CreatedAt             time.Time           `db:"created_at"`
	UpdatedAt             time.Time           `db:"updated_at"`
}

// CourierUpdate carries the externally editable courier fields. Nil date
// pointers mean the field is absent; malformed inputs are mapped to nil
// upstream rather than rejected.
type CourierUpdate struct {
	CourierName       string
	TrackingNumber    string
	DispatchDate      *time.Time
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	Notes             string
}

// DeliveryMetrics is the derived portion of a courier record.
type DeliveryMetrics struct {
	DeliveryTimeDays decimal.NullDecimal
	DelayDays        decimal.Decimal
	OnTimeDelivery   bool
	Status           DeliveryStatusName
}
