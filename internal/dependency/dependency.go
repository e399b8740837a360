package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

//go:generate mockery --with-expecter --case underscore --all --output=./mocks
type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	// Orders is the read model of the host shop tables. Analytics never
	// mutates these rows except for the normalized phone column, which is
	// maintained on ingest so guest lookups stay indexed.
	Orders interface {
		GetOrderById(ctx context.Context, orderID int) (*entity.Order, error)
		GetOrderLineItems(ctx context.Context, orderID int) ([]entity.OrderLineItem, error)
		GetProductCosts(ctx context.Context, productID, variationID int) (*entity.ProductCosts, error)
		SetOrderNormalizedPhone(ctx context.Context, orderID int, phone string) error
		// GetOrdersByCustomerId returns qualifying orders for a registered
		// account, oldest first.
		GetOrdersByCustomerId(ctx context.Context, customerID int) ([]entity.Order, error)
		// GetOrdersByNormalizedPhone returns qualifying guest orders whose
		// normalized billing phone matches, oldest first.
		GetOrdersByNormalizedPhone(ctx context.Context, phone string) ([]entity.Order, error)
		// ListCustomerIds returns every registered account id with at least
		// one qualifying order.
		ListCustomerIds(ctx context.Context) ([]int, error)
		// ListGuestPhones returns every distinct normalized phone among
		// qualifying guest orders.
		ListGuestPhones(ctx context.Context) ([]string, error)
	}

	Profit interface {
		ContextStore
		// ReplaceOrderProfit deletes any prior rows for the order and
		// inserts the recalculated set.
		ReplaceOrderProfit(ctx context.Context, orderID int, rows []entity.LineItemProfit) error
		GetOrderProfit(ctx context.Context, orderID int) ([]entity.LineItemProfit, error)
		DeleteOrderProfit(ctx context.Context, orderID int) error
		// GetOrderProfitTotal sums profit_amount over the order's rows.
		GetOrderProfitTotal(ctx context.Context, orderID int) (decimal.Decimal, error)
	}

	LTV interface {
		ContextStore
		// UpsertCustomerLTV overwrites the row keyed by customer_id,
		// inserting it if absent.
		UpsertCustomerLTV(ctx context.Context, ltv *entity.CustomerLTV) error
		// UpsertGuestLTV overwrites the row keyed by customer_phone,
		// inserting it if absent.
		UpsertGuestLTV(ctx context.Context, ltv *entity.CustomerLTV) error
		GetLTVByCustomerId(ctx context.Context, customerID int) (*entity.CustomerLTV, error)
		GetLTVByPhone(ctx context.Context, phone string) (*entity.CustomerLTV, error)
	}

	Attribution interface {
		ContextStore
		// UpsertOrderAttributionMeta stores the checkout-time marketing
		// context for an order. Last write wins.
		UpsertOrderAttributionMeta(ctx context.Context, meta *entity.AttributionMeta) error
		GetOrderAttributionMeta(ctx context.Context, orderID int) (*entity.AttributionMeta, error)
		// AddAttribution inserts the conversion row. The unique key on
		// order_id makes conversion recording idempotent.
		AddAttribution(ctx context.Context, rec *entity.AttributionRecord) (int, error)
		HasAttribution(ctx context.Context, orderID int) (bool, error)
		// UpdateCampaignSpend sets marketing_spend and recomputed roi on
		// every conversion of the (source, campaign) pair.
		UpdateCampaignSpend(ctx context.Context, utmSource, utmCampaign string, spend decimal.Decimal) (int, error)
	}

	Courier interface {
		ContextStore
		// InitCourierRecord creates the pending row for an order if none
		// exists yet.
		InitCourierRecord(ctx context.Context, rec *entity.CourierRecord) error
		GetCourierRecord(ctx context.Context, orderID int) (*entity.CourierRecord, error)
		UpdateCourierRecord(ctx context.Context, rec *entity.CourierRecord) error
	}

	Reports interface {
		GetProfitSummary(ctx context.Context, tr entity.TimeRange) (*entity.ProfitSummary, error)
		GetProfitRows(ctx context.Context, tr entity.TimeRange, limit, offset int) ([]entity.LineItemProfit, error)
		GetLTVSummary(ctx context.Context, tiers []entity.LoyaltyTier) (*entity.LTVSummary, error)
		GetTopCustomers(ctx context.Context, filter entity.LTVFilter, limit int) ([]entity.CustomerLTV, error)
		GetChannelPerformance(ctx context.Context, tr entity.TimeRange) ([]entity.ChannelPerformance, error)
		GetTopChannels(ctx context.Context, tr entity.TimeRange, limit int) ([]entity.ChannelTotals, error)
		GetCourierSummary(ctx context.Context, tr entity.TimeRange) ([]entity.CourierSummary, error)
		GetCourierRows(ctx context.Context, filter entity.CourierFilter, limit, offset int) ([]entity.CourierRecord, error)
	}

	Repository interface {
		Orders() Orders
		Profit() Profit
		LTV() LTV
		Attribution() Attribution
		Courier() Courier
		Reports() Reports
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Ping(ctx context.Context) error
		Close()
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
