package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// events

type OrderEventRequest struct {
	OrderID int `json:"orderId" valid:"required"`
}

func (req *OrderEventRequest) Bind(r *http.Request) error {
	_, err := govalidator.ValidateStruct(req)
	return err
}

// handleOrderPlaced runs the order intake pipeline: profit rows, the
// courier lifecycle row and the lifetime value of the order's identity.
func (s *Server) handleOrderPlaced(w http.ResponseWriter, r *http.Request) {
	req := &OrderEventRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	ctx := r.Context()
	if err := s.svc.Profit.ProcessOrder(ctx, req.OrderID); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	if err := s.svc.Courier.InitOrder(ctx, req.OrderID); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	if err := s.svc.LTV.RecalculateForOrder(ctx, req.OrderID); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, NewEventResponse(req.OrderID, "order-placed"))
}

func (s *Server) handlePaymentComplete(w http.ResponseWriter, r *http.Request) {
	req := &OrderEventRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	ctx := r.Context()
	if err := s.svc.Attribution.RecordConversion(ctx, req.OrderID); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	if err := s.svc.LTV.RecalculateForOrder(ctx, req.OrderID); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, NewEventResponse(req.OrderID, "payment-complete"))
}

// handleOrderCompleted refreshes the derived data that depends on final
// order state and closes out the delivery.
func (s *Server) handleOrderCompleted(w http.ResponseWriter, r *http.Request) {
	req := &OrderEventRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	ctx := r.Context()
	if err := s.svc.Profit.ProcessOrder(ctx, req.OrderID); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	if err := s.svc.LTV.RecalculateForOrder(ctx, req.OrderID); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	if err := s.svc.Courier.HandleOrderCompleted(ctx, req.OrderID); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, NewEventResponse(req.OrderID, "order-completed"))
}

// attribution

type CheckoutAttributionRequest struct {
	OrderID     int    `json:"orderId" valid:"required"`
	UTMSource   string `json:"utmSource"`
	UTMMedium   string `json:"utmMedium"`
	UTMCampaign string `json:"utmCampaign"`
	UTMTerm     string `json:"utmTerm"`
	UTMContent  string `json:"utmContent"`
	ReferrerURL string `json:"referrerUrl"`
	LandingPage string `json:"landingPage"`
	UserAgent   string `json:"userAgent"`
}

func (req *CheckoutAttributionRequest) Bind(r *http.Request) error {
	_, err := govalidator.ValidateStruct(req)
	return err
}

func (s *Server) captureCheckout(w http.ResponseWriter, r *http.Request) {
	req := &CheckoutAttributionRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	meta := &entity.AttributionMeta{
		OrderID:     req.OrderID,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
		UTMTerm:     req.UTMTerm,
		UTMContent:  req.UTMContent,
		ReferrerURL: req.ReferrerURL,
		LandingPage: req.LandingPage,
		UserAgent:   req.UserAgent,
	}
	if err := s.svc.Attribution.CaptureCheckout(r.Context(), meta); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, NewEventResponse(req.OrderID, "attribution-captured"))
}

type CampaignSpendRequest struct {
	UTMSource   string          `json:"utmSource" valid:"required"`
	UTMCampaign string          `json:"utmCampaign" valid:"required"`
	Spend       decimal.Decimal `json:"spend"`
}

func (req *CampaignSpendRequest) Bind(r *http.Request) error {
	_, err := govalidator.ValidateStruct(req)
	return err
}

func (s *Server) updateCampaignSpend(w http.ResponseWriter, r *http.Request) {
	req := &CampaignSpendRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	n, err := s.svc.Attribution.UpdateCampaignSpend(r.Context(), req.UTMSource, req.UTMCampaign, req.Spend)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, &SpendResponse{
		UTMSource:   req.UTMSource,
		UTMCampaign: req.UTMCampaign,
		UpdatedRows: n,
	})
}

// couriers

type CourierUpdateRequest struct {
	CourierName       string `json:"courierName"`
	TrackingNumber    string `json:"trackingNumber"`
	DispatchDate      string `json:"dispatchDate"`
	EstimatedDelivery string `json:"estimatedDelivery"`
	ActualDelivery    string `json:"actualDelivery"`
	Notes             string `json:"notes"`
}

func (req *CourierUpdateRequest) Bind(r *http.Request) error {
	return nil
}

// parseDate maps malformed or empty date strings to nil rather than
// rejecting the whole update.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil
		}
	}
	return &t
}

func (s *Server) updateCourier(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "orderID"))
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid order id: %w", err)))
		return
	}

	req := &CourierUpdateRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	rec, err := s.svc.Courier.UpdateFields(r.Context(), orderID, entity.CourierUpdate{
		CourierName:       req.CourierName,
		TrackingNumber:    req.TrackingNumber,
		DispatchDate:      parseDate(req.DispatchDate),
		EstimatedDelivery: parseDate(req.EstimatedDelivery),
		ActualDelivery:    parseDate(req.ActualDelivery),
		Notes:             req.Notes,
	})
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}

	render.Render(w, r, &CourierResponse{Record: rec})
}

// reports

// timeRange reads from/to query params. An absent range defaults to the
// trailing 30 days.
func timeRange(r *http.Request) (entity.TimeRange, error) {
	now := time.Now()
	tr := entity.TimeRange{From: now.AddDate(0, 0, -30), To: now}

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return tr, fmt.Errorf("invalid from date: %w", err)
		}
		tr.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return tr, fmt.Errorf("invalid to date: %w", err)
		}
		tr.To = t
	}
	if tr.To.Before(tr.From) {
		return tr, fmt.Errorf("to date precedes from date")
	}
	return tr, nil
}

func limitOffset(r *http.Request) (int, int) {
	limit := defaultListLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func (s *Server) getProfitSummary(w http.ResponseWriter, r *http.Request) {
	tr, err := timeRange(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	summary, err := s.rep.Reports().GetProfitSummary(r.Context(), tr)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &ProfitSummaryResponse{Summary: summary})
}

func (s *Server) getProfitRows(w http.ResponseWriter, r *http.Request) {
	tr, err := timeRange(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	limit, offset := limitOffset(r)

	rows, err := s.rep.Reports().GetProfitRows(r.Context(), tr, limit, offset)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &ProfitRowsResponse{Rows: rows})
}

func (s *Server) getLTVSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.rep.Reports().GetLTVSummary(r.Context(), s.tiers)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &LTVSummaryResponse{Summary: summary})
}

func (s *Server) getTopCustomers(w http.ResponseWriter, r *http.Request) {
	filter := entity.LTVFilter{Segment: r.URL.Query().Get("segment")}
	if v := r.URL.Query().Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid active filter: %w", err)))
			return
		}
		filter.IsActive = &active
	}
	limit, _ := limitOffset(r)

	customers, err := s.rep.Reports().GetTopCustomers(r.Context(), filter, limit)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &TopCustomersResponse{Customers: customers})
}

func (s *Server) getChannelPerformance(w http.ResponseWriter, r *http.Request) {
	tr, err := timeRange(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	channels, err := s.rep.Reports().GetChannelPerformance(r.Context(), tr)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &ChannelsResponse{Channels: channels})
}

func (s *Server) getTopChannels(w http.ResponseWriter, r *http.Request) {
	tr, err := timeRange(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	limit, _ := limitOffset(r)

	channels, err := s.rep.Reports().GetTopChannels(r.Context(), tr, limit)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &TopChannelsResponse{Channels: channels})
}

func (s *Server) getCourierSummary(w http.ResponseWriter, r *http.Request) {
	tr, err := timeRange(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	couriers, err := s.rep.Reports().GetCourierSummary(r.Context(), tr)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &CourierSummaryResponse{Couriers: couriers})
}

func (s *Server) getCourierRows(w http.ResponseWriter, r *http.Request) {
	filter := entity.CourierFilter{
		CourierName:    r.URL.Query().Get("courier"),
		DeliveryStatus: entity.DeliveryStatusName(r.URL.Query().Get("status")),
	}
	limit, offset := limitOffset(r)

	rows, err := s.rep.Reports().GetCourierRows(r.Context(), filter, limit, offset)
	if err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	render.Render(w, r, &CourierRowsResponse{Rows: rows})
}
