package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

// errors

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	AppCode    int64  `json:"code,omitempty"`  // application-specific error code
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		ErrorText:      err.Error(),
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: 404, StatusText: "Resource not found."}

// events

type EventResponse struct {
	StatusCode int    `json:"statusCode,omitempty"`
	OrderID    int    `json:"orderId"`
	Event      string `json:"event"`
}

func (rd *EventResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewEventResponse(orderID int, event string) *EventResponse {
	return &EventResponse{OrderID: orderID, Event: event, StatusCode: http.StatusOK}
}

// attribution

type SpendResponse struct {
	UTMSource   string `json:"utmSource"`
	UTMCampaign string `json:"utmCampaign"`
	UpdatedRows int    `json:"updatedRows"`
}

func (rd *SpendResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// couriers

type CourierResponse struct {
	Record *entity.CourierRecord `json:"record,omitempty"`
}

func (rd *CourierResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// reports

type ProfitSummaryResponse struct {
	Summary *entity.ProfitSummary `json:"summary,omitempty"`
}

func (rd *ProfitSummaryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ProfitRowsResponse struct {
	Rows []entity.LineItemProfit `json:"rows"`
}

func (rd *ProfitRowsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type LTVSummaryResponse struct {
	Summary *entity.LTVSummary `json:"summary,omitempty"`
}

func (rd *LTVSummaryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type TopCustomersResponse struct {
	Customers []entity.CustomerLTV `json:"customers"`
}

func (rd *TopCustomersResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ChannelsResponse struct {
	Channels []entity.ChannelPerformance `json:"channels"`
}

func (rd *ChannelsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type TopChannelsResponse struct {
	Channels []entity.ChannelTotals `json:"channels"`
}

func (rd *TopChannelsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type CourierSummaryResponse struct {
	Couriers []entity.CourierSummary `json:"couriers"`
}

func (rd *CourierSummaryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type CourierRowsResponse struct {
	Rows []entity.CourierRecord `json:"rows"`
}

func (rd *CourierRowsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
