// Package tripapi is the HTTP client for the external Trip Service. It
// covers exactly the operations the itinerary editor needs; request and
// response shapes follow the service's own schema. There is no retry
// logic: a failed call is terminal for the operation that issued it.
package tripapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Client provides access to the Trip Service.
type Client interface {
	GetTrip(ctx context.Context, id int64) (*TripPayload, error)
	ListTrips(ctx context.Context, userID int64) ([]TripPayload, error)
	CreateTrip(ctx context.Context, req CreateTripRequest) (*TripPayload, error)
	UpdateTrip(ctx context.Context, id int64, req UpdateTripRequest) (*TripPayload, error)
	DeleteTrip(ctx context.Context, id int64) error

	GetTripDays(ctx context.Context, tripID int64) ([]TripDayPayload, error)

	GetSchedulesByDay(ctx context.Context, dayID int64) ([]SchedulePayload, error)
	CreateSchedule(ctx context.Context, req SchedulePayload) (*SchedulePayload, error)
	UpdateSchedule(ctx context.Context, id int64, req UpdateScheduleRequest) (*SchedulePayload, error)
	DeleteSchedule(ctx context.Context, id int64) error

	GetChecklistItemsByTrip(ctx context.Context, tripID int64) ([]ChecklistItemPayload, error)
	CreateChecklistItem(ctx context.Context, req ChecklistItemPayload) (*ChecklistItemPayload, error)
	UpdateChecklistItem(ctx context.Context, id int64, req UpdateChecklistItemRequest) (*ChecklistItemPayload, error)
	DeleteChecklistItem(ctx context.Context, id int64) error

	GetAllCities(ctx context.Context) ([]CityPayload, error)
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the configured Trip Service. A non-empty
// token is injected as a bearer header on every request via an oauth2
// static token source.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	base := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
	hc := base
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = &http.Client{
			Transport: &oauth2.Transport{Source: src, Base: base.Transport},
		}
	}
	return &httpClient{cfg: cfg, http: hc, observer: observer}
}

func (c *httpClient) GetTrip(ctx context.Context, id int64) (*TripPayload, error) {
	var out TripPayload
	if err := c.call(ctx, "get_trip", http.MethodGet, fmt.Sprintf("/trips/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) ListTrips(ctx context.Context, userID int64) ([]TripPayload, error) {
	var out []TripPayload
	path := fmt.Sprintf("/trips?user_id=%d", userID)
	if err := c.call(ctx, "list_trips", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) CreateTrip(ctx context.Context, req CreateTripRequest) (*TripPayload, error) {
	var out TripPayload
	if err := c.call(ctx, "create_trip", http.MethodPost, "/trips", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) UpdateTrip(ctx context.Context, id int64, req UpdateTripRequest) (*TripPayload, error) {
	var out TripPayload
	if err := c.call(ctx, "update_trip", http.MethodPut, fmt.Sprintf("/trips/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) DeleteTrip(ctx context.Context, id int64) error {
	return c.call(ctx, "delete_trip", http.MethodDelete, fmt.Sprintf("/trips/%d", id), nil, nil)
}

func (c *httpClient) GetTripDays(ctx context.Context, tripID int64) ([]TripDayPayload, error) {
	var out []TripDayPayload
	if err := c.call(ctx, "get_trip_days", http.MethodGet, fmt.Sprintf("/trips/%d/days", tripID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) GetSchedulesByDay(ctx context.Context, dayID int64) ([]SchedulePayload, error) {
	var out []SchedulePayload
	if err := c.call(ctx, "get_schedules_by_day", http.MethodGet, fmt.Sprintf("/trip-days/%d/schedules", dayID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) CreateSchedule(ctx context.Context, req SchedulePayload) (*SchedulePayload, error) {
	var out SchedulePayload
	if err := c.call(ctx, "create_schedule", http.MethodPost, "/schedules", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) UpdateSchedule(ctx context.Context, id int64, req UpdateScheduleRequest) (*SchedulePayload, error) {
	var out SchedulePayload
	if err := c.call(ctx, "update_schedule", http.MethodPut, fmt.Sprintf("/schedules/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) DeleteSchedule(ctx context.Context, id int64) error {
	return c.call(ctx, "delete_schedule", http.MethodDelete, fmt.Sprintf("/schedules/%d", id), nil, nil)
}

func (c *httpClient) GetChecklistItemsByTrip(ctx context.Context, tripID int64) ([]ChecklistItemPayload, error) {
	var out []ChecklistItemPayload
	if err := c.call(ctx, "get_checklist_items", http.MethodGet, fmt.Sprintf("/trips/%d/checklist-items", tripID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) CreateChecklistItem(ctx context.Context, req ChecklistItemPayload) (*ChecklistItemPayload, error) {
	var out ChecklistItemPayload
	if err := c.call(ctx, "create_checklist_item", http.MethodPost, "/checklist-items", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) UpdateChecklistItem(ctx context.Context, id int64, req UpdateChecklistItemRequest) (*ChecklistItemPayload, error) {
	var out ChecklistItemPayload
	if err := c.call(ctx, "update_checklist_item", http.MethodPut, fmt.Sprintf("/checklist-items/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) DeleteChecklistItem(ctx context.Context, id int64) error {
	return c.call(ctx, "delete_checklist_item", http.MethodDelete, fmt.Sprintf("/checklist-items/%d", id), nil, nil)
}

func (c *httpClient) GetAllCities(ctx context.Context) ([]CityPayload, error) {
	var out []CityPayload
	if err := c.call(ctx, "get_all_cities", http.MethodGet, "/cities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// call performs one request and decodes the JSON response into out when out
// is non-nil. Non-2xx responses become *APIError with the service's detail
// payload preserved.
func (c *httpClient) call(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	status, err := c.doRequest(ctx, method, path, body, out)
	latency := time.Since(start).Milliseconds()

	if err != nil && ctx.Err() != nil {
		err = ErrTimeout
	} else if isConnectionError(err) {
		err = ErrUnavailable
	}

	c.observer.OnCallComplete(APICallEvent{
		Op:        op,
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err, status),
	})

	return err
}

func (c *httpClient) doRequest(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &APIError{Op: method + " " + path, Status: resp.StatusCode, Detail: extractDetail(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// extractDetail pulls the structured "detail" field the service attaches to
// error responses; when the body is not shaped that way the raw body is
// kept instead.
func extractDetail(body []byte) json.RawMessage {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		return envelope.Detail
	}
	return json.RawMessage(body)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
