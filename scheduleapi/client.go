package scheduleapi

import (
	"context"
	"fmt"
	"time"

	"wayfare/models"

	"github.com/go-resty/resty/v2"
)

// Client talks to the schedule service's REST API. It satisfies
// courses.ScheduleService.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &Client{http: http}
}

// SetToken attaches the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

type createScheduleResponse struct {
	ScheduleID string `json:"schedule_id"`
	CreatedAt  string `json:"created_at"`
}

func (c *Client) CreateSchedule(ctx context.Context, userID, title, startDate, endDate string) (string, error) {
	var out createScheduleResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"user_id":    userID,
			"title":      title,
			"start_date": startDate,
			"end_date":   endDate,
		}).
		SetResult(&out).
		Post("/api/schedules")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("create schedule: status %d", resp.StatusCode())
	}
	if out.ScheduleID == "" {
		return "", fmt.Errorf("create schedule: missing schedule_id in response")
	}
	return out.ScheduleID, nil
}

func (c *Client) AddSpot(ctx context.Context, userID, scheduleID string, day int, placeID string, sequence int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"user_id":     userID,
			"schedule_id": scheduleID,
			"day":         day,
			"place_id":    placeID,
			"sequence":    sequence,
		}).
		Post("/api/schedules/" + scheduleID + "/spots")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("add spot: status %d", resp.StatusCode())
	}
	return nil
}

func (c *Client) FetchSchedules(ctx context.Context, userID string) ([]models.Schedule, error) {
	var out []models.Schedule
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", userID).
		SetResult(&out).
		Get("/api/schedules")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch schedules: status %d", resp.StatusCode())
	}
	return out, nil
}
