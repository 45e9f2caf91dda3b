package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coachwell/internal/pkg/config"
	"coachwell/internal/pkg/errs"
)

// WherebyProvider creates rooms through the Whereby REST API.
type WherebyProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewWherebyProvider(cfg config.MeetingConfig) *WherebyProvider {
	return &WherebyProvider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *WherebyProvider) Name() string { return "whereby" }

type createMeetingRequest struct {
	RoomNamePrefix string `json:"roomNamePrefix"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

type createMeetingResponse struct {
	MeetingID string `json:"meetingId"`
	RoomURL   string `json:"roomUrl"`
}

func (p *WherebyProvider) CreateMeeting(
	ctx context.Context,
	title string,
	start time.Time,
	durationMinutes int,
	_ []string,
) (*Meeting, error) {
	body, err := json.Marshal(createMeetingRequest{
		RoomNamePrefix: title,
		StartDate:      start.UTC().Format(time.RFC3339),
		EndDate:        start.UTC().Add(time.Duration(durationMinutes) * time.Minute).Format(time.RFC3339),
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode meeting request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build meeting request")
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "meeting request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, errs.New(fmt.Sprintf("meeting api returned status %d", resp.StatusCode))
	}

	var out createMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errs.Wrap(err, "failed to decode meeting response")
	}
	return &Meeting{ID: out.MeetingID, JoinURL: out.RoomURL}, nil
}

func (p *WherebyProvider) DeleteMeeting(ctx context.Context, meetingID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.baseURL+"/meetings/"+meetingID, nil)
	if err != nil {
		return false, errs.Wrap(err, "failed to build delete request")
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return false, errs.Wrap(err, "meeting delete failed")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, errs.New(fmt.Sprintf("meeting api returned status %d", resp.StatusCode))
	}
}
