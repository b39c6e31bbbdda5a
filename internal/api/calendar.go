package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	clienterrors "github.com/campusjam/campusjam-client/internal/errors"
	"github.com/campusjam/campusjam-client/internal/types"
)

// ListCalendarEvents retrieves the user's external calendar events.
func ListCalendarEvents(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/calendar/my-events", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, clienterrors.FromResponse("list calendar events", resp)
	}

	var events []types.CalendarEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}

// AddSessionToCalendar asks the backend to mirror a session into the user's
// external calendar.
func AddSessionToCalendar(ctx context.Context, httpClient *http.Client, baseURL, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/calendar/add-session/%s", baseURL, sessionID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return clienterrors.FromResponse("add session to calendar", resp)
	}
	return nil
}
