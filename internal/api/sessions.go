package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	clienterrors "github.com/campusjam/campusjam-client/internal/errors"
	"github.com/campusjam/campusjam-client/internal/types"
)

// ListSessions retrieves all public sessions.
func ListSessions(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Session, error) {
	return listSessions(ctx, httpClient, baseURL, "list sessions", "%s/api/sessions")
}

// ListUpcomingSessions retrieves scheduled sessions starting now or later.
func ListUpcomingSessions(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Session, error) {
	return listSessions(ctx, httpClient, baseURL, "list upcoming sessions", "%s/api/sessions/upcoming")
}

// ListActiveSessions retrieves sessions currently marked ongoing.
func ListActiveSessions(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Session, error) {
	return listSessions(ctx, httpClient, baseURL, "list active sessions", "%s/api/sessions/active")
}

// ListPastSessions retrieves finished sessions.
func ListPastSessions(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Session, error) {
	return listSessions(ctx, httpClient, baseURL, "list past sessions", "%s/api/sessions/past")
}

func listSessions(ctx context.Context, httpClient *http.Client, baseURL, op, format string) ([]types.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf(format, baseURL)
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
		return nil, clienterrors.FromResponse(op, resp)
	}

	var sessions []types.Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession retrieves a session by ID with host and attendees populated.
func GetSession(ctx context.Context, httpClient *http.Client, baseURL, sessionID string) (*types.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/sessions/%s", baseURL, sessionID)
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
		return nil, clienterrors.FromResponse("get session", resp)
	}

	var s types.Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession creates a new session.
func CreateSession(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateSessionRequest) (*types.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(req.Title, "title"); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/sessions", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, clienterrors.FromResponse("create session", resp)
	}

	var sr types.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr.Session, nil
}

// UpdateSession applies a partial update to a session.
func UpdateSession(ctx context.Context, httpClient *http.Client, baseURL, sessionID string, req types.UpdateSessionRequest) (*types.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/sessions/%s", baseURL, sessionID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, clienterrors.FromResponse("update session", resp)
	}

	var sr types.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr.Session, nil
}

// DeleteSession removes a session.
func DeleteSession(ctx context.Context, httpClient *http.Client, baseURL, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/sessions/%s", baseURL, sessionID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return clienterrors.FromResponse("delete session", resp)
	}
	return nil
}

// CompleteSession marks a session as finished.
func CompleteSession(ctx context.Context, httpClient *http.Client, baseURL, sessionID string) (*types.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/sessions/%s/complete", baseURL, sessionID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, clienterrors.FromResponse("complete session", resp)
	}

	var sr types.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr.Session, nil
}

// AddParticipant adds a user to a session's attendee list. The returned
// attendee IDs reflect server state after the mutation; callers refetch the
// session for populated data.
func AddParticipant(ctx context.Context, httpClient *http.Client, baseURL, sessionID, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	body, err := json.Marshal(types.AddParticipantRequest{UserID: userID})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/sessions/%s/participants", baseURL, sessionID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, clienterrors.FromResponse("add participant", resp)
	}

	var pr types.ParticipantsResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, err
	}
	return pr.Attendees, nil
}

// RemoveParticipant removes a user from a session's attendee list.
func RemoveParticipant(ctx context.Context, httpClient *http.Client, baseURL, sessionID, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/sessions/%s/participants/%s", baseURL, sessionID, userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, clienterrors.FromResponse("remove participant", resp)
	}

	var pr types.ParticipantsResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, err
	}
	return pr.Attendees, nil
}
