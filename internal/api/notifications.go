package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	clienterrors "github.com/campusjam/campusjam-client/internal/errors"
	"github.com/campusjam/campusjam-client/internal/types"
)

// ListNotifications retrieves all notifications for the current user.
func ListNotifications(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/notifications", baseURL)
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
		return nil, clienterrors.FromResponse("list notifications", resp)
	}

	var list []types.Notification
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkNotificationRead marks a single notification as read.
func MarkNotificationRead(ctx context.Context, httpClient *http.Client, baseURL, notificationID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(notificationID, "notificationId"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/notifications/%s/read", baseURL, notificationID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return clienterrors.FromResponse("mark notification read", resp)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification as read.
func MarkAllNotificationsRead(ctx context.Context, httpClient *http.Client, baseURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/notifications/read-all", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return clienterrors.FromResponse("mark all notifications read", resp)
	}
	return nil
}
