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

// Login exchanges credentials for a token and the authenticated user.
func Login(ctx context.Context, httpClient *http.Client, baseURL string, req types.LoginRequest) (*types.LoginResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCredentials(req); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/auth/login", baseURL)
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

	if resp.StatusCode != http.StatusOK {
		return nil, clienterrors.FromResponse("login", resp)
	}

	var lr types.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return &lr, nil
}
