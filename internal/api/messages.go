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

// ListConversations retrieves the current user's conversation summaries,
// most recently active first.
func ListConversations(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/messages/conversations", baseURL)
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
		return nil, clienterrors.FromResponse("list conversations", resp)
	}

	var cr types.ConversationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}
	return cr.Conversations, nil
}

// ListDirectMessages retrieves the message history with another user.
func ListDirectMessages(ctx context.Context, httpClient *http.Client, baseURL, otherUserID string) ([]types.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(otherUserID, "userId"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/messages/dm/%s", baseURL, otherUserID)
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
		return nil, clienterrors.FromResponse("list direct messages", resp)
	}

	var mr types.MessagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, err
	}
	return mr.Messages, nil
}

// SendDirectMessage sends a direct message and returns the created message.
func SendDirectMessage(ctx context.Context, httpClient *http.Client, baseURL string, req types.SendDirectMessageRequest) (*types.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(req.RecipientID, "recipientId"); err != nil {
		return nil, err
	}
	if err := types.ValidateContent(req.Content); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/messages/dm", baseURL)
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
		return nil, clienterrors.FromResponse("send direct message", resp)
	}

	var sr types.SendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr.Data, nil
}

// MarkConversationRead marks all messages from senderID as read.
func MarkConversationRead(ctx context.Context, httpClient *http.Client, baseURL, senderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(senderID, "senderId"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/messages/dm/%s/read", baseURL, senderID)
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
		return clienterrors.FromResponse("mark conversation read", resp)
	}
	return nil
}
