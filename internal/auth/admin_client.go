package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskflow/internal/domain"
)

// AdminClient implements IdentityProvider against the hosted auth service's
// Admin API. It holds the service role key, the elevated credential that
// must never reach a browser.
type AdminClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewAdminClient creates an Admin API client for the hosted auth service.
func NewAdminClient(baseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// adminUserRequest is the payload for creating a new user
type adminUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	AppMetadata  map[string]interface{} `json:"app_metadata,omitempty"`
}

// adminUserResponse is the provider's user record shape
type adminUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// adminUserList is the response from listing users
type adminUserList struct {
	Users []adminUserResponse `json:"users"`
}

// CreateUser creates a new identity via the Admin API and returns its ID.
// The identity is created confirmed; credential delivery happens out-of-band.
func (c *AdminClient) CreateUser(ctx context.Context, identity NewIdentity) (string, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/admin/users", c.baseURL)

	appMeta := make(map[string]interface{}, len(identity.AppMetadata)+1)
	for k, v := range identity.AppMetadata {
		appMeta[k] = v
	}
	if identity.RequireChange {
		appMeta["require_password_change"] = true
	}

	payload := adminUserRequest{
		Email:        identity.Email,
		Password:     identity.Password,
		EmailConfirm: true,
		UserMetadata: map[string]interface{}{
			"first_name": identity.FirstName,
			"last_name":  identity.LastName,
		},
		AppMetadata: appMeta,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	// The Admin API reports an already-registered email as 422
	if resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusConflict {
		return "", &domain.ConflictError{
			Message:      fmt.Sprintf("email %s is already registered", identity.Email),
			ResourceType: "user",
		}
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create user failed with status %d: %s", resp.StatusCode, string(body))
	}

	var created adminUserResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}

	return created.ID, nil
}

// DeleteUser removes an identity. A missing user is not an error, so
// concurrent deletes stay idempotent at this layer.
func (c *AdminClient) DeleteUser(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("%s/auth/v1/admin/users/%s", c.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create delete request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete user failed with status %d: %s", resp.StatusCode, string(body))
	}
}

// FindUserIDByEmail searches for a user by email and returns their ID,
// or domain.ErrNotFound.
func (c *AdminClient) FindUserIDByEmail(ctx context.Context, email string) (string, error) {
	endpoint := fmt.Sprintf("%s/auth/v1/admin/users", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create list request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("list users failed with status %d: %s", resp.StatusCode, string(body))
	}

	var list adminUserList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return "", fmt.Errorf("decode list response: %w", err)
	}

	for _, user := range list.Users {
		if strings.EqualFold(user.Email, email) {
			return user.ID, nil
		}
	}

	return "", fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (c *AdminClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
}
