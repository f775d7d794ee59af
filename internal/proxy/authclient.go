package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/qrgate/qrgate/internal/tokens"
)

// AuthClient checks bearer tokens against a remote instance of the auth
// service over HTTP. It implements the middleware TokenValidator interface.
// A non-nil error means the validator could not be reached, which callers
// must keep distinct from "checked and rejected".
type AuthClient struct {
	baseURL string
	client  *http.Client
}

func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AuthClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *AuthClient) Validate(ctx context.Context, token string) (tokens.Validation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/user/validate", nil)
	if err != nil {
		return tokens.Validation{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return tokens.Validation{}, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		// the auth service answered; decode its verdict
		var v tokens.Validation
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return tokens.Validation{}, fmt.Errorf("decode validation response: %w", err)
		}
		if !v.Valid && v.Reason == "" {
			v.Reason = tokens.ReasonInvalid
		}
		return v, nil
	default:
		return tokens.Validation{}, fmt.Errorf("auth service returned %d", resp.StatusCode)
	}
}
