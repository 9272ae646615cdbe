// Package github verifies GitHub personal access tokens against the
// GitHub user endpoint. Transport errors, non-200 responses and
// malformed bodies are all folded into an invalid outcome: the caller
// only ever learns "authenticated or not", never why.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const userAgent = "Thunderstorm/1.0 (Linux)"

// Outcome is the result of a token verification. When Valid is false,
// Reason carries an internal explanation used only for debug logging;
// it is never surfaced to the client.
type Outcome struct {
	Valid  bool
	UserID int64
	Login  string
	Reason string
}

// Verifier validates opaque tokens and resolves them to an identity.
type Verifier interface {
	Verify(ctx context.Context, token string) Outcome
}

// Client is the GitHub-backed Verifier implementation.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a GitHub verification client. baseURL is the API
// root (https://api.github.com in production, an httptest server in
// tests).
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "github").Logger(),
	}
}

type userResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Verify checks token against the GitHub user endpoint. A blank token
// short-circuits locally without a network call.
func (c *Client) Verify(ctx context.Context, token string) Outcome {
	if strings.TrimSpace(token) == "" {
		return Outcome{Reason: "empty token"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return Outcome{Reason: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "token "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts and transport failures are indistinguishable from
		// a rejected token to the caller.
		c.log.Debug().Err(err).Msg("Token verification request failed")
		return Outcome{Reason: fmt.Sprintf("transport: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Outcome{Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Outcome{Reason: fmt.Sprintf("read body: %v", err)}
	}

	var user userResponse
	if err := json.Unmarshal(body, &user); err != nil {
		return Outcome{Reason: fmt.Sprintf("decode body: %v", err)}
	}

	return Outcome{Valid: true, UserID: user.ID, Login: user.Login}
}
