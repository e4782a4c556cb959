// Package client is the Go counterpart of the web front end's service
// layer: it wraps the REST API, attaches the stored credential to every
// gated request and keeps the durable session in sync.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alumninet/alumninet-be/internal/models"
	"github.com/alumninet/alumninet-be/internal/session"
)

// ErrUnauthorized is returned when the server rejects the credential (or its
// absence) on a gated request.
var ErrUnauthorized = errors.New("unauthorized")

// Client calls the alumni network API.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
}

// New creates a client against baseURL, persisting its session in sess.
func New(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		session: sess,
	}
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates and persists the session. The session is only written
// when the response carries both the token and the user.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp, false); err != nil {
		return models.User{}, err
	}
	if resp.Token == "" || resp.User.ID == "" {
		return models.User{}, errors.New("invalid response from server")
	}
	if err := c.session.Save(resp.Token, resp.User); err != nil {
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}
	return resp.User, nil
}

// Logout tells the server and then drops the local session no matter what:
// a failed server call must never leave the client looking logged in.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, true); err != nil {
		log.Warn().Err(err).Msg("Server logout failed; clearing local session anyway")
	}
	return c.session.Clear()
}

// CurrentUser returns the locally stored identity, if any.
func (c *Client) CurrentUser() (models.User, bool) {
	return c.session.Current()
}

// Profiles fetches the full directory.
func (c *Client) Profiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := c.do(ctx, http.MethodGet, "/profiles", nil, &profiles, true)
	return profiles, err
}

// Profile fetches a single profile.
func (c *Client) Profile(ctx context.Context, id string) (models.Profile, error) {
	var profile models.Profile
	err := c.do(ctx, http.MethodGet, "/profiles/"+id, nil, &profile, true)
	return profile, err
}

// UpdateProfile applies a partial update to a profile.
func (c *Client) UpdateProfile(ctx context.Context, id string, patch map[string]any) (models.Profile, error) {
	var profile models.Profile
	err := c.do(ctx, http.MethodPut, "/profiles/"+id, patch, &profile, true)
	return profile, err
}

// Jobs fetches every job listing.
func (c *Client) Jobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := c.do(ctx, http.MethodGet, "/jobs", nil, &jobs, true)
	return jobs, err
}

// Job fetches a single job listing.
func (c *Client) Job(ctx context.Context, id string) (models.Job, error) {
	var job models.Job
	err := c.do(ctx, http.MethodGet, "/jobs/"+id, nil, &job, true)
	return job, err
}

// do performs one API call. When gated is true the stored credential is
// attached as a Bearer header; the request still goes out without one so the
// server can answer with its own 401.
func (c *Client) do(ctx context.Context, method, path string, payload, out any, gated bool) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if gated {
		if token, ok := c.session.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		message := readMessage(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			if message != "" {
				return fmt.Errorf("%w: %s", ErrUnauthorized, message)
			}
			return ErrUnauthorized
		}
		if message == "" {
			message = resp.Status
		}
		return errors.New(message)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func readMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}
