// Package restapi implements the auth, catalog, and presign ports against the
// backend's JSON REST contract.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	domainauth "github.com/brickstash/catadm/internal/domain/auth"
	"github.com/brickstash/catadm/internal/domain/catalog"
	"github.com/brickstash/catadm/internal/domain/model"
	apperrors "github.com/brickstash/catadm/internal/errors"
	"github.com/brickstash/catadm/internal/ports"
)

// Fixed auth and upload endpoint paths, relative to the API base URL.
const (
	pathToken         = "/token/"
	pathMe            = "/me/"
	pathSignup        = "/signup/"
	pathPresignUpload = "/r2/presign-upload/"
)

// maxErrorBody bounds how much of an error response body is read for messages.
const maxErrorBody = 64 << 10

// Compile-time conformance to the ports this adapter serves.
var (
	_ ports.AuthAPI    = (*Client)(nil)
	_ ports.CatalogAPI = (*Client)(nil)
	_ ports.Presigner  = (*Client)(nil)
)

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	// BaseURL is the normalized API base URL (ends with "/api").
	BaseURL string
	// Tokens supplies the bearer token for authenticated requests. It is
	// consulted at send time for every request, so token rotation is picked
	// up without rebuilding the client.
	Tokens oauth2.TokenSource
	// Timeout is the per-request deadline. Zero means no client-side deadline
	// beyond the transport defaults.
	Timeout time.Duration
	// Logger receives request-level debug logging. Nil disables logging.
	Logger *slog.Logger
}

// Client is the REST API client. Authenticated requests carry
// "Authorization: Bearer <access>" injected by an oauth2 transport; the
// credential-exchange and signup endpoints go out unauthenticated.
type Client struct {
	baseURL string
	authed  *http.Client
	plain   *http.Client
	logger  *slog.Logger
}

// NewClient constructs a Client from options.
func NewClient(opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	authed := &http.Client{
		Timeout: opts.Timeout,
		Transport: &oauth2.Transport{
			Source: opts.Tokens,
			Base:   http.DefaultTransport,
		},
	}
	plain := &http.Client{Timeout: opts.Timeout}

	return &Client{
		baseURL: opts.BaseURL,
		authed:  authed,
		plain:   plain,
		logger:  logger,
	}
}

// requestParams groups the pieces of one REST round trip.
type requestParams struct {
	method string
	path   string
	body   any
	authed bool
}

// do performs one request and returns the response body. Transport failures
// and non-2xx statuses come back as AppError values.
func (c *Client) do(ctx context.Context, p requestParams) ([]byte, error) {
	var reqBody io.Reader
	if p.body != nil {
		encoded, err := json.Marshal(p.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", p.method, p.path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, p.method, c.baseURL+p.path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", p.method, p.path, err)
	}
	if p.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	client := c.plain
	if p.authed {
		client = c.authed
	}

	resp, err := client.Do(req)
	if err != nil {
		// Token-source failures (not signed in) surface through the transport;
		// keep their auth code instead of reporting a network problem.
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.MapTransportError(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("close response body failed", "path", p.path, "error", closeErr)
		}
	}()

	c.logger.Debug("api request", "method", p.method, "path", p.path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies only feed diagnostics, so reading them is bounded.
		// Success bodies are full payloads and must be read whole.
		detail, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNetwork, "Reading the server response failed.")
		}
		return nil, apperrors.MapResponseError(resp.StatusCode, detail)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNetwork, "Reading the server response failed.")
	}
	return body, nil
}

// decodeInto unmarshals a success body, reporting unrecognized shapes as
// server errors per the error taxonomy.
func decodeInto(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeServer, "The server returned an unrecognized response.")
	}
	return nil
}

// Login exchanges credentials for a token pair via POST /token/.
func (c *Client) Login(ctx context.Context, username, password string) (domainauth.TokenPair, error) {
	payload := map[string]string{"username": username, "password": password}
	body, err := c.do(ctx, requestParams{method: http.MethodPost, path: pathToken, body: payload})
	if err != nil {
		return domainauth.TokenPair{}, err
	}

	var pair domainauth.TokenPair
	if err := decodeInto(body, &pair); err != nil {
		return domainauth.TokenPair{}, err
	}
	if pair.Access == "" {
		return domainauth.TokenPair{}, apperrors.Server("The server returned no access token.")
	}
	return pair, nil
}

// Me performs the identity check via GET /me/.
func (c *Client) Me(ctx context.Context) (domainauth.Profile, error) {
	body, err := c.do(ctx, requestParams{method: http.MethodGet, path: pathMe, authed: true})
	if err != nil {
		return domainauth.Profile{}, err
	}

	var profile domainauth.Profile
	if err := decodeInto(body, &profile); err != nil {
		return domainauth.Profile{}, err
	}
	return profile, nil
}

// Signup registers a new account via POST /signup/.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) error {
	payload := map[string]string{
		"username": in.Username,
		"email":    in.Email,
		"password": in.Password,
	}
	_, err := c.do(ctx, requestParams{method: http.MethodPost, path: pathSignup, body: payload})
	return err
}

// List fetches the full collection for a kind.
func (c *Client) List(ctx context.Context, kind catalog.Kind) ([]catalog.Record, error) {
	body, err := c.do(ctx, requestParams{method: http.MethodGet, path: kind.CollectionPath(), authed: true})
	if err != nil {
		return nil, err
	}

	records, err := kind.DecodeList(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeServer, "The server returned an unrecognized list response.")
	}
	return records, nil
}

// Get retrieves one record by id.
func (c *Client) Get(ctx context.Context, kind catalog.Kind, id int64) (catalog.Record, error) {
	body, err := c.do(ctx, requestParams{method: http.MethodGet, path: kind.ItemPath(id), authed: true})
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(kind, body)
}

// Create posts a new record to the kind's collection endpoint.
func (c *Client) Create(ctx context.Context, kind catalog.Kind, payload any) (catalog.Record, error) {
	body, err := c.do(ctx, requestParams{
		method: http.MethodPost,
		path:   kind.CollectionPath(),
		body:   payload,
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(kind, body)
}

// Update patches an existing record. Only the submitted fields change.
func (c *Client) Update(ctx context.Context, kind catalog.Kind, id int64, payload any) (catalog.Record, error) {
	body, err := c.do(ctx, requestParams{
		method: http.MethodPatch,
		path:   kind.ItemPath(id),
		body:   payload,
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	return c.decodeRecord(kind, body)
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, kind catalog.Kind, id int64) error {
	_, err := c.do(ctx, requestParams{method: http.MethodDelete, path: kind.ItemPath(id), authed: true})
	return err
}

// PresignUpload requests a single-use upload ticket via POST /r2/presign-upload/.
func (c *Client) PresignUpload(ctx context.Context, in ports.PresignInput) (model.UploadTicket, error) {
	payload := map[string]string{
		"folder":       in.Folder,
		"filename":     in.Filename,
		"content_type": in.ContentType,
	}
	body, err := c.do(ctx, requestParams{
		method: http.MethodPost,
		path:   pathPresignUpload,
		body:   payload,
		authed: true,
	})
	if err != nil {
		return model.UploadTicket{}, err
	}

	var ticket model.UploadTicket
	if err := decodeInto(body, &ticket); err != nil {
		return model.UploadTicket{}, err
	}
	if ticket.UploadURL == "" || ticket.PublicURL == "" {
		return model.UploadTicket{}, apperrors.Server("The server returned an incomplete upload ticket.")
	}
	return ticket, nil
}

func (c *Client) decodeRecord(kind catalog.Kind, body []byte) (catalog.Record, error) {
	record, err := kind.DecodeRecord(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeServer, "The server returned an unrecognized record.")
	}
	return record, nil
}
