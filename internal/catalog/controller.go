// Package catalog implements the generic per-kind list/search/CRUD lifecycle
// used by every administrative catalog view.
package catalog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	domaincatalog "github.com/brickstash/catadm/internal/domain/catalog"
	"github.com/brickstash/catadm/internal/ports"
)

// DrawerMode distinguishes the create and edit bindings of the drawer.
type DrawerMode string

const (
	DrawerCreate DrawerMode = "create"
	DrawerEdit   DrawerMode = "edit"
)

// DrawerState is the open create/edit surface. At most one drawer is open at
// a time; opening another replaces the current binding.
type DrawerState struct {
	Mode DrawerMode
	// Record is the bound record in edit mode; nil in create mode.
	Record domaincatalog.Record
}

// ControllerOptions groups dependencies for Controller.
type ControllerOptions struct {
	API ports.CatalogAPI
	// InitialKind is the kind shown first. Defaults to parts.
	InitialKind domaincatalog.Kind
	Logger      *slog.Logger
}

// Controller drives one resource kind at a time: it fetches the full list,
// applies a client-side text filter, and mediates create/update/delete.
// After any successful mutation the list is re-fetched wholesale; the source
// of truth is always a fresh server read, never a locally patched row.
//
// Methods are safe for concurrent use. Two overlapping refreshes for the same
// kind resolve last-response-wins; a refresh result for a kind that is no
// longer active is discarded rather than written into stale rows.
type Controller struct {
	api    ports.CatalogAPI
	logger *slog.Logger

	mu         sync.Mutex
	activeKind domaincatalog.Kind
	rows       []domaincatalog.Record
	searchText string
	isLoading  bool
	lastError  string
	drawer     *DrawerState
}

// NewController constructs a Controller focused on the initial kind. No fetch
// happens until Refresh or SelectKind is called.
func NewController(opts ControllerOptions) *Controller {
	kind := opts.InitialKind
	if !kind.Valid() {
		kind = domaincatalog.KindParts
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		api:        opts.API,
		logger:     logger,
		activeKind: kind,
	}
}

// ActiveKind returns the currently selected resource kind.
func (c *Controller) ActiveKind() domaincatalog.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeKind
}

// Rows returns the last successfully fetched list in server order.
func (c *Controller) Rows() []domaincatalog.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domaincatalog.Record(nil), c.rows...)
}

// IsLoading reports whether a list fetch is in flight.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isLoading
}

// LastError returns the human-readable message of the most recent failed list
// fetch, or empty. Mutation failures are returned from the mutating call and
// never land here.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// SearchText returns the current filter query.
func (c *Controller) SearchText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchText
}

// SetSearchText updates the filter query. Filtering is client-side only; no
// fetch is triggered.
func (c *Controller) SetSearchText(q string) {
	c.mu.Lock()
	c.searchText = q
	c.mu.Unlock()
}

// SelectKind switches the active kind, clears the search text, and refreshes.
func (c *Controller) SelectKind(ctx context.Context, kind domaincatalog.Kind) error {
	c.mu.Lock()
	c.activeKind = kind
	c.searchText = ""
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh fetches the full list for the active kind and replaces the rows
// wholesale on success. On failure the previous rows stay visible and
// LastError carries the message. Loading always ends when the call completes.
//
// The request is tagged with the kind it was issued for: if the active kind
// changed while the request was in flight, the result is dropped.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	kind := c.activeKind
	c.isLoading = true
	c.lastError = ""
	c.mu.Unlock()

	records, err := c.api.List(ctx, kind)

	c.mu.Lock()
	defer c.mu.Unlock()

	if kind != c.activeKind {
		// Stale result for a kind that is no longer shown.
		c.logger.Debug("discarding stale refresh result", "kind", kind, "active", c.activeKind)
		return nil
	}

	c.isLoading = false
	if err != nil {
		c.lastError = err.Error()
		return err
	}
	c.rows = records
	return nil
}

// Filtered returns the rows whose flattened text contains the search query,
// case-insensitively, preserving server order. An empty query returns all
// rows. The result is recomputed on every call.
func (c *Controller) Filtered() []domaincatalog.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(c.searchText))
	if q == "" {
		return append([]domaincatalog.Record(nil), c.rows...)
	}

	var matched []domaincatalog.Record
	for _, row := range c.rows {
		if strings.Contains(strings.ToLower(row.SearchText()), q) {
			matched = append(matched, row)
		}
	}
	return matched
}

// Create posts a new record for the active kind, then refreshes to pick up
// the server's view (ids, defaults, transformed fields). A failed create
// leaves the rows untouched and triggers no refresh.
func (c *Controller) Create(ctx context.Context, payload any) (domaincatalog.Record, error) {
	kind := c.ActiveKind()
	record, err := c.api.Create(ctx, kind, payload)
	if err != nil {
		return nil, err
	}
	return record, c.Refresh(ctx)
}

// Update patches an existing record for the active kind, then refreshes.
// A failed update leaves the rows untouched and triggers no refresh.
func (c *Controller) Update(ctx context.Context, id int64, payload any) (domaincatalog.Record, error) {
	kind := c.ActiveKind()
	record, err := c.api.Update(ctx, kind, id, payload)
	if err != nil {
		return nil, err
	}
	return record, c.Refresh(ctx)
}

// Delete removes a record for the active kind, then refreshes. A failed
// delete leaves the rows untouched and triggers no refresh.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	kind := c.ActiveKind()
	if err := c.api.Delete(ctx, kind, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// OpenCreate opens the drawer in create mode, replacing any open binding.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	c.drawer = &DrawerState{Mode: DrawerCreate}
	c.mu.Unlock()
}

// OpenEdit opens the drawer in edit mode bound to the record, replacing any
// open binding.
func (c *Controller) OpenEdit(record domaincatalog.Record) {
	c.mu.Lock()
	c.drawer = &DrawerState{Mode: DrawerEdit, Record: record}
	c.mu.Unlock()
}

// CloseDrawer closes the drawer if open.
func (c *Controller) CloseDrawer() {
	c.mu.Lock()
	c.drawer = nil
	c.mu.Unlock()
}

// Drawer returns the open drawer state, or nil when closed.
func (c *Controller) Drawer() *DrawerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drawer == nil {
		return nil
	}
	state := *c.drawer
	return &state
}
