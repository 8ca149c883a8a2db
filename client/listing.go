package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/listing"
)

// ListingGateway covers the dynamic listing form, the vendor's own listings
// and the public marketplace views.
type ListingGateway struct {
	c *Client
}

// CreateListingRequest is a dynamic form submission.
type CreateListingRequest struct {
	EntryID   string            `json:"entry_id"`
	Group     string            `json:"group"`
	Values    map[string]string `json:"values"`
	ImageKeys []string          `json:"image_keys,omitempty"`
}

// ValidateValues runs the form rules locally before any network call.
// A non-empty map is field name to message; submission should be aborted.
func (r CreateListingRequest) ValidateValues() map[string]string {
	return listing.PropertySchema().Validate(listing.CategoryGroup(r.Group), r.Values)
}

// Form fetches the visible field set for a category group.
func (g *ListingGateway) Form(ctx context.Context, group string) (*ListingForm, error) {
	var form ListingForm
	path := "/listings/form?group=" + url.QueryEscape(group)
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// SwitchCategory re-renders the form for a new group; the server's retention
// policy decides which entered values survive.
func (g *ListingGateway) SwitchCategory(ctx context.Context, group string, values map[string]string) (*ListingForm, error) {
	body := map[string]interface{}{"group": group, "values": values}
	var form ListingForm
	if err := g.c.do(ctx, http.MethodPost, "/listings/form/switch", body, nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// Create validates the form submission locally, then persists a draft
// listing. On a local validation failure no request is issued.
func (g *ListingGateway) Create(ctx context.Context, req CreateListingRequest) (*Listing, map[string]string, error) {
	if problems := req.ValidateValues(); len(problems) > 0 {
		return nil, problems, nil
	}

	var created Listing
	if err := g.c.do(ctx, http.MethodPost, "/listings", req, nil, &created); err != nil {
		return nil, nil, err
	}
	return &created, nil, nil
}

// Mine returns the vendor's own listings in every status.
func (g *ListingGateway) Mine(ctx context.Context) ([]Listing, error) {
	var listings []Listing
	if err := g.c.do(ctx, http.MethodGet, "/listings/mine", nil, nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Get returns one listing by ID.
func (g *ListingGateway) Get(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	if err := g.c.do(ctx, http.MethodGet, "/listings/"+id.String(), nil, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Publish makes a draft listing publicly visible.
func (g *ListingGateway) Publish(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	if err := g.c.do(ctx, http.MethodPost, "/listings/"+id.String()+"/publish", nil, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Unpublish takes an active listing off the marketplace.
func (g *ListingGateway) Unpublish(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	if err := g.c.do(ctx, http.MethodPost, "/listings/"+id.String()+"/unpublish", nil, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Browse returns active marketplace listings, optionally filtered by
// catalog entry.
func (g *ListingGateway) Browse(ctx context.Context, entryID string) ([]Listing, error) {
	path := "/marketplace/listings"
	if entryID != "" {
		path += "?entry_id=" + url.QueryEscape(entryID)
	}
	var listings []Listing
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
