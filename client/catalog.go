package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CatalogGateway covers the public services list and the admin activation
// endpoints.
type CatalogGateway struct {
	c *Client
}

// ActiveServices returns the catalog entries currently open for business.
func (g *CatalogGateway) ActiveServices(ctx context.Context) ([]CatalogEntry, error) {
	var entries []CatalogEntry
	if err := g.c.do(ctx, http.MethodGet, "/marketplace/services", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Managed returns the admin view: active entries plus the remainder.
func (g *CatalogGateway) Managed(ctx context.Context) (*ManagedCatalog, error) {
	var managed ManagedCatalog
	if err := g.c.do(ctx, http.MethodGet, "/admin/catalog", nil, nil, &managed); err != nil {
		return nil, err
	}
	return &managed, nil
}

// Activate turns a catalog entry on.
func (g *CatalogGateway) Activate(ctx context.Context, entryID string) (*Activation, error) {
	var activation Activation
	if err := g.c.do(ctx, http.MethodPost, "/admin/catalog/"+entryID+"/activate", nil, nil, &activation); err != nil {
		return nil, err
	}
	return &activation, nil
}

// Deactivate turns a catalog entry off.
func (g *CatalogGateway) Deactivate(ctx context.Context, entryID string) (*Activation, error) {
	var activation Activation
	if err := g.c.do(ctx, http.MethodPost, "/admin/catalog/"+entryID+"/deactivate", nil, nil, &activation); err != nil {
		return nil, err
	}
	return &activation, nil
}

// Toggle flips an existing activation record by its ID.
func (g *CatalogGateway) Toggle(ctx context.Context, activationID uuid.UUID) (*Activation, error) {
	var activation Activation
	if err := g.c.do(ctx, http.MethodPost, "/admin/catalog/activations/"+activationID.String()+"/toggle", nil, nil, &activation); err != nil {
		return nil, err
	}
	return &activation, nil
}
