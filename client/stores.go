package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// loadingFlag tracks in-flight store actions. The flag is raised for the
// whole duration of an action and lowered on every exit path, including
// failures.
type loadingFlag struct {
	mu     sync.Mutex
	active int
}

func (f *loadingFlag) begin() func() {
	f.mu.Lock()
	f.active++
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}
}

// Loading reports whether any action is in flight.
func (f *loadingFlag) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active > 0
}

// AdminStore holds the admin dashboard state: the vendor applications list
// and the managed catalog. The store owns its slices exclusively; every
// fetch overwrites them wholesale.
type AdminStore struct {
	c *Client

	loading loadingFlag
	mu      sync.RWMutex
	vendors []VendorProfile
	catalog ManagedCatalog
}

// NewAdminStore creates an AdminStore over the client.
func NewAdminStore(c *Client) *AdminStore {
	return &AdminStore{c: c}
}

// Loading reports whether a store action is in flight.
func (s *AdminStore) Loading() bool {
	return s.loading.Loading()
}

// Vendors returns a copy of the fetched vendor applications.
func (s *AdminStore) Vendors() []VendorProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]VendorProfile, len(s.vendors))
	copy(out, s.vendors)
	return out
}

// Catalog returns the fetched managed catalog.
func (s *AdminStore) Catalog() ManagedCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// FetchVendors loads the applications in the given status, replacing the
// held slice.
func (s *AdminStore) FetchVendors(ctx context.Context, status string) error {
	defer s.loading.begin()()

	vendors, err := s.c.Onboarding.ListVendors(ctx, status)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.vendors = vendors
	s.mu.Unlock()
	return nil
}

// FetchCatalog loads the managed catalog, replacing the held view.
func (s *AdminStore) FetchCatalog(ctx context.Context) error {
	defer s.loading.begin()()

	managed, err := s.c.Catalog.Managed(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.catalog = *managed
	s.mu.Unlock()
	return nil
}

// Approve approves an application and updates the held record in place.
func (s *AdminStore) Approve(ctx context.Context, profileID uuid.UUID, note string) error {
	defer s.loading.begin()()

	profile, err := s.c.Onboarding.ApproveVendor(ctx, profileID, note)
	if err != nil {
		return err
	}
	s.replaceVendor(*profile)
	return nil
}

// Reject rejects an application with the required note.
func (s *AdminStore) Reject(ctx context.Context, profileID uuid.UUID, note string) error {
	defer s.loading.begin()()

	profile, err := s.c.Onboarding.RejectVendor(ctx, profileID, note)
	if err != nil {
		return err
	}
	s.replaceVendor(*profile)
	return nil
}

func (s *AdminStore) replaceVendor(profile VendorProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vendors {
		if s.vendors[i].ID == profile.ID {
			s.vendors[i] = profile
			return
		}
	}
	s.vendors = append(s.vendors, profile)
}
