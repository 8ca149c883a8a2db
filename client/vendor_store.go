package client

import (
	"context"
	"encoding/json"
	"sync"
)

// VendorStore holds the vendor dashboard state: the onboarding record and
// the vendor's listings. Listings are overwritten on every fetch; the
// vendor record instead shallow-merges each confirmed step payload, so
// fields from earlier steps survive later submissions.
type VendorStore struct {
	c *Client

	loading  loadingFlag
	mu       sync.RWMutex
	record   map[string]interface{}
	profile  VendorProfile
	listings []Listing
}

// NewVendorStore creates a VendorStore over the client.
func NewVendorStore(c *Client) *VendorStore {
	return &VendorStore{c: c, record: map[string]interface{}{}}
}

// Loading reports whether a store action is in flight.
func (s *VendorStore) Loading() bool {
	return s.loading.Loading()
}

// Profile returns the last server view of the onboarding profile.
func (s *VendorStore) Profile() VendorProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Record returns a copy of the accumulated vendor record.
func (s *VendorStore) Record() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]interface{}, len(s.record))
	for k, v := range s.record {
		out[k] = v
	}
	return out
}

// Listings returns a copy of the vendor's fetched listings.
func (s *VendorStore) Listings() []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Initialize creates or resumes the onboarding profile and seeds the record
// from the server's view.
func (s *VendorStore) Initialize(ctx context.Context) (*InitializeResult, error) {
	defer s.loading.begin()()

	result, err := s.c.Onboarding.Initialize(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.profile = result.Profile
	s.mergeRecord(result.Profile.BusinessDetails)
	s.mergeRecord(result.Profile.BusinessContact)
	s.mergeRecord(result.Profile.OwnerDetails)
	s.mergeRecord(result.Profile.ContactPerson)
	s.mergeRecord(result.Profile.BusinessAddress)
	s.mu.Unlock()
	return result, nil
}

// SubmitStep validates one wizard step locally, sends it through the gateway
// and, when confirmed, shallow-merges the payload into the held record. On a
// local validation failure the field problems are returned and no request is
// issued.
func (s *VendorStore) SubmitStep(ctx context.Context, payload StepPayload, send func(context.Context) (*StepResult, error)) (*StepResult, map[string]string, error) {
	defer s.loading.begin()()

	if problems := payload.Validate(); len(problems) > 0 {
		return nil, problems, nil
	}

	result, err := send(ctx)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	s.profile = result.Profile
	s.mergeRecord(payloadFields(payload))
	s.mu.Unlock()
	return result, nil, nil
}

// FetchListings loads the vendor's listings, replacing the held slice.
func (s *VendorStore) FetchListings(ctx context.Context) error {
	defer s.loading.begin()()

	listings, err := s.c.Listings.Mine(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listings = listings
	s.mu.Unlock()
	return nil
}

// mergeRecord shallow-merges fields into the record. Callers hold the lock.
func (s *VendorStore) mergeRecord(fields map[string]interface{}) {
	for k, v := range fields {
		s.record[k] = v
	}
}

// payloadFields flattens a step payload struct into its JSON field map.
func payloadFields(payload interface{}) map[string]interface{} {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}
