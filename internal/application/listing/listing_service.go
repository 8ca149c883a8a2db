package listing

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/listing"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/telemetry"
)

// ObjectStorageService defines the interface for object storage operations.
// This interface is implemented by the infrastructure layer.
type ObjectStorageService interface {
	// Upload stores an object
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL generates a presigned URL for downloading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

// UploadFile is one file of a multipart image upload
type UploadFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Service handles listing creation through the dynamic category form,
// image uploads, and publication.
type Service struct {
	listingRepo     listing.Repository
	storage         ObjectStorageService
	schema          listing.Schema
	retentionPolicy listing.RetentionPolicy
	businessMetrics *telemetry.BusinessMetrics
}

// SetBusinessMetrics sets the business metrics collector
func (s *Service) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// NewService creates a listing Service. The retention policy decides whether
// values hidden by a category switch are kept or dropped.
func NewService(listingRepo listing.Repository, storage ObjectStorageService, retentionPolicy listing.RetentionPolicy) *Service {
	return &Service{
		listingRepo:     listingRepo,
		storage:         storage,
		schema:          listing.PropertySchema(),
		retentionPolicy: retentionPolicy,
	}
}

// Form returns the renderable form for a category group with no prefill
func (s *Service) Form(group listing.CategoryGroup) (*FormView, error) {
	fields := s.schema.VisibleFields(group)
	if fields == nil {
		return nil, shared.NewDomainError("INVALID_GROUP", "Unknown category group")
	}
	return &FormView{Group: group, Fields: fields, Values: map[string]string{}}, nil
}

// SwitchCategory re-renders the form for a new category group, applying the
// configured retention policy to the values entered so far.
func (s *Service) SwitchCategory(newGroup listing.CategoryGroup, values map[string]string) (*FormView, error) {
	fields := s.schema.VisibleFields(newGroup)
	if fields == nil {
		return nil, shared.NewDomainError("INVALID_GROUP", "Unknown category group")
	}
	kept := s.schema.ApplyRetention(s.retentionPolicy, newGroup, values)
	return &FormView{Group: newGroup, Fields: fields, Values: kept}, nil
}

// Create validates a dynamic form submission and persists a draft listing.
// Validation failures surface as *listing.ValidationError with per-field
// messages; no listing is written in that case.
func (s *Service) Create(ctx context.Context, vendorID uuid.UUID, req CreateListingRequest) (*ListingResponse, error) {
	l, err := listing.NewListing(vendorID, req.EntryID, req.Group, s.schema, req.Values, req.ImageKeys)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Save(ctx, l); err != nil {
		return nil, err
	}

	resp, err := ToListingResponse(l)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadImages validates a dropped file batch and stores the accepted files.
// Valid files are stored even when siblings are rejected; the per-file errors
// ride back alongside the accepted keys.
func (s *Service) UploadImages(ctx context.Context, vendorID uuid.UUID, existing int, files []UploadFile) (*ImageUploadResult, error) {
	uploads := make([]listing.ImageUpload, len(files))
	byName := make(map[string]UploadFile, len(files))
	for i, f := range files {
		uploads[i] = listing.ImageUpload{FileName: f.FileName, Size: int64(len(f.Data)), ContentType: f.ContentType}
		byName[f.FileName] = f
	}

	accepted, rejected := listing.ValidateImages(existing, uploads)

	result := &ImageUploadResult{Rejected: rejected}
	for _, u := range accepted {
		f := byName[u.FileName]
		key := imageKey(vendorID, f.FileName)
		if err := s.storage.Upload(ctx, key, f.Data, f.ContentType); err != nil {
			result.Rejected = append(result.Rejected, listing.ImageError{FileName: f.FileName, Message: "Upload failed, try again"})
			continue
		}
		result.Accepted = append(result.Accepted, AcceptedImage{FileName: f.FileName, StorageKey: key})
	}

	return result, nil
}

// Get returns a listing by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ListingResponse, error) {
	l, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := ToListingResponse(l)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListByVendor returns a vendor's listings
func (s *Service) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ListingResponse, error) {
	listings, err := s.listingRepo.FindByVendor(ctx, vendorID, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(listings)
}

// ListActive returns published listings, optionally restricted to a catalog entry
func (s *Service) ListActive(ctx context.Context, entryID string, filter shared.Filter) ([]ListingResponse, error) {
	listings, err := s.listingRepo.FindActive(ctx, entryID, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(listings)
}

// Publish makes a vendor's listing visible to customers
func (s *Service) Publish(ctx context.Context, vendorID, id uuid.UUID) (*ListingResponse, error) {
	resp, err := s.mutate(ctx, vendorID, id, (*listing.Listing).Publish)
	if err == nil && s.businessMetrics != nil {
		s.businessMetrics.RecordListingPublished(ctx, resp.EntryID)
	}
	return resp, err
}

// Unpublish hides a vendor's listing
func (s *Service) Unpublish(ctx context.Context, vendorID, id uuid.UUID) (*ListingResponse, error) {
	return s.mutate(ctx, vendorID, id, (*listing.Listing).Unpublish)
}

func (s *Service) mutate(ctx context.Context, vendorID, id uuid.UUID, action func(l *listing.Listing) error) (*ListingResponse, error) {
	l, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.VendorID != vendorID {
		return nil, shared.ErrForbidden
	}
	if err := action(l); err != nil {
		return nil, err
	}
	if err := s.listingRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	resp, err := ToListingResponse(l)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func toResponses(listings []listing.Listing) ([]ListingResponse, error) {
	responses := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		resp, err := ToListingResponse(&listings[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func imageKey(vendorID uuid.UUID, fileName string) string {
	return fmt.Sprintf("listings/%s/%s%s", vendorID, uuid.New(), filepath.Ext(fileName))
}
