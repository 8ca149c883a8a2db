package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// OnboardingGateway drives the five-step vendor onboarding wizard and the
// admin moderation endpoints.
type OnboardingGateway struct {
	c *Client
}

// StepPayload is one wizard step's form payload. Validate runs the form
// rules locally; a non-empty map is field name to message and the submission
// should be aborted before any network call.
type StepPayload interface {
	Validate() map[string]string
}

// BusinessDetails is step 1 of the wizard.
type BusinessDetails struct {
	BusinessName       string `json:"business_name"`
	LegalBusinessName  string `json:"legal_business_name"`
	BusinessType       string `json:"business_type"`
	BusinessIndustry   string `json:"business_industry"`
	RegistrationNumber string `json:"registration_number"`
}

// Validate checks the required business-details fields.
func (d BusinessDetails) Validate() map[string]string {
	problems := map[string]string{}
	requireField(problems, "business_name", d.BusinessName)
	requireField(problems, "legal_business_name", d.LegalBusinessName)
	requireField(problems, "business_type", d.BusinessType)
	requireField(problems, "business_industry", d.BusinessIndustry)
	requireField(problems, "registration_number", d.RegistrationNumber)
	return problems
}

// BusinessContact is step 2 of the wizard.
type BusinessContact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// Validate checks the required business-contact fields.
func (c BusinessContact) Validate() map[string]string {
	problems := map[string]string{}
	requireField(problems, "email", c.Email)
	requireField(problems, "phone", c.Phone)
	return problems
}

// OwnerDetails is step 3 of the wizard.
type OwnerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IDNumber  string `json:"id_number"`
}

// Validate checks the required owner-details fields.
func (o OwnerDetails) Validate() map[string]string {
	problems := map[string]string{}
	requireField(problems, "first_name", o.FirstName)
	requireField(problems, "last_name", o.LastName)
	requireField(problems, "id_number", o.IDNumber)
	return problems
}

// ContactPerson is step 4 of the wizard.
type ContactPerson struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Validate checks the required contact-person fields.
func (c ContactPerson) Validate() map[string]string {
	problems := map[string]string{}
	requireField(problems, "first_name", c.FirstName)
	requireField(problems, "last_name", c.LastName)
	requireField(problems, "email", c.Email)
	return problems
}

// BusinessAddress is step 5 of the wizard. Submitting it moves a fully
// completed profile to pending review.
type BusinessAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Validate checks the required business-address fields.
func (a BusinessAddress) Validate() map[string]string {
	problems := map[string]string{}
	requireField(problems, "street", a.Street)
	requireField(problems, "city", a.City)
	requireField(problems, "country", a.Country)
	return problems
}

func requireField(problems map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		problems[name] = "This field is required"
	}
}

// Initialize creates or resumes the vendor profile for the signed-in user.
func (g *OnboardingGateway) Initialize(ctx context.Context) (*InitializeResult, error) {
	var result InitializeResult
	if err := g.c.do(ctx, http.MethodPost, "/onboarding/initialize", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Profile returns the current onboarding profile.
func (g *OnboardingGateway) Profile(ctx context.Context) (*VendorProfile, error) {
	var profile VendorProfile
	if err := g.c.do(ctx, http.MethodGet, "/onboarding/profile", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (g *OnboardingGateway) submitStep(ctx context.Context, path string, payload interface{}) (*StepResult, error) {
	var result StepResult
	if err := g.c.do(ctx, http.MethodPut, path, payload, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitBusinessDetails submits step 1.
func (g *OnboardingGateway) SubmitBusinessDetails(ctx context.Context, payload BusinessDetails) (*StepResult, error) {
	return g.submitStep(ctx, "/onboarding/business-details", payload)
}

// SubmitBusinessContact submits step 2.
func (g *OnboardingGateway) SubmitBusinessContact(ctx context.Context, payload BusinessContact) (*StepResult, error) {
	return g.submitStep(ctx, "/onboarding/business-contact", payload)
}

// SubmitOwnerDetails submits step 3.
func (g *OnboardingGateway) SubmitOwnerDetails(ctx context.Context, payload OwnerDetails) (*StepResult, error) {
	return g.submitStep(ctx, "/onboarding/owner-details", payload)
}

// SubmitContactPerson submits step 4.
func (g *OnboardingGateway) SubmitContactPerson(ctx context.Context, payload ContactPerson) (*StepResult, error) {
	return g.submitStep(ctx, "/onboarding/contact-person", payload)
}

// SubmitBusinessAddress submits step 5.
func (g *OnboardingGateway) SubmitBusinessAddress(ctx context.Context, payload BusinessAddress) (*StepResult, error) {
	return g.submitStep(ctx, "/onboarding/business-address", payload)
}

// ListVendors returns vendor profiles in the given review status. Admin only.
func (g *OnboardingGateway) ListVendors(ctx context.Context, status string) ([]VendorProfile, error) {
	path := "/admin/vendors"
	if status != "" {
		path += "?status=" + status
	}
	var profiles []VendorProfile
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ApproveVendor approves a pending application. Admin only.
func (g *OnboardingGateway) ApproveVendor(ctx context.Context, profileID uuid.UUID, note string) (*VendorProfile, error) {
	return g.moderate(ctx, profileID, "approve", note)
}

// RejectVendor rejects a pending application; the note is required.
func (g *OnboardingGateway) RejectVendor(ctx context.Context, profileID uuid.UUID, note string) (*VendorProfile, error) {
	return g.moderate(ctx, profileID, "reject", note)
}

// ReopenVendor sends a rejected application back to the wizard.
func (g *OnboardingGateway) ReopenVendor(ctx context.Context, profileID uuid.UUID) (*VendorProfile, error) {
	return g.moderate(ctx, profileID, "reopen", "")
}

func (g *OnboardingGateway) moderate(ctx context.Context, profileID uuid.UUID, action, note string) (*VendorProfile, error) {
	var body interface{}
	if note != "" {
		body = map[string]string{"note": note}
	}
	var profile VendorProfile
	path := "/admin/vendors/" + profileID.String() + "/" + action
	if err := g.c.do(ctx, http.MethodPost, path, body, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
