package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User mirrors the server's user view.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair is an access/refresh credential pair.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResult is a successful login: the credential pair plus the account.
type LoginResult struct {
	Token TokenPair `json:"token"`
	User  User      `json:"user"`
}

// CatalogEntry is a public catalog entry with its activation state.
type CatalogEntry struct {
	ActivationID *uuid.UUID `json:"activation_id,omitempty"`
	EntryID      string     `json:"entry_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	Group        string     `json:"group"`
	Keywords     []string   `json:"keywords"`
	IsActive     bool       `json:"is_active"`
}

// ManagedCatalog is the admin view: active entries and the remainder.
type ManagedCatalog struct {
	Active    []CatalogEntry `json:"active"`
	Available []CatalogEntry `json:"available"`
}

// Activation is an activation record after a toggle.
type Activation struct {
	ID        uuid.UUID `json:"id"`
	EntryID   string    `json:"entry_id"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VendorProfile mirrors the server's onboarding profile view. Section
// payloads are kept as raw maps so the store can shallow-merge them.
type VendorProfile struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"user_id"`
	Status          string                 `json:"status"`
	CompletedStep   int                    `json:"completed_step"`
	NextStep        int                    `json:"next_step"`
	TotalSteps      int                    `json:"total_steps"`
	BusinessDetails map[string]interface{} `json:"business_details"`
	BusinessContact map[string]interface{} `json:"business_contact"`
	OwnerDetails    map[string]interface{} `json:"owner_details"`
	ContactPerson   map[string]interface{} `json:"contact_person"`
	BusinessAddress map[string]interface{} `json:"business_address"`
	ReviewNote      string                 `json:"review_note,omitempty"`
}

// InitializeResult distinguishes a fresh wizard from a resumed one.
type InitializeResult struct {
	NewVendor     bool          `json:"new_vendor"`
	IsInitialized bool          `json:"is_initialized"`
	Profile       VendorProfile `json:"profile"`
}

// StepResult is the outcome of one wizard step submission.
type StepResult struct {
	Advance bool          `json:"advance"`
	Changed bool          `json:"changed"`
	Profile VendorProfile `json:"profile"`
}

// FormField is one field of the dynamic listing form.
type FormField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	MinLen   int      `json:"min_len,omitempty"`
	MaxLen   int      `json:"max_len,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// ListingForm is the visible field set for a category group.
type ListingForm struct {
	Group  string            `json:"group"`
	Fields []FormField       `json:"fields"`
	Values map[string]string `json:"values"`
}

// Listing mirrors the server's listing view.
type Listing struct {
	ID         uuid.UUID              `json:"id"`
	VendorID   uuid.UUID              `json:"vendor_id"`
	EntryID    string                 `json:"entry_id"`
	Group      string                 `json:"group"`
	Title      string                 `json:"title"`
	Price      decimal.Decimal        `json:"price"`
	Status     string                 `json:"status"`
	Attributes map[string]interface{} `json:"attributes"`
	Images     []string               `json:"images"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// Plan is an offered subscription plan.
type Plan struct {
	Tier         string          `json:"tier"`
	Name         string          `json:"name"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	AnnualPrice  decimal.Decimal `json:"annual_price"`
	Features     []string        `json:"features"`
}

// Selection is a pending plan choice parked before checkout.
type Selection struct {
	Tier     string          `json:"tier"`
	Cycle    string          `json:"cycle"`
	Price    decimal.Decimal `json:"price"`
	Features []string        `json:"features"`
}

// SelectionSlot reports whether a selection is parked, and which.
type SelectionSlot struct {
	Found     bool       `json:"found"`
	Selection *Selection `json:"selection,omitempty"`
}

// Subscription mirrors the server's subscription view.
type Subscription struct {
	ID               uuid.UUID       `json:"id"`
	VendorID         uuid.UUID       `json:"vendor_id"`
	Tier             string          `json:"tier"`
	Cycle            string          `json:"cycle"`
	Price            decimal.Decimal `json:"price"`
	Status           string          `json:"status"`
	CurrentPeriodEnd time.Time       `json:"current_period_end"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Order mirrors the server's order view.
type Order struct {
	ID         uuid.UUID       `json:"id"`
	VendorID   uuid.UUID       `json:"vendor_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	ListingID  uuid.UUID       `json:"listing_id"`
	Quantity   int             `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	IsPaid     bool            `json:"is_paid"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Payment mirrors the server's payment view.
type Payment struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	GatewayRef string          `json:"gateway_ref,omitempty"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Review mirrors the server's review view.
type Review struct {
	ID         uuid.UUID `json:"id"`
	ListingID  uuid.UUID `json:"listing_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	Hidden     bool      `json:"hidden"`
	CreatedAt  time.Time `json:"created_at"`
}
