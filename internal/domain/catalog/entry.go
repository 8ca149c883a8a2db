package catalog

// Group is a coarse grouping tag for catalog entries
type Group string

const (
	GroupCommerce     Group = "commerce"
	GroupProperty     Group = "property"
	GroupMedical      Group = "medical"
	GroupHospitality  Group = "hospitality"
	GroupLogistics    Group = "logistics"
	GroupProfessional Group = "professional"
)

// Entry describes an offerable service category. Entries are static platform
// data; whether one is offered is tracked by a persisted Activation record.
type Entry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Group       Group    `json:"group"`
	Keywords    []string `json:"keywords"`
}

// DefaultEntries returns the platform's built-in service catalog
func DefaultEntries() []Entry {
	return []Entry{
		{
			ID:          "product-sales",
			Title:       "Product Sales",
			Description: "List and sell physical or digital products",
			Icon:        "shopping-cart",
			Group:       GroupCommerce,
			Keywords:    []string{"shop", "store", "retail", "products"},
		},
		{
			ID:          "property-listing",
			Title:       "Property Listing",
			Description: "List residential, commercial or land property for sale or rent",
			Icon:        "home",
			Group:       GroupProperty,
			Keywords:    []string{"real estate", "rent", "sale", "land", "apartment"},
		},
		{
			ID:          "medical-consultation",
			Title:       "Medical Consultation",
			Description: "Offer remote or in-person medical consultations",
			Icon:        "stethoscope",
			Group:       GroupMedical,
			Keywords:    []string{"doctor", "clinic", "health", "appointment"},
		},
		{
			ID:          "pharmacy-delivery",
			Title:       "Pharmacy Delivery",
			Description: "Dispense and deliver prescription and over-the-counter medication",
			Icon:        "pill",
			Group:       GroupMedical,
			Keywords:    []string{"pharmacy", "medication", "delivery"},
		},
		{
			ID:          "hotel-booking",
			Title:       "Hotel Booking",
			Description: "Accept room reservations and manage availability",
			Icon:        "bed",
			Group:       GroupHospitality,
			Keywords:    []string{"hotel", "lodge", "reservation", "rooms"},
		},
		{
			ID:          "restaurant-orders",
			Title:       "Restaurant Orders",
			Description: "Take food orders for pickup or delivery",
			Icon:        "utensils",
			Group:       GroupHospitality,
			Keywords:    []string{"food", "menu", "delivery", "restaurant"},
		},
		{
			ID:          "courier-service",
			Title:       "Courier Service",
			Description: "Offer parcel pickup and delivery services",
			Icon:        "truck",
			Group:       GroupLogistics,
			Keywords:    []string{"courier", "parcel", "shipping"},
		},
		{
			ID:          "professional-services",
			Title:       "Professional Services",
			Description: "Offer consulting, legal, accounting or other professional work",
			Icon:        "briefcase",
			Group:       GroupProfessional,
			Keywords:    []string{"consulting", "legal", "accounting"},
		},
	}
}

// FindEntryByTitle returns the catalog entry with the given title, if any
func FindEntryByTitle(entries []Entry, title string) (Entry, bool) {
	for _, e := range entries {
		if e.Title == title {
			return e, true
		}
	}
	return Entry{}, false
}
