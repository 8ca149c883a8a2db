package listing

import (
	"strconv"
	"strings"
)

// CategoryGroup is the coarse grouping that selects which subset of the
// superset field schema applies to a listing.
type CategoryGroup string

const (
	GroupResidential CategoryGroup = "residential"
	GroupLand        CategoryGroup = "land"
	GroupCommercial  CategoryGroup = "commercial"
)

// FieldKind determines the validation and coercion rule for a field
type FieldKind string

const (
	FieldText        FieldKind = "text"        // Required non-empty string
	FieldCurrency    FieldKind = "currency"    // Numeric and positive
	FieldArea        FieldKind = "area"        // Numeric and positive
	FieldNumber      FieldKind = "number"      // Numeric, zero allowed
	FieldDescription FieldKind = "description" // Free text with minimum length
	FieldSelect      FieldKind = "select"      // One of a fixed option list
)

// FieldSpec describes one field of the superset schema
type FieldSpec struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	MinLen   int       `json:"min_len,omitempty"`
	MaxLen   int       `json:"max_len,omitempty"`
	Options  []string  `json:"options,omitempty"`
}

// RetentionPolicy controls what happens to field values that are no longer
// visible after a category switch.
type RetentionPolicy string

const (
	RetentionPreserve RetentionPolicy = "preserve" // Keep last-entered values
	RetentionReset    RetentionPolicy = "reset"    // Drop values hidden by the switch
)

// Schema is a superset field schema plus a category-group to visible-field
// mapping. Fields outside the selected group's subset are neither validated
// nor included in the coerced payload.
type Schema struct {
	Fields  []FieldSpec
	Visible map[CategoryGroup][]string
}

// PropertySchema returns the built-in schema for property listings
func PropertySchema() Schema {
	return Schema{
		Fields: []FieldSpec{
			{Name: "title", Label: "Title", Kind: FieldText, Required: true, MaxLen: 200},
			{Name: "description", Label: "Description", Kind: FieldDescription, Required: true, MinLen: 30},
			{Name: "price", Label: "Price", Kind: FieldCurrency, Required: true},
			{Name: "area", Label: "Floor Area (sqm)", Kind: FieldArea, Required: true},
			{Name: "bedrooms", Label: "Bedrooms", Kind: FieldNumber, Required: true},
			{Name: "bathrooms", Label: "Bathrooms", Kind: FieldNumber, Required: true},
			{Name: "parking_spaces", Label: "Parking Spaces", Kind: FieldNumber, Required: false},
			{Name: "plot_size", Label: "Plot Size (sqm)", Kind: FieldArea, Required: true},
			{Name: "zoning", Label: "Zoning", Kind: FieldSelect, Required: true, Options: []string{"residential", "commercial", "agricultural", "industrial"}},
			{Name: "floors", Label: "Floors", Kind: FieldNumber, Required: false},
		},
		Visible: map[CategoryGroup][]string{
			GroupResidential: {"title", "description", "price", "area", "bedrooms", "bathrooms", "parking_spaces"},
			GroupLand:        {"title", "description", "price", "plot_size", "zoning"},
			GroupCommercial:  {"title", "description", "price", "area", "floors", "parking_spaces", "zoning"},
		},
	}
}

// VisibleFields computes the active field subset for a category group
func (s Schema) VisibleFields(group CategoryGroup) []FieldSpec {
	names, ok := s.Visible[group]
	if !ok {
		return nil
	}
	visible := make(map[string]bool, len(names))
	for _, n := range names {
		visible[n] = true
	}

	fields := make([]FieldSpec, 0, len(names))
	for _, f := range s.Fields {
		if visible[f.Name] {
			fields = append(fields, f)
		}
	}
	return fields
}

// Validate checks the submitted values against the active field subset and
// returns a field-to-message map. An empty map means the form is valid.
// Hidden fields are ignored entirely.
func (s Schema) Validate(group CategoryGroup, values map[string]string) map[string]string {
	errs := make(map[string]string)

	for _, f := range s.VisibleFields(group) {
		trimmed := strings.TrimSpace(values[f.Name])

		if trimmed == "" {
			if f.Required {
				errs[f.Name] = f.Label + " is required"
			}
			continue
		}

		switch f.Kind {
		case FieldText:
			if f.MaxLen > 0 && len(trimmed) > f.MaxLen {
				errs[f.Name] = f.Label + " cannot exceed " + strconv.Itoa(f.MaxLen) + " characters"
			}
		case FieldDescription:
			if len(trimmed) < f.MinLen {
				errs[f.Name] = f.Label + " must be at least " + strconv.Itoa(f.MinLen) + " characters"
			}
		case FieldCurrency, FieldArea:
			n, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				errs[f.Name] = f.Label + " must be a number"
			} else if n <= 0 {
				errs[f.Name] = f.Label + " must be greater than zero"
			}
		case FieldNumber:
			n, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				errs[f.Name] = f.Label + " must be a number"
			} else if n < 0 {
				errs[f.Name] = f.Label + " cannot be negative"
			}
		case FieldSelect:
			valid := false
			for _, opt := range f.Options {
				if trimmed == opt {
					valid = true
					break
				}
			}
			if !valid {
				errs[f.Name] = f.Label + " must be one of: " + strings.Join(f.Options, ", ")
			}
		}
	}

	return errs
}

// Coerce converts the submitted values into a typed payload for persistence.
// Numeric fields become float64, empty numeric fields become nil, and fields
// hidden for the group are dropped from the payload entirely.
func (s Schema) Coerce(group CategoryGroup, values map[string]string) map[string]interface{} {
	payload := make(map[string]interface{})

	for _, f := range s.VisibleFields(group) {
		trimmed := strings.TrimSpace(values[f.Name])

		switch f.Kind {
		case FieldCurrency, FieldArea, FieldNumber:
			if trimmed == "" {
				payload[f.Name] = nil
				continue
			}
			if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
				payload[f.Name] = n
			} else {
				payload[f.Name] = nil
			}
		default:
			payload[f.Name] = trimmed
		}
	}

	return payload
}

// ApplyRetention resolves what happens to previously entered values after a
// category switch. Under RetentionPreserve all values survive; under
// RetentionReset values hidden by the new group are dropped.
func (s Schema) ApplyRetention(policy RetentionPolicy, newGroup CategoryGroup, values map[string]string) map[string]string {
	if policy == RetentionPreserve {
		return values
	}

	visible := make(map[string]bool)
	for _, f := range s.VisibleFields(newGroup) {
		visible[f.Name] = true
	}

	kept := make(map[string]string, len(values))
	for name, v := range values {
		if visible[name] {
			kept[name] = v
		}
	}
	return kept
}
