package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newAdmin registers an account, promotes it to admin directly in the
// database and returns a token carrying the admin role.
func newAdmin(t *testing.T, ts *TestServer, email string) string {
	t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"name":     "Platform Admin",
		"password": "s3cret-password",
		"role":     "customer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user struct {
		ID string `json:"id"`
	}
	ts.DecodeData(w, &user)

	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)
	ts.DB.PromoteToAdmin(id)

	return ts.Login(email, "s3cret-password")
}

// onboardingSteps returns the wizard steps in order with valid payloads.
func onboardingSteps() []struct {
	Path    string
	Payload map[string]interface{}
} {
	return []struct {
		Path    string
		Payload map[string]interface{}
	}{
		{"/api/v1/onboarding/business-details", map[string]interface{}{
			"business_name":       "Harbor Property Group",
			"legal_business_name": "Harbor Property Group Ltd",
			"business_type":       "limited_company",
			"business_industry":   "real_estate",
			"registration_number": "REG-2024-0042",
		}},
		{"/api/v1/onboarding/business-contact", map[string]interface{}{
			"email":   "contact@harborproperty.example.com",
			"phone":   "+27 21 555 0100",
			"website": "https://harborproperty.example.com",
		}},
		{"/api/v1/onboarding/owner-details", map[string]interface{}{
			"first_name": "Nadia",
			"last_name":  "van Wyk",
			"email":      "nadia@harborproperty.example.com",
			"phone":      "+27 21 555 0101",
			"id_number":  "8001015009087",
		}},
		{"/api/v1/onboarding/contact-person", map[string]interface{}{
			"first_name": "Sipho",
			"last_name":  "Dlamini",
			"role":       "Operations Manager",
			"email":      "sipho@harborproperty.example.com",
			"phone":      "+27 21 555 0102",
		}},
		{"/api/v1/onboarding/business-address", map[string]interface{}{
			"street":      "14 Quay Road",
			"city":        "Cape Town",
			"province":    "Western Cape",
			"postal_code": "8001",
			"country":     "South Africa",
		}},
	}
}

// completeOnboarding walks a vendor through the full wizard and returns the
// profile ID, leaving the profile in pending review.
func completeOnboarding(t *testing.T, ts *TestServer, token string) string {
	t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/onboarding/initialize", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var initialized struct {
		Profile struct {
			ID string `json:"id"`
		} `json:"profile"`
	}
	ts.DecodeData(w, &initialized)

	for _, step := range onboardingSteps() {
		w := ts.Request(http.MethodPut, step.Path, token, step.Payload)
		require.Equal(t, http.StatusOK, w.Code, "step %s failed: %s", step.Path, w.Body.String())
	}

	return initialized.Profile.ID
}

// approveVendor approves a pending profile through the admin surface.
func approveVendor(t *testing.T, ts *TestServer, adminToken, profileID string) {
	t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/admin/vendors/"+profileID+"/approve", adminToken, map[string]interface{}{
		"note": "Verified registration documents",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
