package listing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListing(t *testing.T) {
	schema := PropertySchema()
	vendorID := uuid.New()
	images := []string{"listings/abc/front.jpg"}

	t.Run("creates draft listing from valid form", func(t *testing.T) {
		l, err := NewListing(vendorID, "property-listing", GroupResidential, schema, residentialValues(), images)

		require.NoError(t, err)
		assert.Equal(t, StatusDraft, l.Status)
		assert.Equal(t, "Three-bedroom house in Roma", l.Title)
		assert.True(t, l.Price.Equal(decimal.NewFromInt(450000)))

		attrs, err := l.AttributeMap()
		require.NoError(t, err)
		assert.Equal(t, 3.0, attrs["bedrooms"])
		_, hidden := attrs["plot_size"]
		assert.False(t, hidden)

		keys, err := l.Images()
		require.NoError(t, err)
		assert.Equal(t, images, keys)
	})

	t.Run("validation failure returns field map and creates nothing", func(t *testing.T) {
		values := residentialValues()
		values["price"] = ""
		values["title"] = ""

		l, err := NewListing(vendorID, "property-listing", GroupResidential, schema, values, images)

		assert.Nil(t, l)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
	})

	t.Run("requires at least one image", func(t *testing.T) {
		l, err := NewListing(vendorID, "property-listing", GroupResidential, schema, residentialValues(), nil)

		assert.Nil(t, l)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "images")
	})

	t.Run("rejects unknown category group", func(t *testing.T) {
		_, err := NewListing(vendorID, "property-listing", CategoryGroup("castle"), schema, residentialValues(), images)
		assert.Error(t, err)
	})
}

func TestListingPublish(t *testing.T) {
	schema := PropertySchema()
	l, err := NewListing(uuid.New(), "property-listing", GroupResidential, schema, residentialValues(), []string{"k"})
	require.NoError(t, err)

	require.NoError(t, l.Publish())
	assert.Equal(t, StatusActive, l.Status)
	assert.Error(t, l.Publish())

	require.NoError(t, l.Unpublish())
	assert.Equal(t, StatusInactive, l.Status)
	assert.Error(t, l.Unpublish())
}
