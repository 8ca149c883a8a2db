package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func residentialValues() map[string]string {
	return map[string]string{
		"title":          "Three-bedroom house in Roma",
		"description":    "Spacious family home with a large garden and borehole.",
		"price":          "450000",
		"area":           "220",
		"bedrooms":       "3",
		"bathrooms":      "2",
		"parking_spaces": "2",
	}
}

func TestVisibleFields(t *testing.T) {
	schema := PropertySchema()

	t.Run("residential subset excludes land fields", func(t *testing.T) {
		fields := schema.VisibleFields(GroupResidential)

		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.Name)
		}
		assert.Contains(t, names, "bedrooms")
		assert.NotContains(t, names, "plot_size")
		assert.NotContains(t, names, "zoning")
	})

	t.Run("unknown group yields no fields", func(t *testing.T) {
		assert.Empty(t, schema.VisibleFields(CategoryGroup("nautical")))
	})
}

func TestSchemaValidate(t *testing.T) {
	schema := PropertySchema()

	t.Run("valid residential form passes", func(t *testing.T) {
		errs := schema.Validate(GroupResidential, residentialValues())
		assert.Empty(t, errs)
	})

	t.Run("each empty required field produces an entry", func(t *testing.T) {
		values := residentialValues()
		values["title"] = ""
		values["price"] = "  "

		errs := schema.Validate(GroupResidential, values)

		assert.Len(t, errs, 2)
		assert.Contains(t, errs, "title")
		assert.Contains(t, errs, "price")
	})

	t.Run("hidden fields are not validated", func(t *testing.T) {
		values := residentialValues()
		values["zoning"] = "nonsense" // invalid, but not visible for residential

		errs := schema.Validate(GroupResidential, values)

		assert.Empty(t, errs)
	})

	t.Run("currency must be numeric and positive", func(t *testing.T) {
		values := residentialValues()
		values["price"] = "-100"
		errs := schema.Validate(GroupResidential, values)
		assert.Contains(t, errs["price"], "greater than zero")

		values["price"] = "lots"
		errs = schema.Validate(GroupResidential, values)
		assert.Contains(t, errs["price"], "must be a number")
	})

	t.Run("description enforces minimum length", func(t *testing.T) {
		values := residentialValues()
		values["description"] = "Too short"

		errs := schema.Validate(GroupResidential, values)

		assert.Contains(t, errs["description"], "at least 30")
	})

	t.Run("select requires a known option", func(t *testing.T) {
		values := map[string]string{
			"title":       "Two hectares near the bypass",
			"description": "Flat arable land with road frontage and title deed.",
			"price":       "800000",
			"plot_size":   "20000",
			"zoning":      "underwater",
		}

		errs := schema.Validate(GroupLand, values)

		assert.Contains(t, errs["zoning"], "must be one of")
	})

	t.Run("optional number may be empty but not negative", func(t *testing.T) {
		values := residentialValues()
		delete(values, "parking_spaces")
		assert.Empty(t, schema.Validate(GroupResidential, values))

		values["parking_spaces"] = "-1"
		errs := schema.Validate(GroupResidential, values)
		assert.Contains(t, errs["parking_spaces"], "cannot be negative")
	})
}

func TestSchemaCoerce(t *testing.T) {
	schema := PropertySchema()

	t.Run("numeric strings become numbers, empties become nil", func(t *testing.T) {
		values := residentialValues()
		values["parking_spaces"] = ""

		payload := schema.Coerce(GroupResidential, values)

		assert.Equal(t, 450000.0, payload["price"])
		assert.Equal(t, 3.0, payload["bedrooms"])
		assert.Nil(t, payload["parking_spaces"])
		assert.Equal(t, "Three-bedroom house in Roma", payload["title"])
	})

	t.Run("hidden fields are excluded from the payload", func(t *testing.T) {
		values := residentialValues()
		values["plot_size"] = "9999"

		payload := schema.Coerce(GroupResidential, values)

		_, present := payload["plot_size"]
		assert.False(t, present)
	})
}

func TestApplyRetention(t *testing.T) {
	schema := PropertySchema()
	values := residentialValues()

	t.Run("preserve keeps everything across a switch", func(t *testing.T) {
		kept := schema.ApplyRetention(RetentionPreserve, GroupLand, values)
		assert.Equal(t, values, kept)
	})

	t.Run("reset drops fields hidden by the new group", func(t *testing.T) {
		kept := schema.ApplyRetention(RetentionReset, GroupLand, values)

		assert.Contains(t, kept, "title")
		assert.Contains(t, kept, "price")
		assert.NotContains(t, kept, "bedrooms")
		assert.NotContains(t, kept, "bathrooms")
	})
}
