package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftDefaults(t *testing.T) {
	defaults := DraftDefaults()

	assert.Equal(t, "individual", defaults["taxpayerType"])
	assert.Equal(t, "sole", defaults["businessType"])
	assert.Equal(t, "", defaults["fullName"])
	assert.Equal(t, false, defaults["agreedToTerms"])

	// the bag is flat: one key per form input, no step nesting
	for key, value := range defaults {
		_, isMap := value.(map[string]any)
		assert.False(t, isMap, "field %q should not be nested", key)
	}
}

func TestDraftFromFields(t *testing.T) {
	d, err := DraftFromFields(map[string]any{
		"fullName":      "Juan Dela Cruz",
		"email":         "juan@example.com",
		"businessName":  "Juan's Store",
		"agreedToTerms": true,
		"unknownField":  "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "Juan Dela Cruz", d.FullName)
	assert.Equal(t, "juan@example.com", d.Email)
	assert.Equal(t, "Juan's Store", d.BusinessName)
	assert.True(t, d.AgreedToTerms)
	assert.Empty(t, d.Phone)
}

func TestDraftValidate(t *testing.T) {
	var d Draft
	errs := d.Validate()
	assert.Contains(t, errs, "fullName")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "businessName")
	assert.Contains(t, errs, "agreedToTerms")

	d.FullName = "Juan Dela Cruz"
	d.Email = "not-an-email"
	d.BusinessName = "Juan's Store"
	d.AgreedToTerms = true
	errs = d.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "Please enter a valid email address", errs["email"])

	d.Email = "juan@example.com"
	assert.Empty(t, d.Validate())
}

func TestDraftValidateWhitespaceOnly(t *testing.T) {
	var d Draft
	d.FullName = "   "
	d.Email = "juan@example.com"
	d.BusinessName = "\t"
	d.AgreedToTerms = true

	errs := d.Validate()
	assert.Contains(t, errs, "fullName")
	assert.Contains(t, errs, "businessName")
}
