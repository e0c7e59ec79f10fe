package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("no failures returns nil", func(t *testing.T) {
		t.Parallel()

		err := Apply(
			Required("email", "a@x.com"),
			ValidEmail("email", "a@x.com"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects all failures", func(t *testing.T) {
		t.Parallel()

		err := Apply(
			Required("email", " "),
			Required("password", ""),
		)
		require.Error(t, err)

		verrs, ok := err.(ValidationErrors)
		require.True(t, ok)
		assert.Len(t, verrs, 2)
		assert.Contains(t, verrs, "email")
		assert.Contains(t, verrs, "password")
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "user.name+tag@example.co.uk"}
	for _, email := range valid {
		assert.True(t, ValidEmail("email", email).Check(), email)
	}

	invalid := []string{"", "not-an-email", "@x.com", "Ada <a@x.com>"}
	for _, email := range invalid {
		assert.False(t, ValidEmail("email", email).Check(), email)
	}
}

func TestNumericCode(t *testing.T) {
	t.Parallel()

	assert.True(t, NumericCode("code", "482913", 6).Check())
	assert.True(t, NumericCode("code", "000000", 6).Check())

	assert.False(t, NumericCode("code", "48291", 6).Check())
	assert.False(t, NumericCode("code", "4829133", 6).Check())
	assert.False(t, NumericCode("code", "48291a", 6).Check())
	assert.False(t, NumericCode("code", "", 6).Check())
}
