package artist

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestArtistValidate(t *testing.T) {
	t.Run("valid artist passes", func(t *testing.T) {
		a := &Artist{Name: "Winslow Homer", DeathYear: intPtr(1910)}

		assert.NoError(t, a.Validate())
	})

	t.Run("name is trimmed", func(t *testing.T) {
		a := &Artist{Name: "  Winslow Homer  "}

		require.NoError(t, a.Validate())
		assert.Equal(t, "Winslow Homer", a.Name)
	})

	t.Run("blank name fails", func(t *testing.T) {
		a := &Artist{Name: "   "}

		err := a.Validate()
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "name")
	})

	t.Run("overlong name fails", func(t *testing.T) {
		long := make([]byte, MaxNameLength+1)
		for i := range long {
			long[i] = 'a'
		}
		a := &Artist{Name: string(long)}

		err := a.Validate()
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "name")
	})

	t.Run("anonymous clears death year without error", func(t *testing.T) {
		a := &Artist{Name: AnonymousName, DeathYear: intPtr(1850)}

		require.NoError(t, a.Validate())
		assert.Nil(t, a.DeathYear)
	})

	t.Run("death year at the slack boundary passes", func(t *testing.T) {
		a := &Artist{Name: "Living Artist", DeathYear: intPtr(time.Now().Year() + DeathYearSlack)}

		assert.NoError(t, a.Validate())
	})

	t.Run("death year beyond the slack boundary fails", func(t *testing.T) {
		a := &Artist{Name: "Living Artist", DeathYear: intPtr(time.Now().Year() + DeathYearSlack + 1)}

		err := a.Validate()
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "death_year")
	})

	t.Run("negative death year fails", func(t *testing.T) {
		a := &Artist{Name: "Someone", DeathYear: intPtr(-1)}

		assert.Error(t, a.Validate())
	})

	t.Run("multiple failures are aggregated", func(t *testing.T) {
		a := &Artist{Name: "", DeathYear: intPtr(-5)}

		err := a.Validate()
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "name")
		assert.Contains(t, verrs, "death_year")
	})
}

func TestArtistDerivedFields(t *testing.T) {
	a := &Artist{
		Name:           "Honoré Daumier",
		AlternateNames: []string{"H. Daumier", "Honore Daumier"},
	}

	assert.Equal(t, "honore-daumier", a.URLName())
	assert.Equal(t, "/artists/honore-daumier", a.URL())
	assert.Equal(t, []string{"h-daumier", "honore-daumier"}, a.AlternateURLNames())

	// Derived fields follow a rename immediately.
	a.Name = "Someone Else"
	assert.Equal(t, "someone-else", a.URLName())
}
