package artist

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pressroom-backend/internal/shared/utils"
)

// Validation constants
const (
	MaxNameLength = 250

	// DeathYearSlack allows recording artists who are still alive but
	// whose works are already in production.
	DeathYearSlack = 50

	// AnonymousName is the catch-all artist for unattributed works. It
	// never carries a death year.
	AnonymousName = "Anonymous"
)

// Artist is a cover artist whose works are used for ebook covers.
type Artist struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	DeathYear *int      `json:"death_year" db:"death_year"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// AlternateNames are other spellings the artist is known under, kept
	// in their own table.
	AlternateNames []string `json:"alternate_names" db:"-"`
}

// URLName derives the artist's URL slug from the current Name. It is
// recomputed on every call so a renamed artist can never serve a stale slug.
func (a *Artist) URLName() string {
	return utils.GenerateSlug(a.Name)
}

// URL is the site-relative address of the artist page.
func (a *Artist) URL() string {
	return "/artists/" + a.URLName()
}

// AlternateURLNames returns the slugs of all alternate names.
func (a *Artist) AlternateURLNames() []string {
	slugs := make([]string, 0, len(a.AlternateNames))
	for _, name := range a.AlternateNames {
		slugs = append(slugs, utils.GenerateSlug(name))
	}
	return slugs
}

// Validate normalizes the artist and collects every rule violation into a
// single field-keyed aggregate rather than failing on the first.
//
// Side effects: Name is trimmed, and the death year is cleared for the
// Anonymous artist.
func (a *Artist) Validate() error {
	a.Name = strings.TrimSpace(a.Name)

	if a.Name == AnonymousName {
		a.DeathYear = nil
	}

	maxDeathYear := time.Now().Year() + DeathYearSlack

	return validation.ValidateStruct(a,
		validation.Field(&a.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, MaxNameLength).Error("name is too long"),
		),
		validation.Field(&a.DeathYear,
			validation.Min(1).Error("death year is out of range"),
			validation.Max(maxDeathYear).Error("death year is out of range"),
		),
	)
}
