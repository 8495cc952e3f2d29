package artist

import (
	"time"

	"github.com/google/uuid"
)

// CreateArtistRequest - POST /v1/artists
type CreateArtistRequest struct {
	Name           string   `json:"name"`
	DeathYear      *int     `json:"death_year,omitempty"`
	AlternateNames []string `json:"alternate_names,omitempty"`
}

// ToEntity converts the request to an Artist entity.
func (req *CreateArtistRequest) ToEntity() *Artist {
	return &Artist{
		Name:           req.Name,
		DeathYear:      req.DeathYear,
		AlternateNames: req.AlternateNames,
	}
}

// ArtistResponse carries an artist plus its derived fields.
type ArtistResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	DeathYear      *int      `json:"death_year,omitempty"`
	URLName        string    `json:"url_name"`
	URL            string    `json:"url"`
	AlternateNames []string  `json:"alternate_names,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToResponse converts an Artist to its response shape.
func (a *Artist) ToResponse() *ArtistResponse {
	return &ArtistResponse{
		ID:             a.ID,
		Name:           a.Name,
		DeathYear:      a.DeathYear,
		URLName:        a.URLName(),
		URL:            a.URL(),
		AlternateNames: a.AlternateNames,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
