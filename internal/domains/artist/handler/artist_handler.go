package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pressroom-backend/internal/domains/artist"
	"pressroom-backend/internal/shared/response"
)

type ArtistHandler struct {
	service artist.Service
}

func NewArtistHandler(svc artist.Service) *ArtistHandler {
	return &ArtistHandler{service: svc}
}

// Create - POST /v1/artists
func (h *ArtistHandler) Create(c *gin.Context) {
	var req artist.CreateArtistRequest

	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		writeArtistError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, a.ToResponse())
}

// GetOrCreate - POST /v1/artists/get-or-create
// Returns the matching artist when one exists, creating it otherwise.
func (h *ArtistHandler) GetOrCreate(c *gin.Context) {
	var req artist.CreateArtistRequest

	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.service.GetOrCreate(c.Request.Context(), &req)
	if err != nil {
		writeArtistError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// GetByID - GET /v1/artists/:id
func (h *ArtistHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeArtistError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// GetByURLName - GET /v1/artists/slug/:slug
func (h *ArtistHandler) GetByURLName(c *gin.Context) {
	a, err := h.service.GetByURLName(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeArtistError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// GetAll - GET /v1/artists
func (h *ArtistHandler) GetAll(c *gin.Context) {
	artists, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		writeArtistError(c, err)
		return
	}

	resp := make([]*artist.ArtistResponse, 0, len(artists))
	for i := range artists {
		resp = append(resp, artists[i].ToResponse())
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{Total: len(resp)})
}

// Delete - DELETE /v1/artists/:id
func (h *ArtistHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeArtistError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// writeArtistError maps domain errors to the response envelope. Validation
// aggregates are returned field-keyed so forms can re-render per field.
func writeArtistError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return
	}

	response.ErrorResponse(c, artist.ToHTTPStatus(err), artist.ToErrorCode(err), err.Error())
}
