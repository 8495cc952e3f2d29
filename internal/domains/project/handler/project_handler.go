package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pressroom-backend/internal/domains/ebook"
	"pressroom-backend/internal/domains/project"
	"pressroom-backend/internal/shared/response"
)

type ProjectHandler struct {
	service project.Service
}

func NewProjectHandler(svc project.Service) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// Create - POST /v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req project.CreateProjectRequest

	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		writeProjectError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p.ToResponse())
}

// Get - GET /v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeProjectError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p.ToResponse())
}

// Update - PUT /v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req project.UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	p, err := h.service.Save(c.Request.Context(), id, &req)
	if err != nil {
		writeProjectError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p.ToResponse())
}

// Sync - POST /v1/projects/:id/sync
// Refreshes external activity timestamps immediately. Per-source failures
// degrade the response instead of failing it.
func (h *ProjectHandler) Sync(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	resp, err := h.service.Sync(c.Request.Context(), id)
	if err != nil {
		writeProjectError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetAll - GET /v1/projects?status=&manager_user_id=&reviewer_user_id=
// Exactly one filter applies; status wins when several are sent.
func (h *ProjectHandler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		projects []project.Project
		err      error
	)

	switch {
	case c.Query("status") != "":
		status := project.Status(c.Query("status"))
		if !status.IsValid() {
			response.BadRequest(c, "unknown status filter")
			return
		}
		projects, err = h.service.GetAllByStatus(ctx, status)

	case c.Query("manager_user_id") != "":
		userID, perr := uuid.Parse(c.Query("manager_user_id"))
		if perr != nil {
			response.BadRequest(c, "invalid UUID format")
			return
		}
		projects, err = h.service.GetAllByManagerUserID(ctx, userID)

	case c.Query("reviewer_user_id") != "":
		userID, perr := uuid.Parse(c.Query("reviewer_user_id"))
		if perr != nil {
			response.BadRequest(c, "invalid UUID format")
			return
		}
		projects, err = h.service.GetAllByReviewerUserID(ctx, userID)

	default:
		projects, err = h.service.GetAllByStatus(ctx, project.StatusInProgress)
	}

	if err != nil {
		writeProjectError(c, err)
		return
	}

	resp := make([]*project.ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, projects[i].ToResponse())
	}

	response.SuccessWithMeta(c, http.StatusOK, resp, &response.Meta{Total: len(resp)})
}

func writeProjectError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return
	}

	// Create reaches through to the ebook row; its absence is a client error.
	if errors.Is(err, ebook.ErrEbookNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, "EBOOK_NOT_FOUND", err.Error())
		return
	}

	response.ErrorResponse(c, project.ToHTTPStatus(err), project.ToErrorCode(err), err.Error())
}
