package project

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest - POST /v1/projects
type CreateProjectRequest struct {
	EbookID        uuid.UUID  `json:"ebook_id"`
	ProducerName   string     `json:"producer_name"`
	ProducerEmail  *string    `json:"producer_email,omitempty"`
	DiscussionURL  *string    `json:"discussion_url,omitempty"`
	VCSURL         string     `json:"vcs_url"`
	Started        *time.Time `json:"started,omitempty"`
	ManagerUserID  uuid.UUID  `json:"manager_user_id"`
	ReviewerUserID uuid.UUID  `json:"reviewer_user_id"`
}

// ToEntity converts the request to a Project entity. A missing Started
// defaults to now; producers usually file the project the day they start.
func (req *CreateProjectRequest) ToEntity() *Project {
	p := &Project{
		EbookID:        req.EbookID,
		Status:         StatusInProgress,
		ProducerName:   req.ProducerName,
		ProducerEmail:  req.ProducerEmail,
		DiscussionURL:  req.DiscussionURL,
		VCSURL:         req.VCSURL,
		ManagerUserID:  req.ManagerUserID,
		ReviewerUserID: req.ReviewerUserID,
	}

	if req.Started != nil {
		p.Started = *req.Started
	} else {
		p.Started = time.Now().UTC()
	}

	return p
}

// UpdateProjectRequest - PUT /v1/projects/:id
// All fields optional; only non-nil fields are applied.
type UpdateProjectRequest struct {
	Status         *Status    `json:"status,omitempty"`
	ProducerName   *string    `json:"producer_name,omitempty"`
	ProducerEmail  *string    `json:"producer_email,omitempty"`
	DiscussionURL  *string    `json:"discussion_url,omitempty"`
	VCSURL         *string    `json:"vcs_url,omitempty"`
	Started        *time.Time `json:"started,omitempty"`
	Ended          *time.Time `json:"ended,omitempty"`
	ManagerUserID  *uuid.UUID `json:"manager_user_id,omitempty"`
	ReviewerUserID *uuid.UUID `json:"reviewer_user_id,omitempty"`
}

// ApplyToEntity applies non-nil fields to an existing project.
func (req *UpdateProjectRequest) ApplyToEntity(p *Project) {
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.ProducerName != nil {
		p.ProducerName = *req.ProducerName
	}
	if req.ProducerEmail != nil {
		p.ProducerEmail = req.ProducerEmail
	}
	if req.DiscussionURL != nil {
		p.DiscussionURL = req.DiscussionURL
	}
	if req.VCSURL != nil {
		p.VCSURL = *req.VCSURL
	}
	if req.Started != nil {
		p.Started = *req.Started
	}
	if req.Ended != nil {
		p.Ended = req.Ended
	}
	if req.ManagerUserID != nil {
		p.ManagerUserID = *req.ManagerUserID
	}
	if req.ReviewerUserID != nil {
		p.ReviewerUserID = *req.ReviewerUserID
	}
}

// ProjectResponse carries a project plus its derived fields.
type ProjectResponse struct {
	ID                      uuid.UUID  `json:"id"`
	EbookID                 uuid.UUID  `json:"ebook_id"`
	Status                  Status     `json:"status"`
	ProducerName            string     `json:"producer_name"`
	ProducerEmail           *string    `json:"producer_email,omitempty"`
	DiscussionURL           *string    `json:"discussion_url,omitempty"`
	VCSURL                  string     `json:"vcs_url"`
	URL                     string     `json:"url"`
	Started                 time.Time  `json:"started"`
	Ended                   *time.Time `json:"ended,omitempty"`
	ManagerUserID           uuid.UUID  `json:"manager_user_id"`
	ReviewerUserID          uuid.UUID  `json:"reviewer_user_id"`
	LastCommitTimestamp     *time.Time `json:"last_commit_timestamp,omitempty"`
	LastDiscussionTimestamp *time.Time `json:"last_discussion_timestamp,omitempty"`
	LastActivityTimestamp   time.Time  `json:"last_activity_timestamp"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

func (p *Project) ToResponse() *ProjectResponse {
	return &ProjectResponse{
		ID:                      p.ID,
		EbookID:                 p.EbookID,
		Status:                  p.Status,
		ProducerName:            p.ProducerName,
		ProducerEmail:           p.ProducerEmail,
		DiscussionURL:           p.DiscussionURL,
		VCSURL:                  p.VCSURL,
		URL:                     p.URL(),
		Started:                 p.Started,
		Ended:                   p.Ended,
		ManagerUserID:           p.ManagerUserID,
		ReviewerUserID:          p.ReviewerUserID,
		LastCommitTimestamp:     p.LastCommitTimestamp,
		LastDiscussionTimestamp: p.LastDiscussionTimestamp,
		LastActivityTimestamp:   p.LastActivityTimestamp(),
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

// SyncResponse reports the outcome of a direct enrichment run. A failed
// source degrades the sync rather than failing the request.
type SyncResponse struct {
	Project          *ProjectResponse `json:"project"`
	CommitSynced     bool             `json:"commit_synced"`
	DiscussionSynced bool             `json:"discussion_synced"`
	CommitError      string           `json:"commit_error,omitempty"`
	DiscussionError  string           `json:"discussion_error,omitempty"`
}
