package project

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service is the Project business logic surface.
type Service interface {
	// Create validates the request, enriches activity timestamps on a
	// best-effort basis and stores the project.
	Create(ctx context.Context, req *CreateProjectRequest) (*Project, error)

	// Save applies an update request to an existing project, revalidates
	// and stores it.
	Save(ctx context.Context, id uuid.UUID, req *UpdateProjectRequest) (*Project, error)

	// Sync refreshes both external activity timestamps right now and
	// persists whatever succeeded. Per-source failures are reported in
	// the response instead of failing the call.
	Sync(ctx context.Context, id uuid.UUID) (*SyncResponse, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	GetAllByStatus(ctx context.Context, status Status) ([]Project, error)
	GetAllByManagerUserID(ctx context.Context, userID uuid.UUID) ([]Project, error)
	GetAllByReviewerUserID(ctx context.Context, userID uuid.UUID) ([]Project, error)
}

// Enricher fetches activity signals from the external services a project
// links to.
type Enricher interface {
	// LatestCommit returns the timestamp of the newest commit of the
	// repository behind vcsURL, plus the repository's current URL when
	// the fetch followed a rename redirect.
	LatestCommit(ctx context.Context, vcsURL string) (finalURL string, ts time.Time, err error)

	// LastDiscussion returns the timestamp of the newest post in the
	// discussion thread, or nil when the page carries no parsable
	// timestamp.
	LastDiscussion(ctx context.Context, discussionURL string) (*time.Time, error)
}
