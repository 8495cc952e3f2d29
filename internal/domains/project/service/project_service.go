package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pressroom-backend/internal/domains/project"
	"pressroom-backend/internal/domains/user"
	"pressroom-backend/pkg/logger"
)

type projectService struct {
	repo     project.Repository
	users    user.Repository
	enricher project.Enricher
}

func NewProjectService(repo project.Repository, users user.Repository, enricher project.Enricher) project.Service {
	return &projectService{
		repo:     repo,
		users:    users,
		enricher: enricher,
	}
}

// validate normalizes p in place and aggregates every field failure into
// one validation.Errors so the caller sees the full picture at once.
func (s *projectService) validate(ctx context.Context, p *project.Project) error {
	errs := validation.Errors{}

	if p.EbookID == uuid.Nil {
		errs["ebook_id"] = errors.New("cannot be blank")
	}

	if !p.Status.IsValid() {
		errs["status"] = fmt.Errorf("must be one of: %s, %s, %s, %s",
			project.StatusInProgress, project.StatusStalled,
			project.StatusAbandoned, project.StatusCompleted)
	}

	// A known producer email is authoritative for the producer name.
	p.ProducerEmail = normalizeOptional(p.ProducerEmail)
	if p.ProducerEmail != nil {
		u, err := s.users.GetByEmail(ctx, *p.ProducerEmail)
		switch {
		case err == nil:
			p.ProducerName = u.Name
		case !errors.Is(err, user.ErrUserNotFound):
			return fmt.Errorf("resolve producer email: %w", err)
		}
	}

	p.ProducerName = strings.TrimSpace(p.ProducerName)
	if p.ProducerName == "" {
		errs["producer_name"] = errors.New("cannot be blank")
	}

	p.DiscussionURL = normalizeOptional(p.DiscussionURL)
	if p.DiscussionURL != nil {
		canonical := project.CanonicalizeDiscussionURL(*p.DiscussionURL)
		p.DiscussionURL = &canonical
	}

	p.VCSURL = strings.TrimRight(strings.TrimSpace(p.VCSURL), "/")
	if p.VCSURL == "" {
		errs["vcs_url"] = errors.New("cannot be blank")
	} else if !p.HasRecognizedVCSURL() {
		errs["vcs_url"] = errors.New("must be a https://github.com/<owner>/<repo> url")
	}

	if p.ManagerUserID == uuid.Nil {
		errs["manager_user_id"] = errors.New("cannot be blank")
	} else if err := s.checkUserExists(ctx, p.ManagerUserID, "manager_user_id", errs); err != nil {
		return err
	}

	if p.ReviewerUserID == uuid.Nil {
		errs["reviewer_user_id"] = errors.New("cannot be blank")
	} else if err := s.checkUserExists(ctx, p.ReviewerUserID, "reviewer_user_id", errs); err != nil {
		return err
	}

	if p.Started.IsZero() {
		errs["started"] = errors.New("cannot be blank")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *projectService) checkUserExists(ctx context.Context, id uuid.UUID, field string, errs validation.Errors) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if !exists {
		errs[field] = errors.New("user does not exist")
	}
	return nil
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *projectService) Create(ctx context.Context, req *project.CreateProjectRequest) (*project.Project, error) {
	p := req.ToEntity()

	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	// Best effort only. A project is creatable even when GitHub or the
	// discussion host is down; Sync can backfill later.
	if err := s.fetchLatestCommit(ctx, p); err != nil {
		logger.Warn("could not fetch latest commit at project creation", err)
	}
	if err := s.fetchLastDiscussion(ctx, p); err != nil {
		logger.Warn("could not fetch last discussion at project creation", err)
	}

	// Producers often file the project after their first commits. The
	// start date only ever moves backward; activity never predates it.
	if p.LastCommitTimestamp != nil && p.LastCommitTimestamp.Before(p.Started) {
		p.Started = *p.LastCommitTimestamp
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	logger.Info("project created", map[string]interface{}{
		"project_id": created.ID.String(),
		"ebook_id":   created.EbookID.String(),
	})

	return created, nil
}

func (s *projectService) Save(ctx context.Context, id uuid.UUID, req *project.UpdateProjectRequest) (*project.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(p)

	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, p)
}

func (s *projectService) Sync(ctx context.Context, id uuid.UUID) (*project.SyncResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &project.SyncResponse{}

	if err := s.fetchLatestCommit(ctx, p); err != nil {
		resp.CommitError = err.Error()
	} else if p.HasRecognizedVCSURL() {
		resp.CommitSynced = true
	}

	if err := s.fetchLastDiscussion(ctx, p); err != nil {
		resp.DiscussionError = err.Error()
	} else if p.HasRecognizedDiscussionURL() {
		resp.DiscussionSynced = true
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	resp.Project = updated.ToResponse()
	return resp, nil
}

// fetchLatestCommit refreshes LastCommitTimestamp and rewrites VCSURL
// when the repository has been renamed. Unrecognized VCS hosts are
// skipped silently.
func (s *projectService) fetchLatestCommit(ctx context.Context, p *project.Project) error {
	if !p.HasRecognizedVCSURL() {
		return nil
	}

	finalURL, ts, err := s.enricher.LatestCommit(ctx, p.VCSURL)
	if err != nil {
		return err
	}

	if finalURL != "" {
		p.VCSURL = finalURL
	}
	p.LastCommitTimestamp = &ts

	return nil
}

// fetchLastDiscussion refreshes LastDiscussionTimestamp. A page with no
// parsable timestamp clears the field rather than keeping a stale value.
func (s *projectService) fetchLastDiscussion(ctx context.Context, p *project.Project) error {
	if !p.HasRecognizedDiscussionURL() {
		return nil
	}

	ts, err := s.enricher.LastDiscussion(ctx, *p.DiscussionURL)
	if err != nil {
		return err
	}

	p.LastDiscussionTimestamp = ts

	return nil
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *projectService) GetAllByStatus(ctx context.Context, status project.Status) ([]project.Project, error) {
	return s.repo.GetAllByStatus(ctx, status)
}

func (s *projectService) GetAllByManagerUserID(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	return s.repo.GetAllByManagerUserID(ctx, userID)
}

func (s *projectService) GetAllByReviewerUserID(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	return s.repo.GetAllByReviewerUserID(ctx, userID)
}
