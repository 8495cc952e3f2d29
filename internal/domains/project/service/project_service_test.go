package service

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom-backend/internal/domains/project"
	"pressroom-backend/internal/domains/user"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == identifier || u.Name == identifier {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*project.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[uuid.UUID]*project.Project{}}
}

func (f *fakeProjectRepo) Create(_ context.Context, p *project.Project) (*project.Project, error) {
	stored := *p
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	f.projects[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p *project.Project) (*project.Project, error) {
	if _, ok := f.projects[p.ID]; !ok {
		return nil, project.ErrProjectNotFound
	}
	stored := *p
	stored.UpdatedAt = time.Now().UTC()
	f.projects[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	if p, ok := f.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, project.ErrProjectNotFound
}

func (f *fakeProjectRepo) GetAllByStatus(_ context.Context, status project.Status) ([]project.Project, error) {
	var out []project.Project
	for _, p := range f.projects {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) GetAllByManagerUserID(_ context.Context, userID uuid.UUID) ([]project.Project, error) {
	var out []project.Project
	for _, p := range f.projects {
		if p.ManagerUserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) GetAllByReviewerUserID(_ context.Context, userID uuid.UUID) ([]project.Project, error) {
	var out []project.Project
	for _, p := range f.projects {
		if p.ReviewerUserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeEnricher struct {
	commitURL      string
	commitTS       time.Time
	commitErr      error
	discussionTS   *time.Time
	discussionErr  error
	commitCalls    int
	discussionCall int
}

func (f *fakeEnricher) LatestCommit(_ context.Context, vcsURL string) (string, time.Time, error) {
	f.commitCalls++
	if f.commitErr != nil {
		return "", time.Time{}, f.commitErr
	}
	url := f.commitURL
	if url == "" {
		url = vcsURL
	}
	return url, f.commitTS, nil
}

func (f *fakeEnricher) LastDiscussion(_ context.Context, _ string) (*time.Time, error) {
	f.discussionCall++
	if f.discussionErr != nil {
		return nil, f.discussionErr
	}
	return f.discussionTS, nil
}

func strPtr(v string) *string {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

type fixture struct {
	svc      project.Service
	repo     *fakeProjectRepo
	enricher *fakeEnricher
	manager  *user.User
	reviewer *user.User
	producer *user.User
}

func newFixture() *fixture {
	manager := &user.User{ID: uuid.New(), Name: "Morgan Manager", Email: "morgan@example.com"}
	reviewer := &user.User{ID: uuid.New(), Name: "Riley Reviewer", Email: "riley@example.com"}
	producer := &user.User{ID: uuid.New(), Name: "Pat Producer", Email: "pat@example.com"}

	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{
		manager.ID:  manager,
		reviewer.ID: reviewer,
		producer.ID: producer,
	}}

	repo := newFakeProjectRepo()
	enricher := &fakeEnricher{}

	return &fixture{
		svc:      NewProjectService(repo, users, enricher),
		repo:     repo,
		enricher: enricher,
		manager:  manager,
		reviewer: reviewer,
		producer: producer,
	}
}

func (f *fixture) validRequest() *project.CreateProjectRequest {
	return &project.CreateProjectRequest{
		EbookID:        uuid.New(),
		ProducerName:   "Outside Producer",
		VCSURL:         "https://github.com/publisher/some-book",
		ManagerUserID:  f.manager.ID,
		ReviewerUserID: f.reviewer.ID,
	}
}

func TestProjectCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request creates an in-progress project", func(t *testing.T) {
		f := newFixture()
		f.enricher.commitTS = time.Now().UTC()

		p, err := f.svc.Create(ctx, f.validRequest())
		require.NoError(t, err)

		assert.Equal(t, project.StatusInProgress, p.Status)
		assert.Equal(t, "Outside Producer", p.ProducerName)
		assert.False(t, p.Started.IsZero())
		assert.Len(t, f.repo.projects, 1)
	})

	t.Run("known producer email overrides the producer name", func(t *testing.T) {
		f := newFixture()
		f.enricher.commitTS = time.Now().UTC()

		req := f.validRequest()
		req.ProducerEmail = strPtr("pat@example.com")
		req.ProducerName = "Typo Name"

		p, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Pat Producer", p.ProducerName)
	})

	t.Run("started is clamped down to the first commit", func(t *testing.T) {
		f := newFixture()
		commitTS := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		f.enricher.commitTS = commitTS

		req := f.validRequest()
		req.Started = timePtr(commitTS.Add(72 * time.Hour))

		p, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, commitTS, p.Started)
	})

	t.Run("started never moves forward", func(t *testing.T) {
		f := newFixture()
		started := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		f.enricher.commitTS = started.Add(72 * time.Hour)

		req := f.validRequest()
		req.Started = timePtr(started)

		p, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, started, p.Started)
	})

	t.Run("enrichment failure does not block creation", func(t *testing.T) {
		f := newFixture()
		f.enricher.commitErr = project.ErrRemoteFetch

		p, err := f.svc.Create(ctx, f.validRequest())
		require.NoError(t, err)
		assert.Nil(t, p.LastCommitTimestamp)
	})

	t.Run("unrecognized vcs host is rejected", func(t *testing.T) {
		f := newFixture()

		req := f.validRequest()
		req.VCSURL = "https://gitlab.com/publisher/some-book"

		_, err := f.svc.Create(ctx, req)
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "vcs_url")
		assert.Zero(t, f.enricher.commitCalls)
		assert.Empty(t, f.repo.projects)
	})

	t.Run("discussion url is canonicalized", func(t *testing.T) {
		f := newFixture()
		f.enricher.commitTS = time.Now().UTC()

		req := f.validRequest()
		req.DiscussionURL = strPtr("https://groups.google.com/g/publishing/c/abc123/m/m456")

		p, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, p.DiscussionURL)
		assert.Equal(t, "https://groups.google.com/g/publishing/c/abc123", *p.DiscussionURL)
	})

	t.Run("all failures are reported at once", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(ctx, &project.CreateProjectRequest{
			ProducerName: "   ",
			VCSURL:       "",
		})
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "ebook_id")
		assert.Contains(t, verrs, "producer_name")
		assert.Contains(t, verrs, "vcs_url")
		assert.Contains(t, verrs, "manager_user_id")
		assert.Contains(t, verrs, "reviewer_user_id")
	})

	t.Run("unknown manager and reviewer are both flagged", func(t *testing.T) {
		f := newFixture()

		req := f.validRequest()
		req.ManagerUserID = uuid.New()
		req.ReviewerUserID = uuid.New()

		_, err := f.svc.Create(ctx, req)
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "manager_user_id")
		assert.Contains(t, verrs, "reviewer_user_id")
	})

	t.Run("trailing slash is trimmed from the vcs url", func(t *testing.T) {
		f := newFixture()
		f.enricher.commitTS = time.Now().UTC()

		req := f.validRequest()
		req.VCSURL = "https://github.com/publisher/some-book/"

		p, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/publisher/some-book", p.VCSURL)
	})
}

func TestProjectSave(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, f *fixture) *project.Project {
		t.Helper()
		f.enricher.commitTS = time.Now().UTC()
		p, err := f.svc.Create(ctx, f.validRequest())
		require.NoError(t, err)
		return p
	}

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		f := newFixture()
		p := seed(t, f)

		stalled := project.StatusStalled
		updated, err := f.svc.Save(ctx, p.ID, &project.UpdateProjectRequest{Status: &stalled})
		require.NoError(t, err)

		assert.Equal(t, project.StatusStalled, updated.Status)
		assert.Equal(t, p.ProducerName, updated.ProducerName)
		assert.Equal(t, p.VCSURL, updated.VCSURL)
	})

	t.Run("update revalidates", func(t *testing.T) {
		f := newFixture()
		p := seed(t, f)

		_, err := f.svc.Save(ctx, p.ID, &project.UpdateProjectRequest{ProducerName: strPtr("  ")})
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "producer_name")
	})

	t.Run("unknown project id", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Save(ctx, uuid.New(), &project.UpdateProjectRequest{})
		assert.ErrorIs(t, err, project.ErrProjectNotFound)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f := newFixture()
		p := seed(t, f)

		bogus := project.Status("archived")
		_, err := f.svc.Save(ctx, p.ID, &project.UpdateProjectRequest{Status: &bogus})
		require.Error(t, err)

		verrs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, verrs, "status")
	})
}

func TestProjectSync(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, f *fixture, discussion bool) *project.Project {
		t.Helper()
		f.enricher.commitTS = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		req := f.validRequest()
		if discussion {
			req.DiscussionURL = strPtr("https://groups.google.com/g/publishing/c/abc123")
		}
		p, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		return p
	}

	t.Run("both sources refresh", func(t *testing.T) {
		f := newFixture()
		p := seed(t, f, true)

		newCommit := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		newPost := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
		f.enricher.commitTS = newCommit
		f.enricher.discussionTS = timePtr(newPost)

		resp, err := f.svc.Sync(ctx, p.ID)
		require.NoError(t, err)

		assert.True(t, resp.CommitSynced)
		assert.True(t, resp.DiscussionSynced)
		require.NotNil(t, resp.Project.LastCommitTimestamp)
		assert.Equal(t, newCommit, *resp.Project.LastCommitTimestamp)
		require.NotNil(t, resp.Project.LastDiscussionTimestamp)
		assert.Equal(t, newPost, *resp.Project.LastDiscussionTimestamp)
	})

	t.Run("a failed source degrades instead of failing", func(t *testing.T) {
		f := newFixture()
		p := seed(t, f, true)

		f.enricher.commitErr = project.ErrRemoteFetch
		f.enricher.discussionTS = timePtr(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC))

		resp, err := f.svc.Sync(ctx, p.ID)
		require.NoError(t, err)

		assert.False(t, resp.CommitSynced)
		assert.NotEmpty(t, resp.CommitError)
		assert.True(t, resp.DiscussionSynced)
	})

	t.Run("no discussion url means nothing to sync there", func(t *testing.T) {
		f := newFixture()
		p := seed(t, f, false)

		resp, err := f.svc.Sync(ctx, p.ID)
		require.NoError(t, err)

		assert.True(t, resp.CommitSynced)
		assert.False(t, resp.DiscussionSynced)
		assert.Empty(t, resp.DiscussionError)
	})

	t.Run("unknown project id", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Sync(ctx, uuid.New())
		assert.ErrorIs(t, err, project.ErrProjectNotFound)
	})
}
