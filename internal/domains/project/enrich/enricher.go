package enrich

import (
	"context"
	"time"

	"pressroom-backend/internal/domains/project"
)

// Enricher bundles the per-host clients behind the project.Enricher
// interface.
type Enricher struct {
	github *GitHubClient
	groups *GroupsClient
}

var _ project.Enricher = (*Enricher)(nil)

func NewEnricher(githubAPIKey string) *Enricher {
	return &Enricher{
		github: NewGitHubClient(githubAPIKey),
		groups: NewGroupsClient(),
	}
}

func (e *Enricher) LatestCommit(ctx context.Context, vcsURL string) (string, time.Time, error) {
	return e.github.LatestCommit(ctx, vcsURL)
}

func (e *Enricher) LastDiscussion(ctx context.Context, discussionURL string) (*time.Time, error) {
	return e.groups.LastDiscussion(ctx, discussionURL)
}
