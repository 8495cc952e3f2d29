package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pressroom-backend/internal/domains/project"
)

const (
	githubAPIBaseURL  = "https://api.github.com"
	githubAPIVersion  = "2022-11-28"
	defaultUserAgent  = "pressroom-backend"
	enrichHTTPTimeout = 10 * time.Second
)

// GitHubClient reads commit activity from the GitHub REST API.
type GitHubClient struct {
	client     *http.Client
	apiBaseURL string
	apiKey     string
}

func NewGitHubClient(apiKey string) *GitHubClient {
	return &GitHubClient{
		client:     &http.Client{Timeout: enrichHTTPTimeout},
		apiBaseURL: githubAPIBaseURL,
		apiKey:     apiKey,
	}
}

type commitListItem struct {
	Commit struct {
		Committer struct {
			Date time.Time `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
}

// LatestCommit resolves renames by following the web URL's redirects,
// then asks the API for the newest commit of the repository it lands on.
func (g *GitHubClient) LatestCommit(ctx context.Context, vcsURL string) (string, time.Time, error) {
	finalURL, err := g.resolveRedirects(ctx, vcsURL)
	if err != nil {
		return "", time.Time{}, err
	}

	owner, repo, err := splitRepoPath(finalURL)
	if err != nil {
		return "", time.Time{}, err
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=1", g.apiBaseURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: build commits request: %v", project.ErrRemoteFetch, err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	req.Header.Set("User-Agent", defaultUserAgent)
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: fetch commits: %v", project.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("%w: github api returned status %d", project.ErrRemoteFetch, resp.StatusCode)
	}

	var commits []commitListItem
	if err := json.NewDecoder(resp.Body).Decode(&commits); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: decode commits: %v", project.ErrRemoteFetch, err)
	}
	if len(commits) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: repository has no commits", project.ErrRemoteFetch)
	}

	return finalURL, commits[0].Commit.Committer.Date.UTC(), nil
}

// splitRepoPath extracts the owner and repository from the first two path
// segments of a repository web URL.
func splitRepoPath(rawURL string) (owner, repo string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: parse repository url: %v", project.ErrRemoteFetch, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("%w: %q does not name a repository", project.ErrRemoteFetch, rawURL)
	}

	return segments[0], segments[1], nil
}

// resolveRedirects issues a HEAD request against the web URL. GitHub
// answers renamed repositories with a redirect to the new address, which
// the default client follows; the response carries the final URL.
func (g *GitHubClient) resolveRedirects(ctx context.Context, vcsURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, vcsURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build redirect probe: %v", project.ErrRemoteFetch, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: probe repository url: %v", project.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: repository not found", project.ErrRemoteFetch)
	}

	return resp.Request.URL.String(), nil
}
