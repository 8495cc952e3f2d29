package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom-backend/internal/domains/project"
)

func newAPIServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, githubAPIVersion, r.Header.Get("X-GitHub-Api-Version"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestLatestCommit(t *testing.T) {
	ctx := context.Background()

	commitsBody := `[{"commit": {"committer": {"date": "2026-03-15T09:30:00Z"}}}]`

	t.Run("returns the newest commit timestamp", func(t *testing.T) {
		api := newAPIServer(t, http.StatusOK, commitsBody)
		defer api.Close()

		web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			w.WriteHeader(http.StatusOK)
		}))
		defer web.Close()

		client := NewGitHubClient("")
		client.apiBaseURL = api.URL

		finalURL, ts, err := client.LatestCommit(ctx, web.URL+"/publisher/some-book")
		require.NoError(t, err)
		assert.Equal(t, web.URL+"/publisher/some-book", finalURL)
		assert.Equal(t, time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC), ts)
	})

	t.Run("follows a rename redirect", func(t *testing.T) {
		api := newAPIServer(t, http.StatusOK, commitsBody)
		defer api.Close()

		web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/publisher/old-name" {
				http.Redirect(w, r, "/publisher/new-name", http.StatusMovedPermanently)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer web.Close()

		client := NewGitHubClient("")
		client.apiBaseURL = api.URL

		finalURL, _, err := client.LatestCommit(ctx, web.URL+"/publisher/old-name")
		require.NoError(t, err)
		assert.Equal(t, web.URL+"/publisher/new-name", finalURL)
	})

	t.Run("missing repository", func(t *testing.T) {
		web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer web.Close()

		client := NewGitHubClient("")

		_, _, err := client.LatestCommit(ctx, web.URL+"/publisher/gone")
		assert.ErrorIs(t, err, project.ErrRemoteFetch)
	})

	t.Run("api failure", func(t *testing.T) {
		api := newAPIServer(t, http.StatusForbidden, `{"message": "rate limited"}`)
		defer api.Close()

		web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer web.Close()

		client := NewGitHubClient("")
		client.apiBaseURL = api.URL

		_, _, err := client.LatestCommit(ctx, web.URL+"/publisher/some-book")
		assert.ErrorIs(t, err, project.ErrRemoteFetch)
	})

	t.Run("empty commit history", func(t *testing.T) {
		api := newAPIServer(t, http.StatusOK, `[]`)
		defer api.Close()

		web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer web.Close()

		client := NewGitHubClient("")
		client.apiBaseURL = api.URL

		_, _, err := client.LatestCommit(ctx, web.URL+"/publisher/empty-book")
		assert.ErrorIs(t, err, project.ErrRemoteFetch)
	})

	t.Run("api key becomes a bearer token", func(t *testing.T) {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
			fmt.Fprint(w, commitsBody)
		}))
		defer api.Close()

		web := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer web.Close()

		client := NewGitHubClient("sekrit")
		client.apiBaseURL = api.URL

		_, _, err := client.LatestCommit(ctx, web.URL+"/publisher/some-book")
		require.NoError(t, err)
	})
}

func TestSplitRepoPath(t *testing.T) {
	owner, repo, err := splitRepoPath("https://github.com/publisher/some-book")
	require.NoError(t, err)
	assert.Equal(t, "publisher", owner)
	assert.Equal(t, "some-book", repo)

	_, _, err = splitRepoPath("https://github.com/just-an-owner")
	assert.ErrorIs(t, err, project.ErrRemoteFetch)
}
