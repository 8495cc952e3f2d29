package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(v time.Time) *time.Time {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusInProgress.IsValid())
	assert.True(t, StatusStalled.IsValid())
	assert.True(t, StatusAbandoned.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, Status("archived").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatusIsActive(t *testing.T) {
	assert.True(t, StatusInProgress.IsActive())
	assert.True(t, StatusStalled.IsActive())
	assert.False(t, StatusAbandoned.IsActive())
	assert.False(t, StatusCompleted.IsActive())
}

func TestLastActivityTimestamp(t *testing.T) {
	started := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	earlier := started.Add(-48 * time.Hour)
	later := started.Add(72 * time.Hour)
	latest := started.Add(96 * time.Hour)

	t.Run("only started", func(t *testing.T) {
		p := &Project{Started: started}

		assert.Equal(t, started, p.LastActivityTimestamp())
	})

	t.Run("commit newer than started", func(t *testing.T) {
		p := &Project{Started: started, LastCommitTimestamp: timePtr(later)}

		assert.Equal(t, later, p.LastActivityTimestamp())
	})

	t.Run("discussion newer than commit", func(t *testing.T) {
		p := &Project{
			Started:                 started,
			LastCommitTimestamp:     timePtr(later),
			LastDiscussionTimestamp: timePtr(latest),
		}

		assert.Equal(t, latest, p.LastActivityTimestamp())
	})

	t.Run("older external activity never wins", func(t *testing.T) {
		p := &Project{
			Started:                 started,
			LastCommitTimestamp:     timePtr(earlier),
			LastDiscussionTimestamp: timePtr(earlier),
		}

		assert.Equal(t, started, p.LastActivityTimestamp())
	})
}

func TestHasRecognizedVCSURL(t *testing.T) {
	tests := []struct {
		url        string
		recognized bool
	}{
		{"https://github.com/publisher/some-book", true},
		{"https://github.com/publisher/some-book/", true},
		{"https://gitlab.com/publisher/some-book", false},
		{"http://github.com/publisher/some-book", false},
		{"", false},
	}

	for _, tt := range tests {
		p := &Project{VCSURL: tt.url}
		assert.Equal(t, tt.recognized, p.HasRecognizedVCSURL(), tt.url)
	}
}

func TestParseVCSURL(t *testing.T) {
	owner, repo, ok := ParseVCSURL("https://github.com/publisher/jane-austen_persuasion")
	assert.True(t, ok)
	assert.Equal(t, "publisher", owner)
	assert.Equal(t, "jane-austen_persuasion", repo)

	_, _, ok = ParseVCSURL("https://example.com/not/github")
	assert.False(t, ok)
}

func TestHasRecognizedDiscussionURL(t *testing.T) {
	p := &Project{}
	assert.False(t, p.HasRecognizedDiscussionURL())

	p.DiscussionURL = strPtr("https://groups.google.com/g/publishing/c/abc123")
	assert.True(t, p.HasRecognizedDiscussionURL())

	p.DiscussionURL = strPtr("https://forum.example.com/t/abc123")
	assert.False(t, p.HasRecognizedDiscussionURL())
}

func TestCanonicalizeDiscussionURL(t *testing.T) {
	t.Run("message suffix is stripped", func(t *testing.T) {
		got := CanonicalizeDiscussionURL("https://groups.google.com/g/publishing/c/abc123/m/xyz789")
		assert.Equal(t, "https://groups.google.com/g/publishing/c/abc123", got)
	})

	t.Run("canonical url passes through", func(t *testing.T) {
		canonical := "https://groups.google.com/g/publishing/c/abc123"
		assert.Equal(t, canonical, CanonicalizeDiscussionURL(canonical))
	})

	t.Run("group root url is kept", func(t *testing.T) {
		got := CanonicalizeDiscussionURL("https://groups.google.com/g/publishing?pli=1")
		assert.Equal(t, "https://groups.google.com/g/publishing", got)
	})

	t.Run("unrecognized url is untouched", func(t *testing.T) {
		other := "https://forum.example.com/t/abc123/42"
		assert.Equal(t, other, CanonicalizeDiscussionURL(other))
	})
}
