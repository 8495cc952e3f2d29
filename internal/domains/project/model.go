package project

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Status is the production state of a project.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusStalled    Status = "stalled"
	StatusAbandoned  Status = "abandoned"
	StatusCompleted  Status = "completed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusInProgress, StatusStalled, StatusAbandoned, StatusCompleted:
		return true
	}
	return false
}

// IsActive reports whether a project in this status still claims its ebook.
func (s Status) IsActive() bool {
	return s == StatusInProgress || s == StatusStalled
}

var (
	// vcsURLPattern recognizes a GitHub repository web URL.
	vcsURLPattern = regexp.MustCompile(`^https://github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)`)

	// discussionURLPattern recognizes a Google Groups topic URL. Group 0
	// is the canonical topic address; anything after it (message anchors
	// and the like) is noise.
	discussionURLPattern = regexp.MustCompile(`^https://groups\.google\.com/g/[^/\s?#]+(/c/[^/\s?#]+)?`)
)

// Project tracks the production of one ebook from a placeholder to a
// published book.
type Project struct {
	ID      uuid.UUID `json:"id" db:"id"`
	EbookID uuid.UUID `json:"ebook_id" db:"ebook_id"`
	Status  Status    `json:"status" db:"status"`

	ProducerName  string  `json:"producer_name" db:"producer_name"`
	ProducerEmail *string `json:"producer_email" db:"producer_email"`

	DiscussionURL *string `json:"discussion_url" db:"discussion_url"`
	VCSURL        string  `json:"vcs_url" db:"vcs_url"`

	Started time.Time  `json:"started" db:"started"`
	Ended   *time.Time `json:"ended" db:"ended"`

	ManagerUserID  uuid.UUID `json:"manager_user_id" db:"manager_user_id"`
	ReviewerUserID uuid.UUID `json:"reviewer_user_id" db:"reviewer_user_id"`

	LastCommitTimestamp     *time.Time `json:"last_commit_timestamp" db:"last_commit_timestamp"`
	LastDiscussionTimestamp *time.Time `json:"last_discussion_timestamp" db:"last_discussion_timestamp"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LastActivityTimestamp is the most recent of Started and the two
// externally sourced timestamps. Computed on demand, never stored.
func (p *Project) LastActivityTimestamp() time.Time {
	latest := p.Started

	if p.LastCommitTimestamp != nil && p.LastCommitTimestamp.After(latest) {
		latest = *p.LastCommitTimestamp
	}
	if p.LastDiscussionTimestamp != nil && p.LastDiscussionTimestamp.After(latest) {
		latest = *p.LastDiscussionTimestamp
	}

	return latest
}

// URL is the site-relative address of the project page.
func (p *Project) URL() string {
	return "/projects/" + p.ID.String()
}

// HasRecognizedVCSURL reports whether VCSURL points at a host we can
// fetch commit history from.
func (p *Project) HasRecognizedVCSURL() bool {
	return vcsURLPattern.MatchString(p.VCSURL)
}

// HasRecognizedDiscussionURL reports whether DiscussionURL points at a
// host we can scrape for discussion activity.
func (p *Project) HasRecognizedDiscussionURL() bool {
	return p.DiscussionURL != nil && discussionURLPattern.MatchString(*p.DiscussionURL)
}

// ParseVCSURL extracts the owner and repository from a GitHub web URL.
func ParseVCSURL(vcsURL string) (owner, repo string, ok bool) {
	m := vcsURLPattern.FindStringSubmatch(vcsURL)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// CanonicalizeDiscussionURL strips message-specific suffixes from a
// recognized discussion URL so two links to the same topic compare equal.
// Unrecognized URLs pass through untouched.
func CanonicalizeDiscussionURL(raw string) string {
	if m := discussionURLPattern.FindString(raw); m != "" {
		return m
	}
	return raw
}
