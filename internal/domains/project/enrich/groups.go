package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"pressroom-backend/internal/domains/project"
)

// groupsTimestampPattern matches the post timestamps Google Groups
// renders into its topic pages, e.g. "Mar 4, 2026, 9:15:42 PM".
var groupsTimestampPattern = regexp.MustCompile(
	`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) \d{1,2}, \d{4}, \d{1,2}:\d{2}:\d{2}\x{202f}?\s?(AM|PM)`)

const groupsTimestampLayout = "Jan 2, 2006, 3:04:05 PM"

// GroupsClient scrapes discussion activity out of Google Groups topic
// pages. There is no API for this; the markup is the contract.
type GroupsClient struct {
	client *http.Client
}

func NewGroupsClient() *GroupsClient {
	return &GroupsClient{
		client: &http.Client{Timeout: enrichHTTPTimeout},
	}
}

// LastDiscussion fetches the topic page and returns the newest post
// timestamp it can find. A page without a parsable timestamp yields nil
// without an error; transport and HTTP failures wrap ErrRemoteFetch.
func (g *GroupsClient) LastDiscussion(ctx context.Context, discussionURL string) (*time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discussionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build discussion request: %v", project.ErrRemoteFetch, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch discussion page: %v", project.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: discussion host returned status %d", project.ErrRemoteFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read discussion page: %v", project.ErrRemoteFetch, err)
	}

	return parseLastTimestamp(string(body)), nil
}

// parseLastTimestamp returns the last parsable timestamp fragment on the
// page. Posts render oldest first, so the last fragment is the newest post.
func parseLastTimestamp(body string) *time.Time {
	matches := groupsTimestampPattern.FindAllString(body, -1)

	for i := len(matches) - 1; i >= 0; i-- {
		ts, err := time.ParseInLocation(groupsTimestampLayout, normalizeSpaces(matches[i]), time.UTC)
		if err != nil {
			continue
		}
		return &ts
	}

	return nil
}

// normalizeSpaces replaces the narrow no-break space Google Groups puts
// before the AM/PM marker with a plain space.
func normalizeSpaces(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\u202f' || r == '\u00a0' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
