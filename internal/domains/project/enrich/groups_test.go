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

func TestLastDiscussion(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the newest post timestamp", func(t *testing.T) {
		page := `<html><body>
            <span>Jan 5, 2026, 10:15:30 AM</span>
            <span>Feb 12, 2026, 8:45:02 PM</span>
        </body></html>`

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, page)
		}))
		defer srv.Close()

		ts, err := NewGroupsClient().LastDiscussion(ctx, srv.URL)
		require.NoError(t, err)
		require.NotNil(t, ts)
		assert.Equal(t, time.Date(2026, 2, 12, 20, 45, 2, 0, time.UTC), *ts)
	})

	t.Run("narrow no-break space before the meridiem", func(t *testing.T) {
		page := "<span>Mar 4, 2026, 9:15:42\u202fPM</span>"

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, page)
		}))
		defer srv.Close()

		ts, err := NewGroupsClient().LastDiscussion(ctx, srv.URL)
		require.NoError(t, err)
		require.NotNil(t, ts)
		assert.Equal(t, time.Date(2026, 3, 4, 21, 15, 42, 0, time.UTC), *ts)
	})

	t.Run("page without timestamps yields nil", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body>nothing here</body></html>")
		}))
		defer srv.Close()

		ts, err := NewGroupsClient().LastDiscussion(ctx, srv.URL)
		require.NoError(t, err)
		assert.Nil(t, ts)
	})

	t.Run("http failure wraps the remote fetch error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewGroupsClient().LastDiscussion(ctx, srv.URL)
		assert.ErrorIs(t, err, project.ErrRemoteFetch)
	})

	t.Run("unreachable host wraps the remote fetch error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := NewGroupsClient().LastDiscussion(ctx, srv.URL)
		assert.ErrorIs(t, err, project.ErrRemoteFetch)
	})
}

func TestParseLastTimestamp(t *testing.T) {
	t.Run("last fragment wins", func(t *testing.T) {
		body := "Dec 1, 2025, 11:59:59 PM then Nov 1, 2025, 1:00:00 AM"

		ts := parseLastTimestamp(body)
		require.NotNil(t, ts)
		assert.Equal(t, time.Date(2025, 11, 1, 1, 0, 0, 0, time.UTC), *ts)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, parseLastTimestamp("no dates at all"))
	})
}
