package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"thumbcheck/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	c, err := NewClient(context.Background(), "test-key", log.New(&logs, "", 0),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c, &logs
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", log.New(&bytes.Buffer{}, "", 0))
	if err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestListVideoIDs_FollowsPages(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/search") {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		calls++
		q := r.URL.Query()
		checks := map[string]string{
			"part":       "id",
			"channelId":  "UC123",
			"maxResults": "50",
			"order":      "viewCount",
			"type":       "video",
		}
		for k, want := range checks {
			if got := q.Get(k); got != want {
				t.Errorf("query %s = %q, want %q", k, got, want)
			}
		}

		switch q.Get("pageToken") {
		case "":
			fmt.Fprint(w, `{"items":[{"id":{"videoId":"a"}},{"id":{"videoId":"b"}}],"nextPageToken":"P2"}`)
		case "P2":
			fmt.Fprint(w, `{"items":[{"id":{"videoId":"c"}},{"id":{}}]}`)
		default:
			t.Errorf("unexpected pageToken %q", q.Get("pageToken"))
			fmt.Fprint(w, `{}`)
		}
	})

	ids, err := c.ListVideoIDs(context.Background(), "UC123")
	if err != nil {
		t.Fatalf("ListVideoIDs failed: %v", err)
	}

	want := []domain.VideoID{"a", "b", "c"}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids %v, want %v", len(ids), ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
}

func TestListVideoIDs_MissingItemsStopsEarly(t *testing.T) {
	var calls int
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("pageToken") {
		case "":
			fmt.Fprint(w, `{"items":[{"id":{"videoId":"a"}}],"nextPageToken":"P2"}`)
		default:
			// no items key, but a token that must not be followed
			fmt.Fprint(w, `{"nextPageToken":"P3"}`)
		}
	})

	ids, err := c.ListVideoIDs(context.Background(), "UC123")
	if err != nil {
		t.Fatalf("ListVideoIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "a" {
		t.Errorf("ids = %v, want [a]", ids)
	}
	if calls != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
	if !strings.Contains(logs.String(), "No video items found in response.") {
		t.Errorf("missing diagnostic, logs: %q", logs.String())
	}
}

func TestListVideoIDs_EmptyItemsContinues(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("pageToken") {
		case "":
			fmt.Fprint(w, `{"items":[],"nextPageToken":"P2"}`)
		default:
			fmt.Fprint(w, `{"items":[{"id":{"videoId":"z"}}]}`)
		}
	})

	ids, err := c.ListVideoIDs(context.Background(), "UC123")
	if err != nil {
		t.Fatalf("ListVideoIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "z" {
		t.Errorf("ids = %v, want [z]", ids)
	}
}

func TestListVideoIDs_APIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"quota exceeded"}}`)
	})

	_, err := c.ListVideoIDs(context.Background(), "UC123")
	if err == nil {
		t.Fatal("expected error")
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected googleapi.Error in chain, got %v", err)
	}
	if gerr.Code != http.StatusForbidden {
		t.Errorf("code = %d, want 403", gerr.Code)
	}
}

func TestFetchVideo(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      *domain.VideoRecord
		wantLog   string
		wantError bool
	}{
		{
			name: "high thumbnail",
			body: `{"items":[{"id":"a","snippet":{"title":"T1","thumbnails":{
				"default":{"url":"https://i.ytimg.com/vi/a/default.jpg"},
				"high":{"url":"https://i.ytimg.com/vi/a/hqdefault.jpg"}}},
				"statistics":{"viewCount":"100"}}]}`,
			want: &domain.VideoRecord{
				Title:        "T1",
				Views:        100,
				ThumbnailURL: "https://i.ytimg.com/vi/a/hqdefault.jpg",
				VideoURL:     "https://www.youtube.com/watch?v=a",
			},
		},
		{
			name: "falls back to default thumbnail",
			body: `{"items":[{"id":"a","snippet":{"title":"T2","thumbnails":{
				"default":{"url":"https://i.ytimg.com/vi/a/default.jpg"}}},
				"statistics":{"viewCount":"7"}}]}`,
			want: &domain.VideoRecord{
				Title:        "T2",
				Views:        7,
				ThumbnailURL: "https://i.ytimg.com/vi/a/default.jpg",
				VideoURL:     "https://www.youtube.com/watch?v=a",
			},
		},
		{
			name:    "no items",
			body:    `{"items":[]}`,
			wantLog: "No details found for video ID: a",
		},
		{
			name:    "items key missing",
			body:    `{}`,
			wantLog: "No details found for video ID: a",
		},
		{
			name:    "no thumbnails",
			body:    `{"items":[{"id":"a","snippet":{"title":"T3","thumbnails":{}},"statistics":{"viewCount":"1"}}]}`,
			wantLog: "No thumbnail found for video ID: a",
		},
		{
			name:    "missing statistics",
			body:    `{"items":[{"id":"a","snippet":{"title":"T4","thumbnails":{"default":{"url":"u"}}}}]}`,
			wantLog: "Incomplete details for video ID: a",
		},
		{
			name:    "statistics without view count",
			body:    `{"items":[{"id":"a","snippet":{"title":"T6","thumbnails":{"default":{"url":"u"}}},"statistics":{}}]}`,
			wantLog: "Incomplete details for video ID: a (missing view count)",
		},
		{
			name:    "snippet without title",
			body:    `{"items":[{"id":"a","snippet":{"thumbnails":{"default":{"url":"u"}}},"statistics":{"viewCount":"3"}}]}`,
			wantLog: "Incomplete details for video ID: a (missing title)",
		},
		{
			name: "explicit zero views",
			body: `{"items":[{"id":"a","snippet":{"title":"","thumbnails":{"default":{"url":"u"}}},"statistics":{"viewCount":"0"}}]}`,
			want: &domain.VideoRecord{
				Title:        "",
				Views:        0,
				ThumbnailURL: "u",
				VideoURL:     "https://www.youtube.com/watch?v=a",
			},
		},
		{
			name:      "malformed view count",
			body:      `{"items":[{"id":"a","snippet":{"title":"T5","thumbnails":{"default":{"url":"u"}}},"statistics":{"viewCount":"lots"}}]}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasSuffix(r.URL.Path, "/videos") {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("id") != "a" {
					t.Errorf("id = %q, want a", q.Get("id"))
				}
				if got := strings.Join(q["part"], ","); got != "snippet,statistics" {
					t.Errorf("part = %q, want snippet,statistics", got)
				}
				fmt.Fprint(w, tt.body)
			})

			got, err := c.FetchVideo(context.Background(), "a")
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchVideo failed: %v", err)
			}

			if tt.want == nil {
				if got != nil {
					t.Errorf("expected absent record, got %+v", got)
				}
			} else {
				if got == nil {
					t.Fatal("expected record, got nil")
				}
				if *got != *tt.want {
					t.Errorf("got %+v, want %+v", *got, *tt.want)
				}
			}
			if tt.wantLog != "" && !strings.Contains(logs.String(), tt.wantLog) {
				t.Errorf("logs %q do not contain %q", logs.String(), tt.wantLog)
			}
		})
	}
}

func TestFetchVideo_APIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"quota exceeded"}}`)
	})

	_, err := c.FetchVideo(context.Background(), "a")
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected googleapi.Error in chain, got %v", err)
	}
	if gerr.Code != http.StatusForbidden {
		t.Errorf("code = %d, want 403", gerr.Code)
	}
}
