package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
	ytapi "google.golang.org/api/youtube/v3"

	"thumbcheck/internal/core/domain"
)

const (
	defaultBaseURL = "https://youtube.googleapis.com/"
	searchPageSize = 50 // max allowed by search.list
	searchOrder    = "viewCount"
	searchType     = "video"
)

var (
	searchFields = googleapi.Field("items(id/videoId),nextPageToken")
	videoFields  = googleapi.Field("items(id,snippet(title,thumbnails(default/url,high/url)),statistics/viewCount)")
)

// Client implements ports.ChannelLister and ports.VideoFetcher using the YouTube Data API v3.
type Client struct {
	service    *ytapi.Service
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

// NewClient creates a Client authenticated with the given API key.
// Extra options are appended after the key, e.g. an endpoint override.
func NewClient(ctx context.Context, apiKey string, logger *log.Logger, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY environment variable not set")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	httpClient, endpoint, err := htransport.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube transport: %w", err)
	}
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	service, err := ytapi.NewService(ctx, option.WithHTTPClient(httpClient), option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{
		service:    service,
		httpClient: httpClient,
		baseURL:    endpoint,
		logger:     logger,
	}, nil
}

// ListVideoIDs pages through search.list for the channel, ordered by view count.
func (c *Client) ListVideoIDs(ctx context.Context, channelID string) ([]domain.VideoID, error) {
	var ids []domain.VideoID
	pageToken := ""

	for {
		call := c.service.Search.List([]string{"id"}).
			ChannelId(channelID).
			MaxResults(searchPageSize).
			Order(searchOrder).
			Type(searchType).
			Fields(searchFields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list videos for channel %s: %w", channelID, err)
		}

		// An absent items key ends the listing; an empty list does not.
		if resp.Items == nil {
			c.logger.Println("No video items found in response.")
			break
		}
		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}
			ids = append(ids, domain.VideoID(item.Id.VideoId))
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return ids, nil
}

// videoListResponse mirrors videos.list with pointer fields, so an absent
// title or view count can be told apart from an empty one.
type videoListResponse struct {
	Items []struct {
		Snippet *struct {
			Title      *string                 `json:"title"`
			Thumbnails *ytapi.ThumbnailDetails `json:"thumbnails"`
		} `json:"snippet"`
		Statistics *struct {
			ViewCount *string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// FetchVideo fetches snippet and statistics for a single video.
// A video missing its title, view count or thumbnail is logged and skipped.
func (c *Client) FetchVideo(ctx context.Context, id domain.VideoID) (*domain.VideoRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("id", string(id))
	params.Set("fields", string(videoFields))
	params.Set("alt", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"youtube/v3/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for video %s: %w", id, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("failed to fetch details for video %s: %w", id, err)
	}

	var result videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode details for video %s: %w", id, err)
	}

	if len(result.Items) == 0 {
		c.logger.Printf("No details found for video ID: %s", id)
		return nil, nil
	}
	video := result.Items[0]

	var missing string
	switch {
	case video.Snippet == nil:
		missing = "snippet"
	case video.Snippet.Title == nil:
		missing = "title"
	case video.Statistics == nil:
		missing = "statistics"
	case video.Statistics.ViewCount == nil:
		missing = "view count"
	}
	if missing != "" {
		c.logger.Printf("Incomplete details for video ID: %s (missing %s)", id, missing)
		return nil, nil
	}

	thumbnailURL := pickThumbnail(video.Snippet.Thumbnails)
	if thumbnailURL == "" {
		c.logger.Printf("No thumbnail found for video ID: %s", id)
		return nil, nil
	}

	views, err := strconv.ParseUint(*video.Statistics.ViewCount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse view count for video %s: %w", id, err)
	}

	return &domain.VideoRecord{
		Title:        *video.Snippet.Title,
		Views:        views,
		ThumbnailURL: thumbnailURL,
		VideoURL:     id.WatchURL(),
	}, nil
}

// pickThumbnail prefers the high resolution address, then the default one.
func pickThumbnail(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	if t.High != nil && t.High.Url != "" {
		return t.High.Url
	}
	if t.Default != nil {
		return t.Default.Url
	}
	return ""
}
