package ports

import (
	"context"

	"thumbcheck/internal/core/domain"
)

// ChannelLister defines the contract for enumerating a channel's videos.
type ChannelLister interface {
	// ListVideoIDs returns every video ID of the channel, most viewed first.
	// A page without result items ends the listing early without error.
	ListVideoIDs(ctx context.Context, channelID string) ([]domain.VideoID, error)
}

// VideoFetcher defines the contract for fetching per-video metadata.
type VideoFetcher interface {
	// FetchVideo returns the video's metadata.
	// Returns (nil, nil) when the service has no usable details for the ID;
	// the caller must skip that video.
	FetchVideo(ctx context.Context, id domain.VideoID) (*domain.VideoRecord, error)
}

// ThumbnailClassifier defines the contract for rating a thumbnail image.
type ThumbnailClassifier interface {
	// Classify submits the image address (not its bytes) for safety classification.
	// A service-reported failure is returned as *domain.ClassificationError.
	Classify(ctx context.Context, imageURL string) (domain.SafetyVerdict, error)
}

// ReportWriter defines the contract for persisting the final report.
type ReportWriter interface {
	// WriteReport writes rows in order and returns how many were written.
	// No file is produced when rows is empty.
	WriteReport(ctx context.Context, path string, rows []domain.ReportRow) (int, error)
}
