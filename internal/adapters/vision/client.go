package vision

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"

	"thumbcheck/internal/core/domain"
)

const safeSearchFeature = "SAFE_SEARCH_DETECTION"

// Client implements ports.ThumbnailClassifier using Cloud Vision SafeSearch detection.
type Client struct {
	service *visionapi.Service
	logger  *log.Logger
}

// NewClient creates a Client.
// When credentialsFile is empty, Application Default Credentials are used.
func NewClient(ctx context.Context, credentialsFile string, logger *log.Logger, opts ...option.ClientOption) (*Client, error) {
	if credentialsFile != "" {
		opts = append([]option.ClientOption{option.WithCredentialsFile(credentialsFile)}, opts...)
	}

	service, err := visionapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vision service: %w", err)
	}
	return &Client{service: service, logger: logger}, nil
}

// Classify asks Vision to fetch the image at imageURL and rate it.
func (c *Client) Classify(ctx context.Context, imageURL string) (domain.SafetyVerdict, error) {
	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{
			{
				Image: &visionapi.Image{
					Source: &visionapi.ImageSource{ImageUri: imageURL},
				},
				Features: []*visionapi.Feature{{Type: safeSearchFeature}},
			},
		},
	}

	resp, err := c.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return domain.SafetyVerdict{}, fmt.Errorf("failed to annotate image %s: %w", imageURL, err)
	}
	if len(resp.Responses) == 0 {
		return domain.SafetyVerdict{}, fmt.Errorf("empty annotate response for image %s", imageURL)
	}

	r := resp.Responses[0]
	if r.Error != nil && r.Error.Message != "" {
		return domain.SafetyVerdict{}, &domain.ClassificationError{ImageURL: imageURL, Message: r.Error.Message}
	}

	safe := r.SafeSearchAnnotation
	if safe == nil {
		c.logger.Printf("No safe search annotation for image: %s", imageURL)
		return domain.SafetyVerdict{}, nil
	}

	return domain.SafetyVerdict{
		Adult:    domain.ParseLikelihood(safe.Adult),
		Spoof:    domain.ParseLikelihood(safe.Spoof),
		Medical:  domain.ParseLikelihood(safe.Medical),
		Violence: domain.ParseLikelihood(safe.Violence),
		Racy:     domain.ParseLikelihood(safe.Racy),
	}, nil
}
