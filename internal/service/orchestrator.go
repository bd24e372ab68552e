package service

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"

	"thumbcheck/internal/core/domain"
	"thumbcheck/internal/core/ports"
)

// Orchestrator coordinates the channel report workflow.
type Orchestrator struct {
	lister     ports.ChannelLister
	fetcher    ports.VideoFetcher
	classifier ports.ThumbnailClassifier
	writer     ports.ReportWriter
	logger     *log.Logger
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	lister ports.ChannelLister,
	fetcher ports.VideoFetcher,
	classifier ports.ThumbnailClassifier,
	writer ports.ReportWriter,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		lister:     lister,
		fetcher:    fetcher,
		classifier: classifier,
		writer:     writer,
		logger:     logger,
	}
}

// Run builds the thumbnail safety report for channelID and writes it to reportPath.
// Any error aborts the run before the report is written.
func (o *Orchestrator) Run(ctx context.Context, channelID, reportPath string) (*domain.RunResult, error) {
	run := domain.Run{
		ID:         uuid.New().String(),
		ChannelID:  channelID,
		ReportPath: reportPath,
		CreatedAt:  time.Now().UTC(),
	}
	result := &domain.RunResult{Run: run}
	o.logger.Printf("[RUN %s] Starting report for channel: %s", run.ID, channelID)

	fail := func(format string, err error) (*domain.RunResult, error) {
		result.ErrorMessage = fmt.Sprintf(format, err)
		result.CompletedAt = time.Now().UTC()
		o.logger.Printf("[RUN %s] ERROR: %s", run.ID, result.ErrorMessage)
		return result, err
	}

	o.logger.Printf("[RUN %s] Fetching video IDs...", run.ID)
	ids, err := o.lister.ListVideoIDs(ctx, channelID)
	if err != nil {
		return fail("failed to list videos: %v", err)
	}
	result.VideosFound = len(ids)
	o.logger.Printf("[RUN %s] Found %d videos.", run.ID, len(ids))

	rows := make([]domain.ReportRow, 0, len(ids))
	for _, id := range ids {
		o.logger.Printf("[RUN %s] Processing video ID: %s", run.ID, id)

		video, err := o.fetcher.FetchVideo(ctx, id)
		if err != nil {
			return fail("failed to fetch video details: %v", err)
		}
		if video == nil {
			result.VideosSkipped++
			continue
		}

		verdict, err := o.classifier.Classify(ctx, video.ThumbnailURL)
		if err != nil {
			return fail("failed to classify thumbnail: %v", err)
		}
		rows = append(rows, domain.ReportRow{VideoRecord: *video, Verdict: verdict})
	}

	SortByViews(rows)

	n, err := o.writer.WriteReport(ctx, reportPath, rows)
	if err != nil {
		return fail("failed to write report: %v", err)
	}
	result.RowsWritten = n
	if n > 0 {
		result.ReportPath = reportPath
		o.logger.Printf("[RUN %s] Video data has been written to %s", run.ID, reportPath)
	}

	result.Success = true
	result.CompletedAt = time.Now().UTC()
	o.logger.Printf("[RUN %s] Run completed successfully!", run.ID)
	return result, nil
}

// SortByViews orders rows by view count, highest first.
// Rows with equal views keep their relative order.
func SortByViews(rows []domain.ReportRow) {
	slices.SortStableFunc(rows, func(a, b domain.ReportRow) int {
		return cmp.Compare(b.Views, a.Views)
	})
}
