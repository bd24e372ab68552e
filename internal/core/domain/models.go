package domain

import (
	"strconv"
	"time"
)

// WatchURLPrefix is prepended to a video ID to build its playback address.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// VideoID is the opaque identifier issued by the listing service.
type VideoID string

// WatchURL returns the watch-page address for the video.
func (id VideoID) WatchURL() string {
	return WatchURLPrefix + string(id)
}

// VideoRecord holds the metadata extracted for a single video.
type VideoRecord struct {
	Title        string
	Views        uint64
	ThumbnailURL string
	VideoURL     string
}

// ReportHeader is the column order of the CSV report.
var ReportHeader = []string{
	"title",
	"views",
	"thumbnail_url",
	"video_url",
	"Adult",
	"Spoof",
	"Medical",
	"Violence",
	"Racy",
}

// ReportRow is a VideoRecord merged with its thumbnail verdict.
type ReportRow struct {
	VideoRecord
	Verdict SafetyVerdict
}

// Fields returns the row values in ReportHeader order.
func (r ReportRow) Fields() []string {
	return []string{
		r.Title,
		strconv.FormatUint(r.Views, 10),
		r.ThumbnailURL,
		r.VideoURL,
		r.Verdict.Adult.String(),
		r.Verdict.Spoof.String(),
		r.Verdict.Medical.String(),
		r.Verdict.Violence.String(),
		r.Verdict.Racy.String(),
	}
}

// Run represents a single report run for one channel.
type Run struct {
	ID         string
	ChannelID  string
	ReportPath string
	CreatedAt  time.Time
}

// RunResult holds the outcome of a run.
type RunResult struct {
	Run           Run
	VideosFound   int
	VideosSkipped int
	RowsWritten   int
	ReportPath    string // empty when no report was written
	Success       bool
	ErrorMessage  string
	CompletedAt   time.Time
}
