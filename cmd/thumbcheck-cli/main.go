package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"thumbcheck/internal/adapters/localstorage"
	"thumbcheck/internal/adapters/vision"
	"thumbcheck/internal/adapters/youtube"
	"thumbcheck/internal/service"
)

const (
	defaultChannelID  = "UCE7rRhCrEW8OxA6tpAye1kg"
	defaultReportFile = "youtube_videos_report.csv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Environment variables might be set manually
		log.Println("No .env file found")
	}

	channelID := flag.String("channel", defaultChannelID, "YouTube channel ID to report on")
	out := flag.String("out", defaultReportFile, "Path of the CSV report to write")
	flag.Parse()

	if *channelID == "" {
		fmt.Println("Usage: thumbcheck-cli [-channel <channel-id>] [-out <report.csv>]")
		fmt.Println("\nEnvironment:")
		fmt.Println("  YOUTUBE_API_KEY                 YouTube Data API key (required)")
		fmt.Println("  GOOGLE_APPLICATION_CREDENTIALS  service account file for Cloud Vision")
		fmt.Println("\nExample:")
		fmt.Printf("  thumbcheck-cli -channel %s -out report.csv\n", defaultChannelID)
		os.Exit(1)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	logger.Println("=== Thumbnail Safety Report ===")
	logger.Printf("Channel: %s", *channelID)
	logger.Printf("Report:  %s", *out)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("\nReceived interrupt signal, cancelling...")
		cancel()
	}()

	yt, err := youtube.NewClient(ctx, os.Getenv("YOUTUBE_API_KEY"), logger)
	if err != nil {
		logger.Fatalf("Failed to initialize YouTube client: %v", err)
	}

	classifier, err := vision.NewClient(ctx, os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), logger)
	if err != nil {
		logger.Fatalf("Failed to initialize Vision client: %v", err)
	}

	storage := localstorage.NewLocalStorage(".", logger)

	orchestrator := service.NewOrchestrator(yt, yt, classifier, storage, logger)

	result, err := orchestrator.Run(ctx, *channelID, *out)
	if err != nil {
		logger.Printf("Run failed: %v", err)
		os.Exit(1)
	}

	fmt.Println("\n=== Run Summary ===")
	fmt.Printf("Run ID:       %s\n", result.Run.ID)
	fmt.Printf("Channel:      %s\n", result.Run.ChannelID)
	fmt.Printf("Videos found: %d\n", result.VideosFound)
	fmt.Printf("Skipped:      %d\n", result.VideosSkipped)
	fmt.Printf("Rows written: %d\n", result.RowsWritten)
	if result.ReportPath != "" {
		fmt.Printf("Report:       %s\n", result.ReportPath)
	}
	fmt.Printf("Completed At: %s\n", result.CompletedAt.Format(time.RFC3339))
}
