package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/janmitra/janmitra/internal/app"
	"github.com/janmitra/janmitra/internal/common"
	"github.com/janmitra/janmitra/internal/models"
)

var (
	queryLocale      string
	queryImagePath   string
	queryAudioPath   string
	queryShowSources bool
	queryWarmupWait  time.Duration
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a voter services question",
	Long: `Ask a single question and print the routed answer. Attach an image of a
voter document with --image, or an audio recording with --audio instead of
text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryLocale, "locale", "l", "en", "Response language (en or hi)")
	queryCmd.Flags().StringVar(&queryImagePath, "image", "", "Path to an image of a voter document or notice")
	queryCmd.Flags().StringVar(&queryAudioPath, "audio", "", "Path to an audio recording of the question")
	queryCmd.Flags().BoolVar(&queryShowSources, "sources", false, "Print source citations with the answer")
	queryCmd.Flags().DurationVar(&queryWarmupWait, "warmup-wait", 5*time.Second, "How long to wait for embedding warm-up")
}

func runQuery(cmd *cobra.Command, args []string) error {
	common.PrintBanner(common.Version)

	input := &models.RouteInput{
		Locale:    queryLocale,
		SessionID: common.NewRequestID(),
	}
	if len(args) > 0 {
		input.Text = args[0]
	}
	if queryImagePath != "" {
		data, err := os.ReadFile(queryImagePath)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		input.ImageBytes = data
	}
	if queryAudioPath != "" {
		data, err := os.ReadFile(queryAudioPath)
		if err != nil {
			return fmt.Errorf("failed to read audio: %w", err)
		}
		input.AudioBytes = data
	}

	a, err := app.New(config, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	// One-shot runs benefit from the vector index; wait briefly for warm-up
	if !a.WaitReady(queryWarmupWait) {
		logger.Warn().Msg("Embedding warm-up incomplete, retrieval will be lexical-only")
	}

	result, err := a.Router.RouteInput(context.Background(), input)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func printResult(result *models.RouterResult) {
	fmt.Println()
	switch {
	case result.Engine != nil:
		fmt.Println(result.Engine.FormattedResponse)
	case result.Lookup != nil:
		fmt.Println(result.Lookup.Response)
	case result.RAG != nil:
		fmt.Println(result.RAG.Text)
		fmt.Printf("\n[route=%s confidence=%.2f", result.Type, result.RAG.Confidence)
		if result.RAG.Escalate {
			fmt.Printf(" escalated=%s", result.RAG.EscalationReason)
		}
		fmt.Println("]")
		if queryShowSources {
			for _, source := range result.RAG.Sources {
				fmt.Printf("  - %s (%s)\n", source.Title, source.URL)
			}
		}
	case result.Vision != nil:
		fmt.Println(result.Vision.ExtractedText)
	}
}
