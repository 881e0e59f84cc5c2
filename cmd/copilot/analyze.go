package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/okgoogle13/resume-copilot/internal/gateway"
	"github.com/okgoogle13/resume-copilot/internal/ingest"
	"github.com/okgoogle13/resume-copilot/internal/llm"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job posting into structured JSON",
	Long:  "Analyze a job posting from a text file or URL and print the structured analysis (title, company, responsibilities, skills, keywords) as JSON.",
	RunE:  runAnalyze,
}

var (
	analyzeInputFile  string
	analyzeURL        string
	analyzeUseBrowser bool
	analyzeAPIKey     string
	analyzeOutputFile string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInputFile, "in", "i", "", "Path to job posting text file")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "URL to fetch the job posting from")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use a headless browser for postings rendered client-side")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if (analyzeInputFile == "") == (analyzeURL == "") {
		return fmt.Errorf("provide exactly one of --in or --url")
	}

	apiKey := resolveAPIKey(analyzeAPIKey)
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var jobText string
	if analyzeInputFile != "" {
		content, err := os.ReadFile(analyzeInputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		jobText = string(content)
	} else {
		opts := ingest.DefaultOptions()
		opts.UseBrowser = analyzeUseBrowser
		text, err := ingest.JobDescription(ctx, analyzeURL, opts)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		jobText = text
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	stopProgress := startProgress("Analyzing job posting")
	analysis, err := gateway.New(client).AnalyzeJobDescription(ctx, jobText)
	stopProgress()
	if err != nil {
		return fmt.Errorf("failed to analyze job posting: %w", err)
	}

	return writeJSONOutput(analysis, analyzeOutputFile)
}

// resolveAPIKey prefers the flag over the environment.
func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("GEMINI_API_KEY")
}

// writeJSONOutput writes v as indented JSON to the given path, or stdout
// when the path is empty.
func writeJSONOutput(v any, path string) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		fmt.Println(string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Output: %s\n", path)
	return nil
}
