package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okgoogle13/resume-copilot/internal/gateway"
	"github.com/okgoogle13/resume-copilot/internal/llm"
	"github.com/okgoogle13/resume-copilot/internal/rendering"
	"github.com/okgoogle13/resume-copilot/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored application package",
	Long:  "Generate the full application package (tailored resume, cover letter, KSC responses, evaluation) from a profile JSON and a job analysis JSON, optionally rendering the documents to HTML.",
	RunE:  runGenerate,
}

var (
	generateProfileFile  string
	generateAnalysisFile string
	generateAPIKey       string
	generateOutputFile   string
	generateRenderDir    string
	generateTheme        string
)

func init() {
	generateCmd.Flags().StringVar(&generateProfileFile, "profile", "", "Path to user profile JSON (required)")
	generateCmd.Flags().StringVar(&generateAnalysisFile, "analysis", "", "Path to job analysis JSON (required)")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Path to output package JSON (default: stdout)")
	generateCmd.Flags().StringVar(&generateRenderDir, "render", "", "Directory to render HTML documents into")
	generateCmd.Flags().StringVar(&generateTheme, "theme", rendering.ThemeModern, "Document theme (modern, classic, compact)")
	_ = generateCmd.MarkFlagRequired("profile")
	_ = generateCmd.MarkFlagRequired("analysis")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	apiKey := resolveAPIKey(generateAPIKey)
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	var profile types.UserProfile
	if err := readJSONFile(generateProfileFile, &profile); err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	var analysis types.JobAnalysis
	if err := readJSONFile(generateAnalysisFile, &analysis); err != nil {
		return fmt.Errorf("failed to read analysis: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	stopProgress := startProgress("Generating application package")
	pkg, err := gateway.New(client).GenerateIntelligencePackage(ctx, &profile, &analysis)
	stopProgress()
	if err != nil {
		return fmt.Errorf("failed to generate package: %w", err)
	}

	if err := writeJSONOutput(pkg, generateOutputFile); err != nil {
		return err
	}

	if generateRenderDir != "" {
		if err := renderDocuments(ctx, pkg); err != nil {
			return err
		}
	}
	return nil
}

// renderDocuments writes each document's HTML into the render directory.
func renderDocuments(ctx context.Context, pkg *types.IntelligencePackage) error {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := os.MkdirAll(generateRenderDir, 0755); err != nil {
		return fmt.Errorf("failed to create render directory: %w", err)
	}

	bundle, err := renderer.RenderBundle(ctx, generateTheme, pkg)
	if err != nil {
		return fmt.Errorf("failed to render documents: %w", err)
	}

	for doc, html := range bundle.Documents {
		path := filepath.Join(generateRenderDir, string(doc)+".html")
		if err := os.WriteFile(path, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stdout, "Rendered: %s\n", path)
	}
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
