package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritaslabs/veritas/internal/jobs"
	"github.com/veritaslabs/veritas/internal/model"
	"github.com/veritaslabs/veritas/internal/pipeline"
)

var (
	verifyAsURL    bool
	verifyTimeout  time.Duration
	verifyOut      string
	verifyProvider string
	verifyModel    string
	views          int64
	likes          int64
	shares         int64
	comments       int64
)

// verifyCmd represents the one-shot verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <text|url>",
	Short: "Verify claims in a piece of content",
	Long: `Verify runs the full verification pipeline on one submission and
prints the result as JSON.

Example:
  veritas verify "5G towers cause COVID-19"
  veritas verify --url https://example.com/article
  veritas verify "BREAKING: miracle cure found" --views 100000 --shares 5000`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().BoolVar(&verifyAsURL, "url", false, "treat the argument as a URL to fetch")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 5*time.Minute, "overall verification timeout")
	verifyCmd.Flags().StringVar(&verifyOut, "json", "", "write result JSON to a file instead of stdout")
	verifyCmd.Flags().StringVar(&verifyProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	verifyCmd.Flags().StringVar(&verifyModel, "llm-model", "", "LLM model name")

	verifyCmd.Flags().Int64Var(&views, "views", 0, "view count of the content")
	verifyCmd.Flags().Int64Var(&likes, "likes", 0, "like count of the content")
	verifyCmd.Flags().Int64Var(&shares, "shares", 0, "share count of the content")
	verifyCmd.Flags().Int64Var(&comments, "comments", 0, "comment count of the content")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if verifyProvider != "" {
		cfg.LLM.Provider = verifyProvider
	}
	if verifyModel != "" {
		cfg.LLM.Model = verifyModel
	}

	contentType := model.ContentText
	if verifyAsURL {
		contentType = model.ContentURL
	}
	sub := model.Submission{
		Content:     args[0],
		ContentType: contentType,
		Engagement:  model.Engagement{Views: views, Likes: likes, Shares: shares, Comments: comments},
	}

	registry := jobs.NewRegistry(cfg.Jobs)
	p, err := pipeline.NewPipeline(cfg, registry)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying %s submission...\n", contentType)
	}

	job, err := p.VerifyContent(ctx, sub)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if verbose {
		for _, r := range job.Results {
			fmt.Fprintf(os.Stderr, "%s: %s (confidence %d, risk %s)\n",
				r.Claim.ID, r.Label, r.Confidence, r.RiskLevel)
		}
		fmt.Fprintln(os.Stderr)
	}

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if verifyOut != "" {
		if err := os.WriteFile(verifyOut, data, 0644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		fmt.Printf("Result written to %s\n", verifyOut)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
