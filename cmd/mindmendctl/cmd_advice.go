package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yanqian/mindmend/internal/domain/advice"
	"github.com/yanqian/mindmend/internal/infra/config"
	"github.com/yanqian/mindmend/internal/infra/llm/gemini"
	"github.com/yanqian/mindmend/internal/infra/llm/openrouter"
	"github.com/yanqian/mindmend/internal/infra/llm/router"
	"github.com/yanqian/mindmend/internal/infra/llm/tokenizer"
)

var (
	adviceMood  string
	adviceNotes string
	adviceJSON  bool
)

// newRequester is swapped in tests.
var newRequester = buildRequester

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Run one advice sweep and print every attempt",
	Example: `  mindmendctl advice --mood Anxious --notes "can't sleep"
  mindmendctl advice --mood Bored --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		requester, err := newRequester(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		outcome := requester.Consult(cmd.Context(), advice.Request{Mood: adviceMood, Notes: adviceNotes})
		return printOutcome(cmd.OutOrStdout(), outcome, adviceJSON)
	},
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List the configured model candidates in the order they are tried",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for i, model := range cfg.Advice.Candidates {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i+1, model)
		}
		return nil
	},
}

func init() {
	adviceCmd.Flags().StringVar(&adviceMood, "mood", "", "mood label to ask about")
	adviceCmd.Flags().StringVar(&adviceNotes, "notes", "", "optional free-text notes")
	adviceCmd.Flags().BoolVar(&adviceJSON, "json", false, "print the full outcome as JSON")
	_ = adviceCmd.MarkFlagRequired("mood")
}

func buildRequester(ctx context.Context, cfg *config.Config, logger *slog.Logger) (advice.Requester, error) {
	primary := openrouter.NewClient(openrouter.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Referer: cfg.LLM.Referer,
		Title:   cfg.LLM.Title,
		Timeout: cfg.LLM.Timeout,
	})
	direct, err := gemini.NewClient(ctx, cfg.LLM.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	return advice.NewService(advice.Config{
		Candidates:    cfg.Advice.Candidates,
		SystemPrompt:  cfg.Advice.SystemPrompt,
		Temperature:   cfg.LLM.Temperature,
		MaxNoteTokens: cfg.Advice.MaxNoteTokens,
	}, router.New(primary, direct), tokenizer.NewTiktoken(cfg.Advice.Encoding, logger), logger), nil
}

func printOutcome(w io.Writer, outcome advice.Outcome, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	}
	if outcome.Skipped != advice.SkipNone {
		_, err := fmt.Fprintf(w, "skipped: %s\n", outcome.Skipped)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tOUTCOME\tSTATUS\tLATENCY\tREASON")
	for _, a := range outcome.Attempts {
		status := "-"
		if a.StatusCode != 0 {
			status = fmt.Sprint(a.StatusCode)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dms\t%s\n", a.Model, a.Outcome, status, a.LatencyMs, a.Reason)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if usage := outcome.Usage(); !usage.IsZero() {
		fmt.Fprintf(w, "tokens: prompt=%d completion=%d total=%d\n", usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}
	if !outcome.OK {
		_, err := fmt.Fprintln(w, "\nno advice available")
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", outcome.Advice)
	return err
}
