package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"artsync/internal/assembler"
	"artsync/internal/captioner"
	"artsync/internal/config"
	"artsync/internal/pipeline"
	"artsync/internal/tagger"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var budgetFlag int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: caption, tag, then build the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cfg, err := newRunner(ctx)
			if err != nil {
				return err
			}
			if budgetFlag > 0 {
				cfg.Run.Budget = budgetFlag
			}

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(report.Captions)+len(report.Tags))
			for _, s := range report.Captions {
				rows = append(rows, captionRow(s))
			}
			for _, s := range report.Tags {
				rows = append(rows, tagRow(s))
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Stage", "Collection", "Pending", "Processed", "Failed"},
				rows,
				2, 3, 4,
			))
			fmt.Fprintf(out, "Budget remaining: %d\n", report.BudgetRemaining)
			printAssembly(cmd, report.Assembly)
			return nil
		},
	}

	cmd.Flags().IntVar(&budgetFlag, "budget", 0, "Model calls allowed for this run (caption and tag combined)")
	return cmd
}

func newCaptionCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "caption",
		Short: "Caption images that have no caption sidecar yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner(ctx)
			if err != nil {
				return err
			}
			summaries, err := runner.Caption(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, captionRow(s))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Stage", "Collection", "Pending", "Processed", "Failed"},
				rows,
				2, 3, 4,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum captions to generate (default from config)")
	return cmd
}

func newTagCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Generate metadata sidecars for captioned images",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner(ctx)
			if err != nil {
				return err
			}
			summaries, err := runner.Tag(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, tagRow(s))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Stage", "Collection", "Pending", "Processed", "Failed"},
				rows,
				2, 3, 4,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum images to tag (default from config)")
	return cmd
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Assemble the site from existing images and sidecars",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := newRunner(ctx)
			if err != nil {
				return err
			}
			summary, err := runner.Build(cmd.Context())
			if err != nil {
				return err
			}
			printAssembly(cmd, summary)
			return nil
		},
	}
}

func newRunner(ctx *commandContext) (*pipeline.Runner, *config.Config, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	return pipeline.New(cfg, logger), cfg, nil
}

func captionRow(s captioner.Summary) []string {
	return []string{"caption", s.Collection, strconv.Itoa(s.Pending), strconv.Itoa(s.Processed), strconv.Itoa(s.Failed)}
}

func tagRow(s tagger.Summary) []string {
	return []string{"tag", s.Collection, strconv.Itoa(s.Pending), strconv.Itoa(s.Processed), strconv.Itoa(s.Failed)}
}

func printAssembly(cmd *cobra.Command, summary assembler.Summary) {
	fmt.Fprintf(cmd.OutOrStdout(),
		"Site assembled: %d finished and %d sketchbook images mirrored, %d pages updated, %d skipped\n",
		summary.FinishedCopied, summary.SketchbookCopied, summary.PagesUpdated, summary.PagesSkipped)
}
