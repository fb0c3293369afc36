package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"artsync/internal/catalog"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report sidecar coverage and site readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "  Config path: %s\n", ctx.configPath)
			fmt.Fprintf(out, "  API key set: %s\n", yesNo(cfg.HasAPIKey()))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Sidecar coverage", colorize) {
				fmt.Fprintln(out, line)
			}
			rows := make([][]string, 0, 2)
			collections := [][2]string{
				{cfg.Paths.FinishedDir, catalog.Finished},
				{cfg.Paths.SketchbookDir, catalog.Sketchbook},
			}
			for _, col := range collections {
				stats, err := catalog.Coverage(col[0], col[1])
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					col[1],
					strconv.Itoa(stats.Images),
					strconv.Itoa(stats.Captioned),
					strconv.Itoa(stats.Tagged),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Collection", "Images", "Captioned", "Tagged"},
				rows,
				1, 2, 3,
			))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Site pages", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, page := range []string{"index.html", "characters.html", "sketchbook.html"} {
				_, err := os.Stat(filepath.Join(cfg.Paths.SiteDir, page))
				state := "present"
				color := ansiGreen
				if err != nil {
					state = "missing"
					color = ansiYellow
				}
				line := fmt.Sprintf("  %-18s %s", page+":", state)
				if colorize {
					line = color + line + ansiReset
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
