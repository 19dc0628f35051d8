package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"trimmux/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check configuration and external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintf(out, "Config:  %s", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprint(out, " (missing, defaults in use)")
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "History: %s\n\n", cfg.Output.HistoryDB)

			statuses := deps.CheckBinaries(deps.Defaults(cfg.Tools.FFmpeg, cfg.Tools.FFprobe))
			for _, status := range statuses {
				kind, message := statusOK, status.Detail
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					}
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}

			if !deps.AllRequired(statuses) {
				return fmt.Errorf("required tools missing")
			}
			return nil
		},
	}
}

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := "[" + statusKindLabel(kind) + "]"
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("  %-10s %s", label+":", statusText)
	if colorize {
		return statusKindColor(kind) + base + ansiReset
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "OK"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiGreen
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
