package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trimmux/internal/command"
	"trimmux/internal/selection"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var output string
	var startFlag string
	var endFlag string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the selection outcome and the ffmpeg command without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts, err := planOptionsFromFlags(output, startFlag, endFlag)
			if err != nil {
				return err
			}

			plan, _, err := buildPlan(cmd.Context(), cfg, args[0], opts)
			if err != nil {
				return err
			}
			ffmpegArgs, outputPath, err := command.Build(plan)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(plan.Resolution.Entries))
			for _, entry := range plan.Resolution.Entries {
				rows = append(rows, []string{
					strconv.Itoa(entry.Stream.Index),
					string(entry.Stream.Kind),
					orDash(entry.Stream.Codec),
					orDash(entry.Stream.Language),
					string(entry.Handling),
					matchedRuleLabel(entry),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Type", "Codec", "Lang", "Handling", "Rule"},
				rows,
				0,
			))
			fmt.Fprintf(out, "Output: %s\n\n", outputPath)
			fmt.Fprintln(out, command.Preview(cfg.Tools.FFmpeg, ffmpegArgs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to this path")
	cmd.Flags().StringVar(&startFlag, "start", "", "Trim start (e.g. 90s or 00:01:30)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Trim end (e.g. 30m or 01:30:00)")
	return cmd
}

func planOptionsFromFlags(output, start, end string) (planOptions, error) {
	opts := planOptions{destination: output}
	var err error
	if opts.start, err = parseTimestamp(start); err != nil {
		return planOptions{}, err
	}
	if opts.end, err = parseTimestamp(end); err != nil {
		return planOptions{}, err
	}
	if opts.end > 0 && opts.end <= opts.start {
		return planOptions{}, fmt.Errorf("trim end %s is not after start %s", end, start)
	}
	return opts, nil
}

func matchedRuleLabel(entry selection.Entry) string {
	if entry.MatchedRule < 0 {
		return "fallback"
	}
	return strconv.Itoa(entry.MatchedRule + 1)
}
