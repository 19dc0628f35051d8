package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trimmux/internal/media/probe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file's streams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := probe.Inspect(cmd.Context(), cfg.Tools.FFprobe, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, json.RawMessage(result.RawJSON()))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", result.Format.Filename, result.Format.FormatName)
			if result.Format.Duration > 0 {
				fmt.Fprintf(out, "Duration: %.2fs", result.Format.Duration)
				if frames := result.DurationFrames(); frames > 0 {
					fmt.Fprintf(out, "  (~%d frames)", frames)
				}
				fmt.Fprintln(out)
			}

			rows := make([][]string, 0, len(result.Streams))
			for _, stream := range result.Streams {
				rows = append(rows, []string{
					strconv.Itoa(stream.Index),
					string(stream.Kind),
					orDash(stream.Codec),
					orDash(stream.Language),
					orDash(formatStreamDetail(stream)),
					yesNo(stream.IsDefault),
					orDash(stream.Title),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Type", "Codec", "Lang", "Detail", "Default", "Title"},
				rows,
				0,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw ffprobe document")
	return cmd
}
