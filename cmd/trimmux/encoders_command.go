package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trimmux/internal/encoder"
)

func newEncodersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "encoders",
		Short: "Show which known encoders the local ffmpeg build provides",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			available, err := encoder.Detect(cmd.Context(), cfg.Tools.FFmpeg)
			if err != nil {
				return err
			}
			names := make(map[string]bool, len(available))
			for _, codec := range available {
				names[codec.Name] = true
			}

			rows := make([][]string, 0, len(encoder.Registry))
			for _, codec := range encoder.Registry {
				rows = append(rows, []string{
					codec.Name,
					codec.Family,
					yesNo(codec.Hardware),
					yesNo(names[codec.Name]),
					orDash(codec.PreferredPreset),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Encoder", "Family", "Hardware", "Available", "Preset"},
				rows,
			))

			if len(cfg.Video.EncoderPreference) > 0 {
				chosen, err := encoder.Choose(cfg.Video.EncoderPreference, available)
				if err != nil {
					fmt.Fprintf(out, "Preference %s: %v\n", strings.Join(cfg.Video.EncoderPreference, ", "), err)
					return nil
				}
				fmt.Fprintf(out, "Selected for video: %s\n", chosen.Name)
			}
			return nil
		},
	}
}
