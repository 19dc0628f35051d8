package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"trimmux/internal/command"
	"trimmux/internal/ffmpeg"
	"trimmux/internal/history"
	"trimmux/internal/logging"
	"trimmux/internal/workspace"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var output string
	var startFlag string
	var endFlag string
	var title string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Transcode a file with the configured stream selection",
		Long: `Probe the input, apply the configured selection rules, and run ffmpeg.

Without --output and without a configured destination_dir the source file is
replaced in place and the original kept as a numbered .bakN sibling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}

			opts, err := planOptionsFromFlags(output, startFlag, endFlag)
			if err != nil {
				return err
			}
			if title != "" {
				opts.metadata = map[string]string{"title": title}
			}

			plan, result, err := buildPlan(cmd.Context(), cfg, args[0], opts)
			if err != nil {
				return err
			}
			ffmpegArgs, outputPath, err := command.Build(plan)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), command.Preview(cfg.Tools.FFmpeg, ffmpegArgs))
				return nil
			}

			jobID := uuid.NewString()
			kept := plan.Resolution.Kept()
			logger.Info("starting transcode",
				logging.String("job_id", jobID),
				logging.String("input", plan.Input),
				logging.String("output", outputPath),
				logging.Int("streams_kept", len(kept)),
				logging.Int("streams_dropped", len(plan.Resolution.Dropped())),
				logging.String("encoder", plan.Encoder.Name),
			)

			totalFrames := result.DurationFrames()
			progress := newProgressPrinter(cmd.ErrOrStderr(), totalFrames)

			runner := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.Tools.FFmpeg))
			started := time.Now()
			runErr := runner.Run(cmd.Context(), ffmpegArgs, progress.update)
			progress.finish()
			elapsed := time.Since(started)

			job := history.Job{
				ID:       jobID,
				Source:   plan.Input,
				Output:   outputPath,
				Encoder:  plan.Encoder.Name,
				Args:     ffmpegArgs,
				Status:   history.StatusCompleted,
				Duration: elapsed,
			}
			if runErr != nil {
				job.Status = history.StatusFailed
				job.Detail = runErr.Error()
			}

			if store, storeErr := history.Open(cfg.Output.HistoryDB); storeErr != nil {
				logger.Warn("history unavailable", logging.Error(storeErr))
			} else {
				if _, recordErr := store.Record(cmd.Context(), job); recordErr != nil {
					logger.Warn("record job", logging.Error(recordErr))
				}
				_ = store.Close()
			}

			if runErr != nil {
				// ffmpeg leaves partial output behind on failure.
				_ = os.Remove(outputPath)
				return runErr
			}

			if opts.destination == "" && cfg.Output.DestinationDir == "" {
				backup, err := workspace.Commit(plan.Input, outputPath)
				if err != nil {
					return fmt.Errorf("replace %s: %w", plan.Input, err)
				}
				logger.Info("replaced source",
					logging.String("file", plan.Input),
					logging.String("backup", backup),
					logging.Duration("elapsed", elapsed),
				)
				fmt.Fprintf(cmd.OutOrStdout(), "Replaced %s (backup at %s)\n", plan.Input, backup)
				return nil
			}

			logger.Info("transcode complete",
				logging.String("output", outputPath),
				logging.Duration("elapsed", elapsed),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to this path instead of replacing the source")
	cmd.Flags().StringVar(&startFlag, "start", "", "Trim start (e.g. 90s or 00:01:30)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Trim end (e.g. 30m or 01:30:00)")
	cmd.Flags().StringVar(&title, "title", "", "Set the container title tag")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the ffmpeg command and exit")
	return cmd
}

type progressPrinter struct {
	out         *os.File
	interactive bool
	totalFrames int64
	wrote       bool
}

func newProgressPrinter(w io.Writer, totalFrames int64) *progressPrinter {
	p := &progressPrinter{totalFrames: totalFrames}
	if file, ok := w.(*os.File); ok {
		p.out = file
		p.interactive = isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}
	return p
}

func (p *progressPrinter) update(pr ffmpeg.Progress) {
	if !p.interactive || pr.Done {
		return
	}
	line := fmt.Sprintf("frame=%d fps=%.1f time=%s speed=%s", pr.Frame, pr.FPS, pr.OutTime.Round(time.Second), pr.Speed)
	if p.totalFrames > 0 && pr.Frame > 0 {
		percent := float64(pr.Frame) / float64(p.totalFrames) * 100
		if percent > 100 {
			percent = 100
		}
		line = fmt.Sprintf("%5.1f%%  %s", percent, line)
	}
	fmt.Fprintf(p.out, "\r\x1b[K%s", line)
	p.wrote = true
}

func (p *progressPrinter) finish() {
	if p.wrote {
		fmt.Fprintln(p.out)
	}
}

