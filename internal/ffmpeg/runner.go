package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// Progress captures one ffmpeg progress report.
type Progress struct {
	Frame   int64
	FPS     float64
	OutTime time.Duration
	Speed   string
	Done    bool
}

// Runner executes a prepared ffmpeg argument vector. The runner does not
// retry, queue, or interpret progress beyond parsing; callers own all of
// that.
type Runner interface {
	Run(ctx context.Context, args []string, progress func(Progress)) error
}

// Option configures the CLI runner.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// CLI runs the ffmpeg command-line transcoder.
type CLI struct {
	binary string
}

// NewCLI constructs a runner using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the configured ffmpeg executable.
func (c *CLI) Binary() string { return c.binary }

// Run launches ffmpeg with machine-readable progress on stdout and waits for
// completion. Progress callbacks fire as reports arrive; cancellation of ctx
// kills the process. On a non-zero exit the returned error carries the tail
// of stderr.
func (c *CLI) Run(ctx context.Context, args []string, progress func(Progress)) error {
	if len(args) == 0 {
		return errors.New("ffmpeg run: empty argument vector")
	}

	full := append([]string{"-progress", "pipe:1", "-nostats", "-loglevel", "error"}, args...)
	cmd := commandContext(ctx, c.binary, full...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	var stderr tailBuffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	current := Progress{}
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if update, emit := applyProgressLine(&current, scanner.Text()); emit && progress != nil {
			progress(update)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return fmt.Errorf("read ffmpeg output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		detail := stderr.Tail()
		if detail == "" {
			return fmt.Errorf("ffmpeg failed: %w", err)
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, detail)
	}
	return nil
}

// applyProgressLine folds one key=value report line into the running state.
// ffmpeg flushes a block of keys ending with progress=continue|end; emitting
// on that terminator keeps callbacks to one per report block.
func applyProgressLine(state *Progress, line string) (Progress, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return Progress{}, false
	}
	value = strings.TrimSpace(value)
	switch key {
	case "frame":
		if frame, err := strconv.ParseInt(value, 10, 64); err == nil {
			state.Frame = frame
		}
	case "fps":
		if fps, err := strconv.ParseFloat(value, 64); err == nil {
			state.FPS = fps
		}
	case "out_time_us":
		if us, err := strconv.ParseInt(value, 10, 64); err == nil {
			state.OutTime = time.Duration(us) * time.Microsecond
		}
	case "speed":
		state.Speed = value
	case "progress":
		state.Done = value == "end"
		return *state, true
	}
	return Progress{}, false
}

var _ Runner = (*CLI)(nil)
