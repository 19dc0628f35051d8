package encoder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Detect runs `ffmpeg -encoders` and returns the registry codecs the local
// build exposes, in registry order. Availability here means the encoder is
// compiled in; hardware encoders can still fail at runtime when no device is
// present, which stays the transcoder's problem.
func Detect(ctx context.Context, binary string) ([]Codec, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	cmd := commandContext(ctx, binary, "-hide_banner", "-encoders")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("list encoders: %w", err)
	}

	return parseEncoderList(string(output)), nil
}

// parseEncoderList extracts known encoder names from ffmpeg -encoders output.
// Lines look like " V....D libx265   libx265 H.265 / HEVC (codec hevc)".
func parseEncoderList(output string) []Codec {
	names := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		// The first field is the capability flag block (e.g. V....D).
		if !strings.ContainsAny(fields[0], "VAS") {
			continue
		}
		names[strings.ToLower(fields[1])] = struct{}{}
	}

	var available []Codec
	for _, codec := range Registry {
		if _, ok := names[codec.Name]; ok {
			available = append(available, codec)
		}
	}
	return available
}

// Choose picks the first preferred encoder name present in the available
// set. An empty preference list falls back to libx265 when available, then
// to the first available registry codec.
func Choose(preference []string, available []Codec) (Codec, error) {
	if len(available) == 0 {
		return Codec{}, errors.New("no supported encoder available")
	}

	index := make(map[string]Codec, len(available))
	for _, codec := range available {
		index[codec.Name] = codec
	}

	for _, name := range preference {
		if codec, ok := index[strings.ToLower(strings.TrimSpace(name))]; ok {
			return codec, nil
		}
	}

	if len(preference) > 0 {
		return Codec{}, fmt.Errorf("no preferred encoder available (wanted one of %s)", strings.Join(preference, ", "))
	}

	if codec, ok := index[libx265.Name]; ok {
		return codec, nil
	}
	return available[0], nil
}
