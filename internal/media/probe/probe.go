package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the broad category of a stream.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
	KindData     Kind = "data"
	KindUnknown  Kind = "unknown"
)

// Stream describes one elementary stream discovered in a media container.
// Instances are immutable snapshots of a single probe run.
type Stream struct {
	Index     int
	Kind      Kind
	Codec     string
	Language  string
	Title     string
	Duration  float64
	FrameRate float64
	Channels  int
	Width     int
	Height    int
	IsDefault bool
	IsForced  bool
}

// Result holds every stream of a probed file plus container metadata.
type Result struct {
	Streams  []Stream
	Format   Format
	raw      []byte
	filename string
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
	Tags       map[string]string
}

// Matroska stores per-stream durations as HH:MM:SS.fractional tags.
var clockRe = regexp.MustCompile(`^(\d+):(\d+):(\d+(?:\.\d+)?)$`)

// Inspect executes ffprobe against the provided path and decodes the JSON output.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("probe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("probe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	result, err := Parse(output)
	if err != nil {
		return Result{}, err
	}
	result.filename = path
	return result, nil
}

// Parse decodes raw ffprobe JSON into a Result.
func Parse(payload []byte) (Result, error) {
	var doc struct {
		Streams []struct {
			Index       int    `json:"index"`
			CodecName   string `json:"codec_name"`
			CodecType   string `json:"codec_type"`
			Duration    string `json:"duration"`
			RFrameRate  string `json:"r_frame_rate"`
			Channels    int    `json:"channels"`
			Width       int    `json:"width"`
			Height      int    `json:"height"`
			Disposition struct {
				Default int `json:"default"`
				Forced  int `json:"forced"`
			} `json:"disposition"`
			Tags map[string]string `json:"tags"`
		} `json:"streams"`
		Format struct {
			Filename   string            `json:"filename"`
			FormatName string            `json:"format_name"`
			Duration   string            `json:"duration"`
			Size       string            `json:"size"`
			BitRate    string            `json:"bit_rate"`
			Tags       map[string]string `json:"tags"`
		} `json:"format"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Result{}, fmt.Errorf("probe parse: %w", err)
	}

	result := Result{raw: append([]byte(nil), payload...)}
	result.Format = Format{
		Filename:   doc.Format.Filename,
		FormatName: doc.Format.FormatName,
		Duration:   positiveFloat(doc.Format.Duration),
		Size:       positiveInt(doc.Format.Size),
		BitRate:    positiveInt(doc.Format.BitRate),
		Tags:       doc.Format.Tags,
	}

	for _, raw := range doc.Streams {
		stream := Stream{
			Index:     raw.Index,
			Kind:      kindOf(raw.CodecType),
			Codec:     strings.TrimSpace(raw.CodecName),
			Language:  tagValue(raw.Tags, "language"),
			Title:     tagValue(raw.Tags, "title"),
			FrameRate: parseFrameRate(raw.RFrameRate),
			Channels:  raw.Channels,
			Width:     raw.Width,
			Height:    raw.Height,
			IsDefault: raw.Disposition.Default != 0,
			IsForced:  raw.Disposition.Forced != 0,
		}
		stream.Duration = streamDuration(raw.Duration, raw.Tags)
		result.Streams = append(result.Streams, stream)
	}

	return result, nil
}

// RawJSON returns the raw ffprobe payload for diagnostics.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// CountByKind returns the number of streams of the given kind.
func (r Result) CountByKind(kind Kind) int {
	count := 0
	for _, stream := range r.Streams {
		if stream.Kind == kind {
			count++
		}
	}
	return count
}

// DurationSeconds estimates the container duration. It prefers the format
// duration and falls back to averaging per-stream durations; estimates that
// disagree by more than 1% are averaged rather than trusted individually.
func (r Result) DurationSeconds() float64 {
	if r.Format.Duration > 0 {
		return r.Format.Duration
	}
	var durations []float64
	for _, stream := range r.Streams {
		if stream.Duration > 0 {
			durations = append(durations, stream.Duration)
		}
	}
	return collapseEstimates(durations)
}

// FrameRate estimates the dominant video frame rate, or 0 when no video
// stream reports one.
func (r Result) FrameRate() float64 {
	var rates []float64
	for _, stream := range r.Streams {
		if stream.Kind == KindVideo && stream.FrameRate > 0 {
			rates = append(rates, stream.FrameRate)
		}
	}
	return collapseEstimates(rates)
}

// DurationFrames estimates total video frames from duration and frame rate.
func (r Result) DurationFrames() int64 {
	duration := r.DurationSeconds()
	rate := r.FrameRate()
	if duration <= 0 || rate <= 0 {
		return 0
	}
	return int64(duration * rate)
}

const estimateTolerance = 0.01

func collapseEstimates(values []float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	minVal, maxVal, sum := values[0], values[0], 0.0
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
		sum += v
	}
	if maxVal-minVal > maxVal*estimateTolerance {
		return sum / float64(len(values))
	}
	return values[0]
}

func kindOf(codecType string) Kind {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "subtitle":
		return KindSubtitle
	case "data", "attachment":
		return KindData
	default:
		return KindUnknown
	}
}

func tagValue(tags map[string]string, key string) string {
	if tags == nil {
		return ""
	}
	if value, ok := tags[key]; ok {
		return strings.TrimSpace(value)
	}
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func streamDuration(field string, tags map[string]string) float64 {
	if clock := tagValue(tags, "DURATION"); clock != "" {
		if secs, ok := parseClock(clock); ok {
			return secs
		}
	}
	return positiveFloat(field)
}

func parseClock(value string) (float64, bool) {
	match := clockRe.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, err := strconv.ParseFloat(match[3], 64)
	if err != nil {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

func parseFrameRate(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if dividend, divisor, ok := strings.Cut(cleaned, "/"); ok {
		num, err1 := strconv.ParseFloat(dividend, 64)
		den, err2 := strconv.ParseFloat(divisor, 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0
		}
		return num / den
	}
	if rate, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return rate
	}
	return 0
}

func positiveFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 || math.IsNaN(parsed) {
		return 0
	}
	return parsed
}

func positiveInt(value string) int64 {
	return int64(positiveFloat(value))
}
