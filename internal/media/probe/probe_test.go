package probe

import (
	"math"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "r_frame_rate": "24000/1001",
      "disposition": {"default": 1, "forced": 0},
      "tags": {"DURATION": "01:30:00.000000000"}
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 6,
      "duration": "5400.0",
      "disposition": {"default": 1, "forced": 0},
      "tags": {"language": "eng", "title": "Surround"}
    },
    {
      "index": 2,
      "codec_name": "subrip",
      "codec_type": "subtitle",
      "disposition": {"default": 0, "forced": 1},
      "tags": {"language": "jpn"}
    },
    {
      "index": 3,
      "codec_name": "bin_data",
      "codec_type": "data",
      "disposition": {"default": 0, "forced": 0}
    }
  ],
  "format": {
    "filename": "movie.mkv",
    "format_name": "matroska,webm",
    "duration": "5400.02",
    "size": "734003200",
    "bit_rate": "1087573"
  }
}`

func TestParseStreams(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.Streams) != 4 {
		t.Fatalf("expected 4 streams, got %d", len(result.Streams))
	}

	video := result.Streams[0]
	if video.Kind != KindVideo || video.Codec != "h264" {
		t.Fatalf("unexpected video stream: %+v", video)
	}
	if !video.IsDefault || video.IsForced {
		t.Fatalf("unexpected video disposition: %+v", video)
	}
	if math.Abs(video.FrameRate-23.976) > 0.001 {
		t.Fatalf("unexpected frame rate: %v", video.FrameRate)
	}
	if video.Duration != 5400 {
		t.Fatalf("expected DURATION tag parsing, got %v", video.Duration)
	}

	audio := result.Streams[1]
	if audio.Language != "eng" || audio.Title != "Surround" || audio.Channels != 6 {
		t.Fatalf("unexpected audio stream: %+v", audio)
	}

	sub := result.Streams[2]
	if sub.Kind != KindSubtitle || !sub.IsForced {
		t.Fatalf("unexpected subtitle stream: %+v", sub)
	}
	if sub.Language != "jpn" {
		t.Fatalf("unexpected subtitle language: %q", sub.Language)
	}

	if result.Streams[3].Kind != KindData {
		t.Fatalf("expected data kind, got %v", result.Streams[3].Kind)
	}
}

func TestParseFormat(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.Format.FormatName != "matroska,webm" {
		t.Fatalf("unexpected format name: %q", result.Format.FormatName)
	}
	if result.Format.Size != 734003200 {
		t.Fatalf("unexpected size: %d", result.Format.Size)
	}
	if result.DurationSeconds() != 5400.02 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if frames := result.DurationFrames(); frames < 129000 || frames > 130000 {
		t.Fatalf("unexpected frame estimate: %d", frames)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	result, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.Streams) != 0 {
		t.Fatalf("expected no streams, got %d", len(result.Streams))
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected zero duration, got %v", result.DurationSeconds())
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"streams": [`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestCountByKind(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.CountByKind(KindAudio) != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.CountByKind(KindAudio))
	}
	if result.CountByKind(KindUnknown) != 0 {
		t.Fatalf("expected no unknown streams, got %d", result.CountByKind(KindUnknown))
	}
}

func TestCollapseEstimatesDisagreement(t *testing.T) {
	// Within 1% tolerance the first estimate wins.
	if got := collapseEstimates([]float64{100, 100.5}); got != 100 {
		t.Fatalf("expected first estimate, got %v", got)
	}
	// Outside tolerance the average is used.
	if got := collapseEstimates([]float64{100, 200}); got != 150 {
		t.Fatalf("expected average, got %v", got)
	}
}

func TestParseClockForms(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"02:27:57.535000000", 2*3600 + 27*60 + 57.535, true},
		{"00:00:01", 1, true},
		{"90 minutes", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseClock(tc.in)
		if ok != tc.ok {
			t.Fatalf("parseClock(%q) ok=%v want %v", tc.in, ok, tc.ok)
		}
		if ok && math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("parseClock(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}
