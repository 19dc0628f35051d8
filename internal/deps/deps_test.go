package deps

import "testing"

func TestCheckBinariesFindsShell(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "Shell", Command: "sh"}})
	if len(statuses) != 1 {
		t.Fatalf("expected one status, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("sh should resolve: %+v", statuses[0])
	}
	if statuses[0].Command == "sh" {
		t.Fatalf("expected resolved path, got %q", statuses[0].Command)
	}
}

func TestCheckBinariesMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Ghost", Command: "definitely-not-a-real-binary-470"},
		{Name: "Unset", Command: "  "},
	})
	for _, status := range statuses {
		if status.Available {
			t.Fatalf("expected unavailable: %+v", status)
		}
		if status.Detail == "" {
			t.Fatalf("expected detail: %+v", status)
		}
	}
}

func TestAllRequired(t *testing.T) {
	if AllRequired([]Status{{Available: false, Optional: false}}) {
		t.Fatal("missing required binary should fail")
	}
	if !AllRequired([]Status{{Available: false, Optional: true}, {Available: true}}) {
		t.Fatal("missing optional binary should pass")
	}
}

func TestDefaults(t *testing.T) {
	reqs := Defaults("ffmpeg", "ffprobe")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	for _, req := range reqs {
		if req.Optional {
			t.Fatalf("tool %s should be required", req.Name)
		}
	}
}
