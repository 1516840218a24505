package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProject(t *testing.T, planYAML string, clips ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, clip := range clips {
		if err := os.WriteFile(filepath.Join(dir, clip), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "composition.yaml"), []byte(planYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Flag state is package-level; reset what previous tests may have set.
	projectDir, outputJSON = "", false
	previewPlanArg, previewPretty = "", false
	inspectPlanArg, validatePlanArg = "", ""

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPreviewPrintsGraph(t *testing.T) {
	dir := writeProject(t, "main:\n  - main.mp4\n", "main.mp4")

	stdout, _, err := runCommand(t, "--project", dir, "preview")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if !strings.Contains(stdout, "[final_video]") {
		t.Fatalf("expected graph with final label, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "[0:v]") {
		t.Fatalf("expected raw input reference, got:\n%s", stdout)
	}
}

func TestPreviewJSONIncludesInputs(t *testing.T) {
	dir := writeProject(t, "main:\n  - main.mp4\nappend:\n  - outro.mp4\n", "main.mp4", "outro.mp4")

	stdout, _, err := runCommand(t, "--project", dir, "--json", "preview")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}

	var payload struct {
		Graph      string   `json:"graph"`
		VideoLabel string   `json:"video_label"`
		Inputs     []string `json:"inputs"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if payload.VideoLabel != "final_video" {
		t.Fatalf("unexpected video label %q", payload.VideoLabel)
	}
	if len(payload.Inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %v", payload.Inputs)
	}
	if !strings.HasSuffix(payload.Inputs[0], "main.mp4") || !strings.HasSuffix(payload.Inputs[1], "outro.mp4") {
		t.Fatalf("inputs out of order: %v", payload.Inputs)
	}
	if !strings.Contains(payload.Graph, "concat=n=2:v=1:a=1") {
		t.Fatalf("expected concat graph, got %q", payload.Graph)
	}
}

func TestInspectSegmentsFollowIndexOrder(t *testing.T) {
	plan := `
prepend:
  - intro.mp4
main:
  - main.mp4
overlays:
  - path: logo.mov
append:
  - outro.mp4
`
	dir := writeProject(t, plan, "intro.mp4", "main.mp4", "logo.mov", "outro.mp4")

	stdout, _, err := runCommand(t, "--project", dir, "--json", "inspect")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	var rows []struct {
		Index   int    `json:"index"`
		Segment string `json:"segment"`
		Clip    string `json:"clip"`
	}
	if err := json.Unmarshal([]byte(stdout), &rows); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	want := []string{"prepend", "main", "overlay", "append"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, segment := range want {
		if rows[i].Index != i || rows[i].Segment != segment {
			t.Fatalf("row %d = %+v, want segment %q", i, rows[i], segment)
		}
	}
}

func TestInspectRendersTable(t *testing.T) {
	dir := writeProject(t, "main:\n  - main.mp4\n", "main.mp4")

	stdout, _, err := runCommand(t, "--project", dir, "inspect")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"INDEX", "SEGMENT", "main.mp4"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("table missing %q:\n%s", want, stdout)
		}
	}
}

func TestValidateReportsWarnings(t *testing.T) {
	plan := `
main:
  - main.mp4
overlays:
  - path: logo.mov
    opacity: 1.5
`
	dir := writeProject(t, plan, "main.mp4", "logo.mov")

	stdout, stderr, err := runCommand(t, "--project", dir, "validate")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(stdout, "plan ok") {
		t.Fatalf("expected success line, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "warning:") {
		t.Fatalf("expected clamp warning on stderr, got:\n%s", stderr)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	dir := writeProject(t, "main:\n  - main.mp4\n", "main.mp4")
	cfg := "version: 1\noutput:\n  fps: -5\n"
	if err := os.WriteFile(filepath.Join(dir, "vidmix.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCommand(t, "--project", dir, "validate")
	if err == nil || !strings.Contains(err.Error(), "fps") {
		t.Fatalf("expected fps validation error, got %v", err)
	}
}

func TestMissingClipFailsLoad(t *testing.T) {
	dir := writeProject(t, "main:\n  - missing.mp4\n")

	_, _, err := runCommand(t, "--project", dir, "preview")
	if err == nil || !strings.Contains(err.Error(), "missing.mp4") {
		t.Fatalf("expected missing clip error, got %v", err)
	}
}

func TestInitScaffoldsProject(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runCommand(t, "--project", dir, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(stdout, "initialized project") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	for _, name := range []string{"vidmix.yaml", "composition.yaml", "out", "logs"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}

	// Re-running must not clobber an edited plan.
	plan := filepath.Join(dir, "composition.yaml")
	if err := os.WriteFile(plan, []byte("main:\n  - edited.mp4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCommand(t, "--project", dir, "init"); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	data, err := os.ReadFile(plan)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "edited.mp4") {
		t.Fatal("init overwrote an existing plan file")
	}
}
