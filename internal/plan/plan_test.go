package plan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidmix/internal/compose"
)

func writePlanFixture(t *testing.T, contents string, clips ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range clips {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture clip: %v", err)
		}
	}
	path := filepath.Join(dir, "composition.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	return path
}

func TestLoadAndBuild(t *testing.T) {
	contents := `
main:
  - main.mp4
prepend:
  - intro.mp4
append:
  - outro.mp4
overlays:
  - path: logo.mp4
    position: top-right
    width: 25%
    opacity: 0.8
    start_time: 2
output:
  fps: 24
`
	path := writePlanFixture(t, contents, "main.mp4", "intro.mp4", "outro.mp4", "logo.mp4")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	b, err := p.Builder(compose.DefaultOptions())
	if err != nil {
		t.Fatalf("Builder error: %v", err)
	}

	inputs := b.Inputs()
	if len(inputs) != 4 {
		t.Fatalf("expected 4 ordered inputs, got %d", len(inputs))
	}
	order := []string{"intro.mp4", "main.mp4", "logo.mp4", "outro.mp4"}
	for i, want := range order {
		if inputs[i].Name() != want {
			t.Fatalf("input %d = %q, want %q (prepend, main, overlay, append)", i, inputs[i].Name(), want)
		}
	}

	if b.OutputOptions().FPS != 24 {
		t.Fatalf("plan output section not merged, fps = %d", b.OutputOptions().FPS)
	}

	graph, err := b.Preview()
	if err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	for _, expected := range []string{
		"concat=n=3:v=1:a=1[final_video][mixed_audio]",
		"tpad=start_duration=2",
		"scale=w=iw*25/100",
		"colorchannelmixer=aa=0.8",
	} {
		if !strings.Contains(graph, expected) {
			t.Fatalf("expected compiled graph to contain %q\ngraph: %s", expected, graph)
		}
	}
}

func TestLoadRejectsEmptyAndClipless(t *testing.T) {
	path := writePlanFixture(t, "\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty plan")
	}

	path = writePlanFixture(t, "overlays:\n  - path: logo.mp4\n", "logo.mp4")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for plan without main/prepend/append clips")
	}
}

func TestFiltersOnlyPlanBypassesGeneration(t *testing.T) {
	contents := "filters:\n  - \"[0:v]negate[final_video]\"\n"
	path := writePlanFixture(t, contents)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	b, err := p.Builder(compose.DefaultOptions())
	if err != nil {
		t.Fatalf("Builder error: %v", err)
	}
	graph, err := b.Preview()
	if err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	if graph != "[0:v]negate[final_video]" {
		t.Fatalf("expected verbatim filter text, got %q", graph)
	}
}

func TestMissingClipIsAnError(t *testing.T) {
	path := writePlanFixture(t, "main:\n  - nope.mp4\n")
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := p.Builder(compose.DefaultOptions()); err == nil {
		t.Fatal("expected error for missing clip file")
	}
}
