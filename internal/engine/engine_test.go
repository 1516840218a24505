package engine

import (
	"strings"
	"testing"

	"vidmix/internal/asset"
	"vidmix/internal/compose"
)

func testResult() compose.Result {
	return compose.Result{
		Graph:      "[0:v]format=pix_fmts=yuv420p[final_video]",
		VideoLabel: "final_video",
		AudioLabel: "0:a",
		Inputs: []*asset.Video{
			{Path: "/media/intro.mp4"},
			{Path: "/media/main.mp4"},
		},
	}
}

func TestBuildArgsInputOrderMatchesCompilerIndices(t *testing.T) {
	args, err := BuildArgs(Job{
		Result:     testResult(),
		Options:    compose.DefaultOptions(),
		OutputPath: "/tmp/out.mp4",
	})
	if err != nil {
		t.Fatalf("BuildArgs error: %v", err)
	}

	joined := strings.Join(args, " ")
	first := strings.Index(joined, "-i /media/intro.mp4")
	second := strings.Index(joined, "-i /media/main.mp4")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("inputs out of compiler order: %s", joined)
	}

	pairs := [][]string{
		{"-filter_complex", "[0:v]format=pix_fmts=yuv420p[final_video]"},
		{"-map", "[final_video]"},
		{"-map", "0:a"},
		{"-c:v", "libx264"},
		{"-r", "30"},
		{"-f", "mp4"},
	}
	for _, pair := range pairs {
		found := false
		for i := 0; i < len(args)-1; i++ {
			if args[i] == pair[0] && args[i+1] == pair[1] {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected args to include %q %q\nargs: %#v", pair[0], pair[1], args)
		}
	}
	if args[len(args)-1] != "/tmp/out.mp4" {
		t.Fatalf("output path must come last, got %q", args[len(args)-1])
	}
}

func TestBuildArgsOmitsAudioMapWhenLabelEmpty(t *testing.T) {
	res := testResult()
	res.AudioLabel = ""
	args, err := BuildArgs(Job{Result: res, Options: compose.DefaultOptions(), OutputPath: "/tmp/out.mp4"})
	if err != nil {
		t.Fatalf("BuildArgs error: %v", err)
	}
	for i, arg := range args {
		if arg == "-map" && i+1 < len(args) && strings.Contains(args[i+1], ":a") {
			t.Fatalf("unexpected audio map in args %#v", args)
		}
	}
}

func TestBuildArgsValidatesJob(t *testing.T) {
	if _, err := BuildArgs(Job{Options: compose.DefaultOptions(), OutputPath: "/tmp/out.mp4"}); err == nil {
		t.Fatal("expected error for empty graph")
	}

	res := testResult()
	if _, err := BuildArgs(Job{Result: res, Options: compose.DefaultOptions()}); err == nil {
		t.Fatal("expected error for empty output path")
	}

	res.Inputs = append(res.Inputs, &asset.Video{})
	if _, err := BuildArgs(Job{Result: res, Options: compose.DefaultOptions(), OutputPath: "/tmp/out.mp4"}); err == nil {
		t.Fatal("expected error for input without a path")
	}
}
