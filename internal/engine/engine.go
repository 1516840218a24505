// Package engine runs a compiled composition through the external
// video-processing binary. It consumes the compiler's output contract
// (graph text, final labels, ordered inputs) without revalidating it;
// the binary is the authoritative judge of the graph.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"vidmix/internal/compose"
)

// Engine executes compiled compositions with ffmpeg.
type Engine struct {
	// BinaryPath overrides PATH lookup when set.
	BinaryPath string
	Logger     *log.Logger
}

// Job describes one execution request.
type Job struct {
	// ID tags log lines for this run; assigned when empty.
	ID         string
	Result     compose.Result
	Options    compose.Options
	OutputPath string
}

// BuildArgs assembles the ffmpeg argument list for a job. Inputs are
// listed in exactly the compiler's index order; reordering them would
// silently rewire the graph's input references.
func BuildArgs(job Job) ([]string, error) {
	if strings.TrimSpace(job.Result.Graph) == "" {
		return nil, errors.New("compiled graph is empty")
	}
	if strings.TrimSpace(job.OutputPath) == "" {
		return nil, errors.New("output path is empty")
	}

	args := []string{"-hide_banner", "-y"}

	for _, input := range job.Result.Inputs {
		if input == nil || strings.TrimSpace(input.Path) == "" {
			return nil, errors.New("composition references an input with no path")
		}
		args = append(args, "-i", input.Path)
	}

	args = append(args, "-filter_complex", job.Result.Graph)

	args = append(args, "-map", mapTarget(job.Result.VideoLabel))
	if job.Result.AudioLabel != "" {
		args = append(args, "-map", mapTarget(job.Result.AudioLabel))
	}

	opts := job.Options
	if codec := strings.TrimSpace(opts.Codec); codec != "" {
		args = append(args, "-c:v", codec)
	}
	if bitrate := strings.TrimSpace(opts.Bitrate); bitrate != "" {
		args = append(args, "-b:v", bitrate)
	}
	if opts.FPS > 0 {
		args = append(args, "-r", strconv.Itoa(opts.FPS))
	}
	if format := strings.TrimSpace(opts.Format); format != "" {
		args = append(args, "-f", format)
	}

	args = append(args, job.OutputPath)
	return args, nil
}

// mapTarget renders a -map value: statement outputs need brackets, raw
// stream references (like 0:a) do not.
func mapTarget(label string) string {
	if strings.ContainsRune(label, ':') {
		return label
	}
	return "[" + label + "]"
}

// Run executes the job, streaming engine output to the given writers.
func (e *Engine) Run(ctx context.Context, job Job, stdout, stderr io.Writer) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	binary, err := e.lookup()
	if err != nil {
		return err
	}

	args, err := BuildArgs(job)
	if err != nil {
		return err
	}

	if e.Logger != nil {
		e.Logger.Printf("engine job %s: %s %s", job.ID, binary, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if stdout != nil {
		cmd.Stdout = stdout
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("engine job %s (%s): %w", job.ID, filepath.Base(job.OutputPath), err)
	}

	if e.Logger != nil {
		e.Logger.Printf("engine job %s: wrote %s", job.ID, job.OutputPath)
	}
	return nil
}

func (e *Engine) lookup() (string, error) {
	if strings.TrimSpace(e.BinaryPath) != "" {
		return e.BinaryPath, nil
	}
	binary, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("locate ffmpeg: %w", err)
	}
	return binary, nil
}
