package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"vidmix/internal/engine"
	"vidmix/internal/logx"
	"vidmix/internal/tui"
)

var (
	renderPlanArg   string
	renderOutputArg string
	renderNoTUI     bool
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Compile the composition and render it with ffmpeg",
		RunE:  runRender,
	}

	cmd.Flags().StringVar(&renderPlanArg, "plan", "", "Path to composition plan (defaults to composition.yaml)")
	cmd.Flags().StringVarP(&renderOutputArg, "output", "o", "", "Output file (defaults to out/<plan name>.mp4)")
	cmd.Flags().BoolVar(&renderNoTUI, "no-progress", false, "Disable the progress display")

	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject(renderPlanArg)
	if err != nil {
		return err
	}
	if err := proj.Paths.EnsureDirs(); err != nil {
		return err
	}

	logger, closer, err := logx.New(proj.Paths)
	if err != nil {
		return err
	}
	defer closer.Close()

	outputPath := renderOutputArg
	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(proj.Paths.PlanFile), filepath.Ext(proj.Paths.PlanFile))
		outputPath = filepath.Join(proj.Paths.OutputDir, base+".mp4")
	}

	eng := &engine.Engine{BinaryPath: proj.Config.FFmpegPath, Logger: logger}

	if renderNoTUI || !isatty.IsTerminal(os.Stdout.Fd()) {
		return renderPlain(cmd, proj, eng, outputPath)
	}
	return renderWithProgress(cmd, proj, eng, outputPath)
}

func renderPlain(cmd *cobra.Command, proj project, eng *engine.Engine, outputPath string) error {
	res, err := proj.Builder.Compile()
	if err != nil {
		return err
	}
	for _, warning := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}

	job := engine.Job{Result: res, Options: proj.Builder.OutputOptions(), OutputPath: outputPath}
	if err := eng.Run(cmd.Context(), job, io.Discard, cmd.ErrOrStderr()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rendered %s\n", outputPath)
	return nil
}

func renderWithProgress(cmd *cobra.Command, proj project, eng *engine.Engine, outputPath string) error {
	stages := []tui.Stage{
		{Key: "compile", Name: "compile graph"},
		{Key: "render", Name: "render " + filepath.Base(outputPath)},
	}
	model := tui.NewProgressModel("vidmix render", stages)

	err := tui.RunWithWork(cmd.OutOrStdout(), model, func(send func(tea.Msg)) {
		send(tui.StageUpdateMsg{Key: "compile", Status: "compiling"})

		res, err := proj.Builder.Compile()
		if err != nil {
			send(tui.ErrorMsg{Err: err})
			return
		}
		detail := fmt.Sprintf("%d inputs", len(res.Inputs))
		if len(res.Warnings) > 0 {
			detail = fmt.Sprintf("%d inputs, %d warnings", len(res.Inputs), len(res.Warnings))
		}
		send(tui.StageUpdateMsg{Key: "compile", Status: "compiled", Detail: detail})

		send(tui.StageUpdateMsg{Key: "render", Status: "rendering"})
		job := engine.Job{Result: res, Options: proj.Builder.OutputOptions(), OutputPath: outputPath}
		if err := eng.Run(context.Background(), job, io.Discard, io.Discard); err != nil {
			send(tui.ErrorMsg{Err: err})
			return
		}
		send(tui.StageUpdateMsg{Key: "render", Status: "rendered", Detail: outputPath})
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "rendered %s\n", outputPath)
	return nil
}
