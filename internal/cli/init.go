package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vidmix/internal/config"
	"vidmix/internal/paths"
)

const examplePlan = `# vidmix composition plan.
# Paths are relative to this file.
main:
  - main.mp4

# prepend:
#   - intro.mp4
# append:
#   - outro.mp4

# overlays:
#   - path: logo.mov
#     position: top-right
#     width: 25%
#     opacity: 0.8
#     start_time: 5
#     duration: 30
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold a vidmix project in the current directory",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}
	if err := pp.EnsureDirs(); err != nil {
		return err
	}

	cfg := config.Default()
	buf, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := writeIfAbsent(pp.ConfigFile, buf); err != nil {
		return err
	}
	if err := writeIfAbsent(pp.PlanFile, []byte(examplePlan)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "initialized project in %s\n", pp.Root)
	return nil
}

// writeIfAbsent leaves an existing file untouched so re-running init
// never clobbers a configured project.
func writeIfAbsent(path string, contents []byte) error {
	exists, err := paths.FileExists(path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
