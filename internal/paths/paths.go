package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectPaths captures canonical locations for a vidmix project.
type ProjectPaths struct {
	Root       string
	ConfigFile string
	PlanFile   string
	OutputDir  string
	LogsDir    string
}

// Resolve determines the project root using the optional --project flag
// or the current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return ProjectPaths{
		Root:       root,
		ConfigFile: filepath.Join(root, "vidmix.yaml"),
		PlanFile:   filepath.Join(root, "composition.yaml"),
		OutputDir:  filepath.Join(root, "out"),
		LogsDir:    filepath.Join(root, "logs"),
	}, nil
}

// ApplyPlanOverride swaps in a configured plan file location.
func ApplyPlanOverride(pp ProjectPaths, plan string) ProjectPaths {
	if plan == "" {
		return pp
	}
	if filepath.IsAbs(plan) {
		pp.PlanFile = filepath.Clean(plan)
	} else {
		pp.PlanFile = filepath.Join(pp.Root, plan)
	}
	return pp
}

// EnsureDirs creates the output and logs directories.
func (p ProjectPaths) EnsureDirs() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
