package cli

import (
	"vidmix/internal/compose"
	"vidmix/internal/config"
	"vidmix/internal/paths"
	"vidmix/internal/plan"
)

// project bundles everything a command needs from the workspace.
type project struct {
	Paths   paths.ProjectPaths
	Config  config.Config
	Plan    plan.Plan
	Builder *compose.Builder
}

// loadProject resolves paths, loads the config and plan, and assembles
// the composition builder. planFlag overrides the plan location.
func loadProject(planFlag string) (project, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return project{}, err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return project{}, err
	}
	pp = paths.ApplyPlanOverride(pp, cfg.PlanFile)
	pp = paths.ApplyPlanOverride(pp, planFlag)

	p, err := plan.Load(pp.PlanFile)
	if err != nil {
		return project{}, err
	}

	builder, err := p.Builder(cfg.Output)
	if err != nil {
		return project{}, err
	}

	return project{Paths: pp, Config: cfg, Plan: p, Builder: builder}, nil
}
