package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var validatePlanArg string

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the project config and composition plan",
		Long: "Loads the config and plan, compiles the composition, and reports\n" +
			"configuration errors plus any warnings the compiler would emit.",
		RunE: runValidate,
	}

	cmd.Flags().StringVar(&validatePlanArg, "plan", "", "Path to composition plan (defaults to composition.yaml)")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject(validatePlanArg)
	if err != nil {
		return err
	}

	res, err := proj.Builder.Compile()
	if err != nil {
		return fmt.Errorf("compile composition: %w", err)
	}

	if outputJSON {
		payload := struct {
			Valid      int      `json:"valid"`
			Inputs     int      `json:"inputs"`
			Statements int      `json:"statements"`
			Warnings   []string `json:"warnings,omitempty"`
		}{1, len(res.Inputs), countStatements(res.Graph), res.Warnings}
		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode validate json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	for _, warning := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "plan ok: %d inputs, %d graph statements, %d warnings\n",
		len(res.Inputs), countStatements(res.Graph), len(res.Warnings))
	return nil
}

func countStatements(graph string) int {
	if graph == "" {
		return 0
	}
	n := 1
	for _, r := range graph {
		if r == ';' {
			n++
		}
	}
	return n
}
