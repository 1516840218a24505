package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	previewPlanArg string
	previewPretty  bool
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compile the composition plan and print the filter graph",
		RunE:  runPreview,
	}

	cmd.Flags().StringVar(&previewPlanArg, "plan", "", "Path to composition plan (defaults to composition.yaml)")
	cmd.Flags().BoolVar(&previewPretty, "pretty", false, "Print one graph statement per line")

	return cmd
}

func runPreview(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject(previewPlanArg)
	if err != nil {
		return err
	}

	res, err := proj.Builder.Compile()
	if err != nil {
		return err
	}

	if outputJSON {
		inputs := make([]string, 0, len(res.Inputs))
		for _, in := range res.Inputs {
			inputs = append(inputs, in.Path)
		}
		payload := struct {
			Graph      string   `json:"graph"`
			VideoLabel string   `json:"video_label"`
			AudioLabel string   `json:"audio_label,omitempty"`
			Inputs     []string `json:"inputs"`
			Warnings   []string `json:"warnings,omitempty"`
		}{res.Graph, res.VideoLabel, res.AudioLabel, inputs, res.Warnings}

		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode preview json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	for _, warning := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
	}

	graph := res.Graph
	if previewPretty {
		graph = strings.ReplaceAll(graph, ";", ";\n")
	}
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}
