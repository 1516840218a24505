package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var inspectPlanArg string

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the input-index assignment for the composition plan",
		Long: "Shows every clip with the input index the compiled graph refers to it by.\n" +
			"The execution engine must receive the raw media in exactly this order.",
		RunE: runInspect,
	}

	cmd.Flags().StringVar(&inspectPlanArg, "plan", "", "Path to composition plan (defaults to composition.yaml)")

	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	proj, err := loadProject(inspectPlanArg)
	if err != nil {
		return err
	}

	// Segment classification follows the index-assignment order:
	// prepend, main, overlay, append.
	type row struct {
		Index   int    `json:"index"`
		Segment string `json:"segment"`
		Clip    string `json:"clip"`
		Format  string `json:"format"`
	}

	inputs := proj.Builder.Inputs()
	p, m, o := len(proj.Plan.Prepend), len(proj.Plan.Main), len(proj.Plan.Overlays)
	rows := make([]row, 0, len(inputs))
	for i, in := range inputs {
		segment := "append"
		switch {
		case i < p:
			segment = "prepend"
		case i < p+m:
			segment = "main"
		case i < p+m+o:
			segment = "overlay"
		}
		rows = append(rows, row{Index: i, Segment: segment, Clip: in.Name(), Format: in.Format})
	}

	if outputJSON {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encode inspect json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"INDEX", "SEGMENT", "CLIP", "FORMAT"})
	for _, r := range rows {
		tw.AppendRow(table.Row{strconv.Itoa(r.Index), r.Segment, r.Clip, r.Format})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
	return nil
}
