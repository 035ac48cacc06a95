package main

import (
	"fmt"
	"os"
	"path/filepath"

	timesheetEngine "github.com/careroster/roster-backend/internal/service/timesheet"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func addRosterFlags(cmd *cobra.Command) {
	cmd.Flags().String("sheet", "", "worksheet to read from an xlsx roster (default: first sheet)")
	cmd.Flags().String("start", "", "report start date, YYYY-MM-DD (overrides the file)")
	cmd.Flags().String("kind", "", "report kind: standard, social_services or nexgenus")
}

func rosterFromFlags(cmd *cobra.Command, path string) (roster, error) {
	sheet, _ := cmd.Flags().GetString("sheet")
	start, _ := cmd.Flags().GetString("start")
	kind, _ := cmd.Flags().GetString("kind")
	return loadRoster(path, sheet, start, kind)
}

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <roster>",
		Short: "Derive a report and print it as YAML",
		Long:  `Groups the roster by employee, resolves sessions and adds call-out allowances, then prints the report with its grand total.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rosterFromFlags(cmd, args[0])
			if err != nil {
				return err
			}

			groups := r.derive()
			out := reportFile{
				Kind:          r.kind,
				StartDate:     r.start.Format(dateLayout),
				DateHeaders:   r.headers,
				ProcessedData: groups,
				GrandTotal:    timesheetEngine.GrandTotal(groups).String(),
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(out)
		},
	}
	addRosterFlags(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <roster>",
		Short: "Derive a report and write it as an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rosterFromFlags(cmd, args[0])
			if err != nil {
				return err
			}

			file, err := timesheetEngine.RenderReport(r.kind, "", r.start.Format(dateLayout), r.derive(), r.headers)
			if err != nil {
				return err
			}

			dir, _ := cmd.Flags().GetString("out-dir")
			path := filepath.Join(dir, file.FileName)
			if err := os.WriteFile(path, file.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	addRosterFlags(cmd)
	cmd.Flags().String("out-dir", ".", "directory to write the workbook into")
	return cmd
}

func newFlattenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flatten <report>",
		Short: "Turn a processed report back into roster rows",
		Long: `Reads a report printed by "process" and writes one roster row per job,
with the employee name in every worked day cell. Hours per cell and derived
sessions do not survive the round trip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := loadReport(args[0])
			if err != nil {
				return err
			}

			out := rosterFile{
				Kind:      report.Kind,
				StartDate: report.StartDate,
				NumDays:   len(report.DateHeaders),
				Rows:      timesheetEngine.UngroupEmployees(report.ProcessedData),
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(out)
		},
	}
}
