package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/contribplot/pkg/report"
)

const defaultTemplateDir = "templates/plot"

// NewTemplatesCommand creates the command that writes the bundled report
// templates to disk for customisation.
func NewTemplatesCommand() *cobra.Command {
	var (
		force   bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "templates [dir]",
		Short: "Write the default report templates",
		Long:  "Write index.tpl.html and tabs.tpl.html into dir (default " + defaultTemplateDir + ").",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := defaultTemplateDir
			if len(args) > 0 {
				dir = args[0]
			}

			written, err := report.WriteDefaultTemplates(dir, force)
			if err != nil {
				return err
			}

			status := newStatusPrinter(cmd.OutOrStdout(), noColor)
			for _, path := range written {
				status.Done("template", path)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing templates")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
