package commands

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one retention sweep",
		Long: `Delete documents older than the configured retention window, keeping
the one currently shown. Intended to be run from cron.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Retention.Sweep(cmd.Context())
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "Field", "Value")
			if res.Skipped {
				table.Append([]string{"skipped", "true"})
				table.Render()
				return nil
			}
			table.Append([]string{"cutoff", res.Cutoff.Format("2006-01-02 15:04:05")})
			table.Append([]string{"protected_id", strconv.FormatInt(res.ProtectedID, 10)})
			table.Append([]string{"candidates", strconv.Itoa(res.Candidates)})
			table.Append([]string{"metadata_deleted", strconv.Itoa(res.MetadataDeleted)})
			table.Append([]string{"files_removed", strconv.Itoa(res.FilesRemoved)})
			table.Append([]string{"files_missing", strconv.Itoa(res.FilesMissing)})
			table.Append([]string{"files_failed", strconv.Itoa(res.FilesFailed)})
			table.Render()
			return nil
		},
	}
}
