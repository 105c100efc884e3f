package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kundenstopper/internal/service"
)

func newDocumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Inspect the document library",
	}
	cmd.AddCommand(newDocumentsListCmd())
	return cmd
}

func newDocumentsListCmd() *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			res, err := a.Documents.List(ctx, page, perPage)
			if err != nil {
				return err
			}
			settings, err := a.Settings.Get(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Total == 0 {
				fmt.Fprintln(out, "No documents uploaded.")
				return nil
			}

			table := newTable(out, "ID", "Name", "Stored As", "Size", "Uploaded", "Shown")
			for _, d := range res.Items {
				shown := ""
				if d.ID == settings.SelectedPDFID {
					shown = "pinned"
				}
				table.Append([]string{
					strconv.FormatInt(d.ID, 10),
					d.OriginalName,
					d.StoredName,
					strconv.FormatInt(d.SizeBytes, 10),
					d.UploadedAt.In(a.Log.Location()).Format("2006-01-02 15:04:05"),
					shown,
				})
			}
			table.Render()
			fmt.Fprintf(out, "\nPage %d of %d (%d documents)\n", res.Page, res.TotalPages, res.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", service.DefaultPerPage, "documents per page")
	return cmd
}
