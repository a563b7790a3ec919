package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/core/render"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List documents processed on this machine",
	Long:  `Shows the last ten documents processed from this machine, most recent first.`,
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, _ []string) error {
	if recentService == nil {
		return errors.New("recent service not configured")
	}

	views := recentService.View()
	if len(views) == 0 {
		cmd.Println(render.EmptyRecentMessage)
		return nil
	}

	t := newTable("Document", "Category", "Urgency", "Processed")
	for _, v := range views {
		t.Row(v.DocumentID, v.CategoryIcon+" "+v.CategoryLabel, v.UrgencyLabel, v.When)
	}
	cmd.Println(t.String())
	return nil
}
