package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bicced/Viral-AI-Video-Clipper/internal/audit"
)

func historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "history",
		Short:        "List recent runs",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return history(cmd, limit)
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum runs to list")
	return cmd
}

func history(cmd *cobra.Command, limit int) error {
	store, err := audit.OpenStore(getenvDefault("CLIPPER_HISTORY_DB", defaultHistoryDB()))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tCLIPS\tINPUT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			shortRunID(r.RunID), r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ClipCount, r.Input)
	}
	return w.Flush()
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
