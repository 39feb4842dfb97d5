package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent activity, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := apiClient.Logs().List(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list activity: %w", err)
			}

			if format := getOutputFormat(); format != "table" {
				return printOutput(events)
			}

			t := NewTable("TIME", "ACTION", "RESOURCE", "MESSAGE")
			for _, e := range events {
				ref := e.ResourceID
				if ref == "" {
					ref = e.PrototypeID
				}
				t.AddRow(
					e.CreatedAt.Format("2006-01-02 15:04:05"),
					e.Action,
					truncate(ref, 24),
					truncate(e.Message, 60),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of events")

	return cmd
}
