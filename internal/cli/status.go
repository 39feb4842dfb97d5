package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a registry and store summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if format := getOutputFormat(); format != "table" {
				summary := map[string]interface{}{}

				if page, err := apiClient.Resources().List(ctx, nil); err == nil {
					summary["resources"] = page.TotalItems
				}
				if stats, err := apiClient.Prototypes().Statistics(ctx); err == nil {
					summary["prototypes"] = stats.TotalPrototypes
					summary["clones_created"] = stats.TotalClonesCreated
				}
				return printOutput(summary)
			}

			fmt.Println("ProtoStack Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			if _, err := apiClient.Health().Check(ctx); err != nil {
				fmt.Printf("  Server:        (error: %v)\n", err)
				return nil
			}
			fmt.Println("  Server:        " + formatStatus("ok"))

			page, err := apiClient.Resources().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Resources:     (error: %v)\n", err)
			} else {
				fmt.Printf("  Resources:     %d stored\n", page.TotalItems)
			}

			stats, err := apiClient.Prototypes().Statistics(ctx)
			if err != nil {
				fmt.Printf("  Prototypes:    (error: %v)\n", err)
			} else {
				fmt.Printf("  Prototypes:    %d registered, %d clones created\n",
					stats.TotalPrototypes, stats.TotalClonesCreated)
				if stats.MostUsedPrototype != nil {
					fmt.Printf("  Most used:     %s (%d clones)\n",
						stats.MostUsedPrototype.Name, stats.MostUsedPrototype.UsageCount)
				}
			}

			return nil
		},
	}
}
