package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protostack-io/protostack/pkg/client"
)

func newPrototypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prototype",
		Aliases: []string{"proto"},
		Short:   "Manage the prototype registry",
	}

	cmd.AddCommand(newPrototypeListCmd())
	cmd.AddCommand(newPrototypeGetCmd())
	cmd.AddCommand(newPrototypeCreateCmd())
	cmd.AddCommand(newPrototypeCloneCmd())
	cmd.AddCommand(newPrototypeSearchCmd())
	cmd.AddCommand(newPrototypeDeleteCmd())
	cmd.AddCommand(newPrototypeStatsCmd())
	cmd.AddCommand(newPrototypeCategoriesCmd())

	return cmd
}

func renderPrototypeTable(prototypes []client.Prototype) {
	t := NewTable("PROTOTYPE ID", "NAME", "CATEGORY", "PROVIDER", "KIND", "CLONES")
	for _, p := range prototypes {
		t.AddRow(
			truncate(p.PrototypeID, 24),
			truncate(p.Name, 30),
			p.Category,
			p.Resource.Provider,
			p.Resource.Kind,
			strconv.Itoa(p.UsageCount),
		)
	}
	t.Render()
}

func newPrototypeListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered prototypes",
		RunE: func(cmd *cobra.Command, args []string) error {
			prototypes, err := apiClient.Prototypes().List(context.Background(), category)
			if err != nil {
				return fmt.Errorf("failed to list prototypes: %w", err)
			}

			if format := getOutputFormat(); format != "table" {
				return printOutput(prototypes)
			}

			renderPrototypeTable(prototypes)
			fmt.Printf("\n%d prototypes\n", len(prototypes))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")

	return cmd
}

func newPrototypeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <prototype-id>",
		Short: "Get prototype details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proto, err := apiClient.Prototypes().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get prototype: %w", err)
			}
			return printOutput(proto)
		},
	}
}

func newPrototypeCreateCmd() *cobra.Command {
	var name, description, category string
	var tags []string

	cmd := &cobra.Command{
		Use:   "create <resource-id>",
		Short: "Register a stored resource as a prototype",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proto, err := apiClient.Prototypes().Create(context.Background(), client.CreatePrototypeRequest{
				ResourceID:  args[0],
				Name:        name,
				Description: description,
				Category:    category,
				Tags:        parseTags(tags),
			})
			if err != nil {
				return fmt.Errorf("failed to register prototype: %w", err)
			}

			fmt.Printf("Registered prototype %s\n", proto.PrototypeID)
			return printOutput(proto)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "prototype display name")
	cmd.Flags().StringVar(&description, "description", "", "prototype description")
	cmd.Flags().StringVar(&category, "category", "", "category (vm, database, loadbalancer, storage, network, general)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag in key=value form (repeatable)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPrototypeCloneCmd() *cobra.Command {
	var name string
	var tags []string

	cmd := &cobra.Command{
		Use:   "clone <prototype-id>",
		Short: "Clone a prototype into a new resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Prototypes().Clone(context.Background(), args[0], client.ClonePrototypeRequest{
				Name: name,
				Tags: parseTags(tags),
			})
			if err != nil {
				return fmt.Errorf("failed to clone prototype: %w", err)
			}

			fmt.Printf("Cloned %s into %s\n", args[0], res.ID)
			return printOutput(res)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name for the clone")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag in key=value form (repeatable)")

	return cmd
}

func newPrototypeSearchCmd() *cobra.Command {
	var category string
	var tags []string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search prototypes by name, description, category, and tags",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			prototypes, err := apiClient.Prototypes().Search(context.Background(), client.SearchPrototypesRequest{
				Query:    query,
				Category: category,
				Tags:     parseTags(tags),
			})
			if err != nil {
				return fmt.Errorf("failed to search prototypes: %w", err)
			}

			if format := getOutputFormat(); format != "table" {
				return printOutput(prototypes)
			}

			renderPrototypeTable(prototypes)
			fmt.Printf("\n%d matches\n", len(prototypes))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag filter in key=value form (repeatable)")

	return cmd
}

func newPrototypeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <prototype-id>",
		Short: "Remove a prototype from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Prototypes().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete prototype: %w", err)
			}
			fmt.Printf("Prototype %s deleted\n", args[0])
			return nil
		},
	}
}

func newPrototypeStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show registry statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Prototypes().Statistics(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get statistics: %w", err)
			}

			if format := getOutputFormat(); format != "table" {
				return printOutput(stats)
			}

			fmt.Printf("Prototypes:     %d\n", stats.TotalPrototypes)
			fmt.Printf("Clones created: %d\n", stats.TotalClonesCreated)
			if stats.MostUsedPrototype != nil {
				fmt.Printf("Most used:      %s (%d clones)\n",
					stats.MostUsedPrototype.Name, stats.MostUsedPrototype.UsageCount)
			}

			if len(stats.Categories) > 0 {
				fmt.Println()
				t := NewTable("CATEGORY", "PROTOTYPES", "CLONES")
				for category, cs := range stats.Categories {
					t.AddRow(category, strconv.Itoa(cs.Count), strconv.Itoa(cs.TotalClones))
				}
				t.Render()
			}
			return nil
		},
	}
}

func newPrototypeCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories holding prototypes",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := apiClient.Prototypes().Categories(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if format := getOutputFormat(); format != "table" {
				return printOutput(categories)
			}

			fmt.Println(strings.Join(categories, "\n"))
			return nil
		},
	}
}

// parseTags turns key=value pairs into a tag map
func parseTags(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	tags := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		if k, v, ok := strings.Cut(pair, "="); ok {
			tags[k] = v
		}
	}
	return tags
}
