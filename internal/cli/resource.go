package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/protostack-io/protostack/pkg/client"
)

func newResourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage simulated cloud resources",
	}

	cmd.AddCommand(newResourceListCmd())
	cmd.AddCommand(newResourceGetCmd())
	cmd.AddCommand(newResourceProvisionCmd())
	cmd.AddCommand(newResourceUpdateCmd())
	cmd.AddCommand(newResourceDeleteCmd())

	return cmd
}

func newResourceListCmd() *cobra.Command {
	var provider, kind, region, status string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			result, err := apiClient.Resources().List(ctx, &client.ResourceListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				Provider:    provider,
				Kind:        kind,
				Region:      region,
				Status:      status,
			})
			if err != nil {
				return fmt.Errorf("failed to list resources: %w", err)
			}

			if format := getOutputFormat(); format != "table" {
				return printOutput(result.Data)
			}

			t := NewTable("ID", "NAME", "PROVIDER", "KIND", "REGION", "STATUS", "CLONES")
			for _, r := range result.Data {
				t.AddRow(
					truncate(r.ID, 24),
					truncate(r.Name, 30),
					r.Provider,
					r.Kind,
					r.Region,
					formatStatus(r.Status),
					strconv.Itoa(r.CloneCount),
				)
			}
			t.Render()
			fmt.Printf("\nShowing %d of %d resources\n", len(result.Data), result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "filter by provider (aws, gcp, onprem)")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind (vm, database, loadbalancer, storage, network)")
	cmd.Flags().StringVar(&region, "region", "", "filter by region")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "page size")

	return cmd
}

func newResourceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource-id>",
		Short: "Get resource details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Resources().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get resource: %w", err)
			}
			return printOutput(res)
		},
	}
}

func newResourceProvisionCmd() *cobra.Command {
	var provider, kind, name, region, tier string
	var tags []string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision a simulated resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Resources().Provision(context.Background(), client.ProvisionResourceRequest{
				Provider: provider,
				Kind:     kind,
				Name:     name,
				Region:   region,
				Tier:     tier,
				Tags:     parseTags(tags),
			})
			if err != nil {
				return fmt.Errorf("failed to provision resource: %w", err)
			}

			fmt.Printf("Provisioned %s %s: %s\n", res.Provider, res.Kind, res.ID)
			return printOutput(res)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "provider (aws, gcp, onprem)")
	cmd.Flags().StringVar(&kind, "kind", "", "resource kind (vm, database, loadbalancer, storage, network)")
	cmd.Flags().StringVar(&name, "name", "", "resource name")
	cmd.Flags().StringVar(&region, "region", "", "region or datacenter")
	cmd.Flags().StringVar(&tier, "tier", "", "vm sizing tier (small, medium, large, xlarge)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag in key=value form (repeatable)")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}

func newResourceUpdateCmd() *cobra.Command {
	var name, status string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <resource-id>",
		Short: "Update a resource's name, status, or tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.UpdateResourceRequest{Tags: parseTags(tags)}
			if name != "" {
				req.Name = &name
			}
			if status != "" {
				req.Status = &status
			}

			res, err := apiClient.Resources().Update(context.Background(), args[0], req)
			if err != nil {
				return fmt.Errorf("failed to update resource: %w", err)
			}
			return printOutput(res)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag in key=value form (repeatable)")

	return cmd
}

func newResourceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource-id>",
		Short: "Delete a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Resources().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete resource: %w", err)
			}
			fmt.Printf("Resource %s deleted\n", args[0])
			return nil
		},
	}
}
