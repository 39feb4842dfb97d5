package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/protostack-io/protostack/pkg/client"
)

// Example demonstrates basic usage of the ProtoStack client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	ctx := context.Background()

	// Provision a VM
	res, err := c.Resources().Provision(ctx, client.ProvisionResourceRequest{
		Provider: "aws",
		Kind:     "vm",
		Name:     "web-server",
		Region:   "us-east-1",
		Tier:     "small",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Provisioned: %s\n", res.ID)
}

// ExamplePrototypeService_Clone demonstrates the register-and-clone flow
func ExamplePrototypeService_Clone() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	ctx := context.Background()

	res, err := c.Resources().Provision(ctx, client.ProvisionResourceRequest{
		Provider: "gcp",
		Kind:     "database",
		Name:     "orders",
		Region:   "us-central1",
	})
	if err != nil {
		log.Fatal(err)
	}

	proto, err := c.Prototypes().Create(ctx, client.CreatePrototypeRequest{
		ResourceID: res.ID,
		Name:       "orders-template",
		Category:   "database",
	})
	if err != nil {
		log.Fatal(err)
	}

	clone, err := c.Prototypes().Clone(ctx, proto.PrototypeID, client.ClonePrototypeRequest{
		Name: "orders-staging",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Cloned %s into %s\n", proto.PrototypeID, clone.ID)
}
