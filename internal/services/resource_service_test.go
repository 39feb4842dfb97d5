package services

import (
	"context"
	"testing"

	"github.com/protostack-io/protostack/internal/domain/audit"
	"github.com/protostack-io/protostack/internal/domain/resource"
	"github.com/protostack-io/protostack/internal/pkg/errors"
	"github.com/protostack-io/protostack/internal/pkg/logger"
	"github.com/protostack-io/protostack/internal/providers"
	"github.com/protostack-io/protostack/internal/repository/memory"
)

func newResourceFixture(t *testing.T) (*ResourceService, *memory.AuditLog) {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	recorder := memory.NewAuditLog(100)
	svc := NewResourceService(memory.NewStore(), providers.NewCatalogs(log), recorder, log)
	return svc, recorder
}

func TestResourceServiceProvision(t *testing.T) {
	svc, recorder := newResourceFixture(t)
	ctx := context.Background()

	res, err := svc.Provision(ctx, resource.ProvisionRequest{
		Provider: resource.ProviderAWS,
		Kind:     resource.KindVM,
		Name:     "web-server",
		Region:   "us-east-1",
		Tags:     map[string]string{"env": "prod"},
	})
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	if res.Status != resource.StatusRunning {
		t.Errorf("Status = %s, want running", res.Status)
	}
	if res.Tags["env"] != "prod" {
		t.Errorf("Tags = %v, want env=prod", res.Tags)
	}

	stored, err := svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.ID != res.ID {
		t.Errorf("stored ID = %s, want %s", stored.ID, res.ID)
	}

	events := recorder.List(ctx, 0)
	if len(events) != 1 || events[0].Action != audit.ActionProvision {
		t.Errorf("audit events = %+v, want one provision event", events)
	}
}

func TestResourceServiceProvisionWithTier(t *testing.T) {
	svc, _ := newResourceFixture(t)

	res, err := svc.Provision(context.Background(), resource.ProvisionRequest{
		Provider: resource.ProviderGCP,
		Kind:     resource.KindVM,
		Name:     "worker",
		Region:   "us-central1",
		Tier:     "large",
	})
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if got := res.Spec["machine_type"]; got != "e2-standard-4" {
		t.Errorf("machine_type = %v, want e2-standard-4 for tier large", got)
	}
}

func TestResourceServiceProvisionRejectsUnknownProvider(t *testing.T) {
	svc, _ := newResourceFixture(t)

	_, err := svc.Provision(context.Background(), resource.ProvisionRequest{
		Provider: "azure",
		Kind:     resource.KindVM,
		Name:     "x",
		Region:   "r",
	})
	if err == nil {
		t.Fatal("Provision() with unknown provider should fail")
	}
}

func TestResourceServiceUpdate(t *testing.T) {
	svc, _ := newResourceFixture(t)
	ctx := context.Background()

	res, err := svc.Provision(ctx, resource.ProvisionRequest{
		Provider: resource.ProviderAWS,
		Kind:     resource.KindVM,
		Name:     "web",
		Region:   "us-east-1",
	})
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	updated, err := svc.Update(ctx, res.ID, map[string]interface{}{
		"name":   "web-renamed",
		"status": "stopped",
		"tags":   map[string]interface{}{"owner": "ops"},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "web-renamed" || updated.Status != resource.StatusStopped {
		t.Errorf("updated = %s/%s, want web-renamed/stopped", updated.Name, updated.Status)
	}
	if updated.Tags["owner"] != "ops" {
		t.Errorf("tags = %v, want owner=ops", updated.Tags)
	}

	if _, err := svc.Update(ctx, res.ID, map[string]interface{}{"status": "hibernating"}); err == nil {
		t.Error("Update() with unknown status should fail")
	}
	if _, err := svc.Update(ctx, res.ID, map[string]interface{}{"spec": "x"}); err == nil {
		t.Error("Update() with unknown field should fail")
	}
	if _, err := svc.Update(ctx, "i-missing", map[string]interface{}{"name": "x"}); !errors.IsNotFound(err) {
		t.Errorf("Update() on missing resource error = %v, want not found", err)
	}
}

func TestResourceServiceFailedUpdateLeavesResourceUntouched(t *testing.T) {
	svc, _ := newResourceFixture(t)
	ctx := context.Background()

	res, err := svc.Provision(ctx, resource.ProvisionRequest{
		Provider: resource.ProviderAWS,
		Kind:     resource.KindVM,
		Name:     "web",
		Region:   "us-east-1",
	})
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	_, err = svc.Update(ctx, res.ID, map[string]interface{}{
		"name":   "mutated",
		"status": "bogus",
	})
	if err == nil {
		t.Fatal("Update() with unknown status should fail")
	}

	stored, err := svc.Get(ctx, res.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Name != "web" {
		t.Errorf("name after failed update = %s, want web", stored.Name)
	}
	if stored.Status != resource.StatusRunning {
		t.Errorf("status after failed update = %s, want running", stored.Status)
	}
}

func TestResourceServiceDelete(t *testing.T) {
	svc, recorder := newResourceFixture(t)
	ctx := context.Background()

	res, err := svc.Provision(ctx, resource.ProvisionRequest{
		Provider: resource.ProviderOnPrem,
		Kind:     resource.KindStorage,
		Name:     "share",
		Region:   "dc-1",
	})
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}

	if err := svc.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, res.ID); !errors.IsNotFound(err) {
		t.Errorf("Get() after delete error = %v, want not found", err)
	}
	if err := svc.Delete(ctx, res.ID); !errors.IsNotFound(err) {
		t.Errorf("second Delete() error = %v, want not found", err)
	}

	events := recorder.List(ctx, 1)
	if len(events) != 1 || events[0].Action != audit.ActionResourceDelete {
		t.Errorf("latest audit event = %+v, want resource delete", events)
	}
}
