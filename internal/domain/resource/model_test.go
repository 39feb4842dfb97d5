package resource

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	id := NewID("i")
	if !strings.HasPrefix(id, "i-") {
		t.Errorf("ID = %s, want prefix i-", id)
	}
	if len(id) != len("i-")+8 {
		t.Errorf("ID = %s, want 8 hex chars after prefix", id)
	}
	if NewID("i") == NewID("i") {
		t.Error("consecutive IDs should differ")
	}
}

func TestIDPrefix(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"i-abc12345", "i"},
		{"onprem-vm-abc12345", "onprem-vm"},
		{"gcp-storage-deadbeef", "gcp-storage"},
		{"nodash", "nodash"},
	}

	for _, tt := range tests {
		res := &Resource{ID: tt.id}
		if got := res.IDPrefix(); got != tt.want {
			t.Errorf("IDPrefix(%s) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestIsCloneable(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusCreating, true},
		{StatusRunning, true},
		{StatusStopped, true},
		{StatusDeleting, false},
		{StatusError, false},
	}

	for _, tt := range tests {
		res := &Resource{Status: tt.status}
		if got := res.IsCloneable(); got != tt.want {
			t.Errorf("IsCloneable(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestMarkAsPrototype(t *testing.T) {
	res := &Resource{Name: "original"}

	res.MarkAsPrototype("template")
	if !res.IsPrototype || res.Name != "template" {
		t.Errorf("MarkAsPrototype: IsPrototype=%v Name=%s", res.IsPrototype, res.Name)
	}

	res.MarkAsPrototype("")
	if res.Name != "template" {
		t.Errorf("empty name should keep current name, got %s", res.Name)
	}
}

func TestDeepCopyIndependence(t *testing.T) {
	src := New("i", ProviderAWS, KindVM, "AWS::EC2::Instance", "web", "us-east-1")
	src.Spec = map[string]any{
		"instance_type":   "t3.micro",
		"security_groups": []string{"sg-1", "sg-2"},
		"nested":          map[string]any{"a": 1},
		"listeners":       []map[string]any{{"port": 80}},
	}
	src.Tags = map[string]string{"env": "prod"}

	cp := src.DeepCopy()

	cp.Spec["instance_type"] = "m5.large"
	cp.Spec["security_groups"].([]string)[0] = "sg-changed"
	cp.Spec["nested"].(map[string]any)["a"] = 2
	cp.Spec["listeners"].([]map[string]any)[0]["port"] = 443
	cp.Tags["env"] = "dev"

	if src.Spec["instance_type"] != "t3.micro" {
		t.Error("scalar spec value leaked into source")
	}
	if src.Spec["security_groups"].([]string)[0] != "sg-1" {
		t.Error("string slice shared with copy")
	}
	if src.Spec["nested"].(map[string]any)["a"] != 1 {
		t.Error("nested map shared with copy")
	}
	if src.Spec["listeners"].([]map[string]any)[0]["port"] != 80 {
		t.Error("slice of maps shared with copy")
	}
	if src.Tags["env"] != "prod" {
		t.Error("tags shared with copy")
	}
}
