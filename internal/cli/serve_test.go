package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgio "github.com/florent-lamiraux/hpp-model-urdf/pkg/io"
)

func TestServeModel(t *testing.T) {
	server := &modelServer{doc: inspectDocument()}
	ts := httptest.NewServer(server.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/model")
	if err != nil {
		t.Fatalf("GET /api/model: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/model status = %d, want 200", resp.StatusCode)
	}

	var doc pkgio.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.Name != "test_robot" {
		t.Errorf("model name = %q, want %q", doc.Name, "test_robot")
	}
	if len(doc.Joints) != 3 {
		t.Errorf("joint count = %d, want 3", len(doc.Joints))
	}
}

func TestServeJoint(t *testing.T) {
	server := &modelServer{doc: inspectDocument()}
	ts := httptest.NewServer(server.routes())
	defer ts.Close()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"known joint", "/api/joints/j1", http.StatusOK},
		{"unknown joint", "/api/joints/nope", http.StatusNotFound},
		{"joint list", "/api/joints", http.StatusOK},
		{"health check", "/healthz", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestServeJointPayload(t *testing.T) {
	server := &modelServer{doc: inspectDocument()}
	ts := httptest.NewServer(server.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/joints/j1")
	if err != nil {
		t.Fatalf("GET /api/joints/j1: %v", err)
	}
	defer resp.Body.Close()

	var joint pkgio.JointRecord
	if err := json.NewDecoder(resp.Body).Decode(&joint); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if joint.Name != "j1" || joint.Type != "rotation" {
		t.Errorf("joint = %s/%s, want j1/rotation", joint.Name, joint.Type)
	}
}
