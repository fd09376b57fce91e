package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	pkgio "github.com/florent-lamiraux/hpp-model-urdf/pkg/io"
)

const pendulumURDF = `
<robot name="pendulum">
  <link name="base_link"/>
  <link name="arm"/>
  <joint name="j1" type="revolute">
    <axis xyz="0 0 1"/>
    <parent link="base_link"/>
    <child link="arm"/>
    <limit lower="-1" upper="1" velocity="2" effort="5"/>
  </joint>
</robot>`

func TestRunBuild(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pendulum.urdf")
	output := filepath.Join(dir, "pendulum.json")
	if err := os.WriteFile(input, []byte(pendulumURDF), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := &buildOpts{output: output, noCache: true}
	if err := runBuild(context.Background(), input, opts); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc pkgio.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if doc.Name != "pendulum" {
		t.Errorf("name = %q, want %q", doc.Name, "pendulum")
	}
	if doc.Root != "base_joint" {
		t.Errorf("root = %q, want %q", doc.Root, "base_joint")
	}
	if len(doc.Joints) != 2 {
		t.Errorf("joint count = %d, want 2", len(doc.Joints))
	}
}

func TestRunBuildMissingFile(t *testing.T) {
	opts := &buildOpts{noCache: true}
	if err := runBuild(context.Background(), filepath.Join(t.TempDir(), "nope.urdf"), opts); err == nil {
		t.Fatal("runBuild() should fail for a missing description")
	}
}

func TestParserOptionsRoleTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.toml")
	if err := os.WriteFile(path, []byte(`left_wrist = "custom_wrist"`), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := &buildOpts{roleTable: path}
	parserOpts, err := opts.parserOptions()
	if err != nil {
		t.Fatalf("parserOptions() error = %v", err)
	}
	if len(parserOpts) != 1 {
		t.Errorf("parserOptions() length = %d, want 1", len(parserOpts))
	}
}

func TestParserOptionsMissingTable(t *testing.T) {
	opts := &buildOpts{roleTable: filepath.Join(t.TempDir(), "nope.toml")}
	if _, err := opts.parserOptions(); err == nil {
		t.Fatal("parserOptions() should fail for a missing role table")
	}
}
