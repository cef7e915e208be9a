package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowcopy/flowcopy/pkg/flow"
)

func writeSnapshot(t *testing.T, p flow.Project) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.json")
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	for _, name := range []string{"order", "ident", "export", "import", "render", "projects", "serve", "completion"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestOrderCommandJSON(t *testing.T) {
	path := writeSnapshot(t, flow.Project{
		ID: "PRJ-X",
		Nodes: []flow.Node{
			{ID: "b", X: 100, Y: 0, Title: "Second"},
			{ID: "a", X: 0, Y: 0, Title: "First"},
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "a", Target: "b", Kind: flow.EdgeSequential},
		},
	})

	out, err := runCommand(t, "order", "--file", path, "--no-cache", "--json")
	if err != nil {
		t.Fatalf("order: %v", err)
	}

	var info struct {
		OrderedIDs []string `json:"ordered_ids"`
		Token      string   `json:"token"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(info.OrderedIDs) != 2 || info.OrderedIDs[0] != "a" {
		t.Errorf("OrderedIDs = %v", info.OrderedIDs)
	}
	if !strings.HasPrefix(info.Token, "FLOW-") {
		t.Errorf("Token = %q", info.Token)
	}
}

func TestExportImportCommands(t *testing.T) {
	snapshot := writeSnapshot(t, flow.Project{
		ID: "PRJ-X",
		Nodes: []flow.Node{
			{ID: "welcome", X: 0, Y: 0, Title: "Welcome"},
			{ID: "cta", X: 100, Y: 0, Title: "Try it"},
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "welcome", Target: "cta", Kind: flow.EdgeSequential},
		},
	})
	dir := t.TempDir()
	doc := filepath.Join(dir, "export.csv")

	if _, err := runCommand(t, "export", "--file", snapshot, "--no-cache", "-o", doc); err != nil {
		t.Fatalf("export: %v", err)
	}
	content, err := os.ReadFile(doc)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(content), "session_id,") {
		t.Errorf("export does not start with the header row")
	}

	rebuilt := filepath.Join(dir, "rebuilt.json")
	if _, err := runCommand(t, "import", doc, "--project", "PRJ-X", "--no-cache", "-o", rebuilt); err != nil {
		t.Fatalf("import: %v", err)
	}

	data, err := os.ReadFile(rebuilt)
	if err != nil {
		t.Fatalf("read rebuilt: %v", err)
	}
	var p flow.Project
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("decode rebuilt: %v", err)
	}
	if len(p.Nodes) != 2 || len(p.Edges) != 1 {
		t.Errorf("rebuilt project = %d nodes, %d edges", len(p.Nodes), len(p.Edges))
	}
}

func TestImportDiscoversProject(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(doc, []byte("project_id,node_id,title\nPRJ-X,a,First\nPRJ-X,b,Second\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "import", doc, "--no-cache")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	var p flow.Project
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if p.ID != "PRJ-X" || len(p.Nodes) != 2 {
		t.Errorf("rebuilt project = %q with %d nodes", p.ID, len(p.Nodes))
	}
}

func TestImportRejectsUnknownDocument(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "export.bin")
	if err := os.WriteFile(doc, []byte("not a tabular document"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "import", doc, "--no-cache"); err == nil {
		t.Error("import of an unrecognizable document succeeded")
	}
}

func TestIdentCommand(t *testing.T) {
	path := writeSnapshot(t, flow.Project{
		ID: "PRJ-X",
		Nodes: []flow.Node{
			{ID: "a", X: 0, Y: 0},
			{ID: "b", X: 100, Y: 0},
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "a", Target: "b", Kind: flow.EdgeSequential},
		},
	})

	out, err := runCommand(t, "ident", "--file", path)
	if err != nil {
		t.Fatalf("ident: %v", err)
	}
	token := strings.TrimSpace(out)
	if !strings.HasPrefix(token, "FLOW-") || len(token) != len("FLOW-")+7 {
		t.Errorf("token = %q", token)
	}

	again, err := runCommand(t, "ident", "--file", path)
	if err != nil {
		t.Fatalf("ident: %v", err)
	}
	if strings.TrimSpace(again) != token {
		t.Errorf("token changed between runs: %q then %q", token, again)
	}
}

func TestIdentRaw(t *testing.T) {
	out, err := runCommand(t, "ident", "--raw", "hello")
	if err != nil {
		t.Fatalf("ident --raw: %v", err)
	}
	if got := strings.TrimSpace(out); got != "FLOW-0M3BICR" {
		t.Errorf("ident --raw hello = %q", got)
	}
}
