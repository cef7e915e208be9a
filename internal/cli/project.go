package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowcopy/flowcopy/pkg/flow"
	"github.com/flowcopy/flowcopy/pkg/store"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readProjectFile loads a project from a JSON snapshot on disk. The graph
// passes through the standard sanitation rules so a hand-edited file cannot
// smuggle in dangling edges or duplicate ids.
func readProjectFile(path string) (flow.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return flow.Project{}, fmt.Errorf("read project file: %w", err)
	}

	var p flow.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return flow.Project{}, fmt.Errorf("parse project file %s: %w", path, err)
	}

	p.Nodes = flow.SanitizeNodes(p.Nodes)
	p.Edges = flow.SanitizeEdges(p.Nodes, p.Edges)
	return p, nil
}

// writeProjectFile saves a project as an indented JSON snapshot.
func writeProjectFile(path string, p flow.Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// resolveProject picks the project a command operates on: an explicit file
// wins, then an explicit project id, then the store. A store with a single
// project is used directly; with several, the interactive picker runs.
func (c *CLI) resolveProject(ctx context.Context, st store.Store, file, id string) (flow.Project, error) {
	if file != "" {
		return readProjectFile(file)
	}
	if id != "" {
		return st.Get(ctx, id)
	}

	ids, err := st.List(ctx)
	if err != nil {
		return flow.Project{}, err
	}
	switch len(ids) {
	case 0:
		return flow.Project{}, fmt.Errorf("no projects in the store; pass a project id or --file")
	case 1:
		return st.Get(ctx, ids[0])
	}

	selected, err := pickProject(ctx, st, ids)
	if err != nil {
		return flow.Project{}, err
	}
	return st.Get(ctx, selected)
}
