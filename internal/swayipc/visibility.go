package swayipc

import (
	"encoding/json"
	"fmt"
)

// Entry is a (workspace name, output name) visibility pair.
type Entry struct {
	Workspace string
	Output    string
}

// Visibility maintains the workspace->output visibility list in
// insertion order, reconciled from IPC snapshots and events per §4.H.
type Visibility struct {
	entries []Entry
}

// Entries returns the current visibility list. Callers must not mutate it.
func (v *Visibility) Entries() []Entry { return v.entries }

// ApplySnapshot rebuilds the list from a GET_WORKSPACES reply. The
// snapshot is authoritative: the list is replaced by the snapshot's
// entries in the snapshot's order, so entries not mentioned in it are
// dropped. Returns the set of outputs whose visible workspace changed.
func (v *Visibility) ApplySnapshot(incoming []Entry) (changedOutputs []string) {
	old := v.entries
	v.entries = append([]Entry(nil), incoming...)
	return diffOutputs(old, v.entries)
}

// ApplyEvent applies a single workspace event's "current" payload, for
// change kinds {init, focus, move, rename}: the first entry whose
// workspace or output matches it is overwritten, else it is appended.
// Other change kinds are ignored.
func (v *Visibility) ApplyEvent(change string, current *Entry) (changedOutputs []string) {
	switch change {
	case "init", "focus", "move", "rename":
	default:
		return nil
	}
	if current == nil || current.Output == "" {
		return nil
	}

	old := append([]Entry(nil), v.entries...)
	replaced := false
	for i, e := range v.entries {
		if e.Workspace == current.Workspace || e.Output == current.Output {
			v.entries[i] = *current
			replaced = true
			break
		}
	}
	if !replaced {
		v.entries = append(v.entries, *current)
	}
	return diffOutputs(old, v.entries)
}

// diffOutputs returns the set of output names whose visible workspace
// differs between two visibility snapshots.
func diffOutputs(old, next []Entry) []string {
	oldByOutput := make(map[string]string, len(old))
	for _, e := range old {
		oldByOutput[e.Output] = e.Workspace
	}
	seen := make(map[string]bool)
	var changed []string
	for _, e := range next {
		if oldByOutput[e.Output] != e.Workspace {
			if !seen[e.Output] {
				changed = append(changed, e.Output)
				seen[e.Output] = true
			}
		}
		delete(oldByOutput, e.Output)
	}
	for out := range oldByOutput {
		if !seen[out] {
			changed = append(changed, out)
			seen[out] = true
		}
	}
	return changed
}

type wireWorkspace struct {
	Name   string `json:"name"`
	Output string `json:"output"`
}

// DecodeWorkspaces decodes a GET_WORKSPACES reply payload.
func DecodeWorkspaces(payload []byte) ([]Entry, error) {
	var ws []wireWorkspace
	if err := json.Unmarshal(payload, &ws); err != nil {
		return nil, fmt.Errorf("swayipc: decode workspaces: %w", err)
	}
	entries := make([]Entry, len(ws))
	for i, w := range ws {
		entries[i] = Entry{Workspace: w.Name, Output: w.Output}
	}
	return entries, nil
}

type wireWorkspaceEvent struct {
	Change  string         `json:"change"`
	Current *wireWorkspace `json:"current"`
}

// DecodeWorkspaceEvent decodes a workspace-event payload.
func DecodeWorkspaceEvent(payload []byte) (change string, current *Entry, err error) {
	var ev wireWorkspaceEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return "", nil, fmt.Errorf("swayipc: decode workspace event: %w", err)
	}
	if ev.Current == nil {
		return ev.Change, nil, nil
	}
	return ev.Change, &Entry{Workspace: ev.Current.Name, Output: ev.Current.Output}, nil
}
