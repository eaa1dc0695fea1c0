package tools

import "sort"

// Registry holds the name → tool mapping. It is populated once at startup
// and treated as immutable afterwards.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its name.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get looks a tool up by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns the registered tools sorted by name.
func (r *Registry) All() []Tool {
	result := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// DefaultRegistry creates the registry of built-in tools, all confined to
// the given workspace.
func DefaultRegistry(ws *Workspace) *Registry {
	r := NewRegistry()
	r.Register(&ReadFileTool{ws: ws})
	r.Register(&WriteFileTool{ws: ws})
	r.Register(&EditFileTool{ws: ws})
	r.Register(&ListDirTool{ws: ws})
	r.Register(&GlobTool{ws: ws})
	r.Register(&BashTool{ws: ws})
	return r
}
