package domain

// Tree is an append-only arena of configurations addressed by index.
// Parent links always point to lower indices, so the history can never cycle.
type Tree struct {
	nodes []Configuration
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// Add stores c, assigns its ID and returns the stored record.
// A Parent that does not refer to an existing record is treated as a root.
func (t *Tree) Add(c Configuration) Configuration {
	c.ID = len(t.nodes)
	if c.Parent < 0 || c.Parent >= c.ID {
		c.Parent = NoParent
		c.Depth = 0
	}
	t.nodes = append(t.nodes, c)
	return c
}

// Len returns the number of stored configurations.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Get returns the configuration with the given ID.
func (t *Tree) Get(id int) (Configuration, bool) {
	if id < 0 || id >= len(t.nodes) {
		return Configuration{}, false
	}
	return t.nodes[id], true
}

// Path reconstructs the history from the root to id (inclusive).
func (t *Tree) Path(id int) []Configuration {
	var rev []Configuration
	for id != NoParent {
		c, ok := t.Get(id)
		if !ok {
			break
		}
		rev = append(rev, c)
		id = c.Parent
	}
	path := make([]Configuration, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// Roots returns the IDs of the configurations that seeded the run.
func (t *Tree) Roots() []int {
	var out []int
	for _, c := range t.nodes {
		if c.IsRoot() {
			out = append(out, c.ID)
		}
	}
	return out
}

// Children returns the IDs of the direct successors of id.
func (t *Tree) Children(id int) []int {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	var out []int
	for _, c := range t.nodes[id+1:] {
		if c.Parent == id {
			out = append(out, c.ID)
		}
	}
	return out
}
