package binding

// Node is a top-level element of an emitted source unit.
type Node interface {
	isNode()
}

// UseLeaf is one imported name, optionally renamed.
type UseLeaf struct {
	Name   string
	Rename string
}

// Use is a `use` or `pub use` statement. Absolute paths start at the crate
// root of an external crate (`::web_sys::Node`).
type Use struct {
	Pub      bool
	Absolute bool
	Path     []string
	Leaves   []UseLeaf
	Glob     bool
}

// ExternBlock is one attributed `extern "C"` block.
type ExternBlock struct {
	Items []Item
}

// Module is a nested scope, used for namespaces.
type Module struct {
	Name  string
	Nodes []Node
}

func (*Use) isNode()         {}
func (*ExternBlock) isNode() {}
func (*Module) isNode()      {}

// File is the output for one source unit.
type File struct {
	Unit  string
	Nodes []Node
}

// Walk calls fn for every item in nodes, descending into nested modules.
func Walk(nodes []Node, fn func(Item)) {
	for _, n := range nodes {
		switch nn := n.(type) {
		case *ExternBlock:
			for _, it := range nn.Items {
				fn(it)
			}
		case *Module:
			Walk(nn.Nodes, fn)
		}
	}
}

// WalkUses calls fn for every use statement in nodes, descending into nested modules.
func WalkUses(nodes []Node, fn func(*Use)) {
	for _, n := range nodes {
		switch nn := n.(type) {
		case *Use:
			fn(nn)
		case *Module:
			WalkUses(nn.Nodes, fn)
		}
	}
}

// CountItems returns the number of items in nodes.
func CountItems(nodes []Node) int {
	n := 0
	Walk(nodes, func(Item) { n++ })
	return n
}
