// Package graph provides a small in-memory store of RDF statements with
// typed accessors. Objects are kept in document order, so "the first value"
// of a relation is deterministic.
package graph

// Kind is the type of a graph node.
type Kind int

const (
	IRI Kind = iota
	Blank
	Literal
)

func (k Kind) String() string {
	switch k {
	case IRI:
		return "iri"
	case Blank:
		return "blank"
	case Literal:
		return "literal"
	default:
		return "unknown"
	}
}

// Node is a subject or an object of a statement.
type Node struct {
	Kind  Kind
	Value string

	// Datatype is the datatype IRI of a typed literal.
	Datatype string

	// Lang is the language tag of a literal.
	Lang string
}

// NewIRI creates a named node.
func NewIRI(iri string) Node {
	return Node{Kind: IRI, Value: iri}
}

// NewBlank creates a blank node with a document-local id.
func NewBlank(id string) Node {
	return Node{Kind: Blank, Value: id}
}

// NewLiteral creates a plain literal.
func NewLiteral(v string) Node {
	return Node{Kind: Literal, Value: v}
}

// NewTypedLiteral creates a literal with a datatype.
func NewTypedLiteral(v, datatype string) Node {
	return Node{Kind: Literal, Value: v, Datatype: datatype}
}

// IsResource is true for nodes that can be subjects.
func (n Node) IsResource() bool {
	return n.Kind == IRI || n.Kind == Blank
}

type key struct {
	kind  Kind
	value string
}

func keyOf(n Node) key {
	return key{kind: n.Kind, value: n.Value}
}

type statements struct {
	predicates []string
	objects    map[string][]Node
}

// Graph is a set of statements indexed by subject and predicate.
type Graph struct {
	index map[key]*statements
	size  int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[key]*statements)}
}

// Add inserts a statement. Literal subjects and repeated statements are
// ignored.
func (g *Graph) Add(subj Node, pred string, obj Node) {
	if !subj.IsResource() || pred == "" {
		return
	}
	k := keyOf(subj)
	st, ok := g.index[k]
	if !ok {
		st = &statements{objects: make(map[string][]Node)}
		g.index[k] = st
	}
	objs, seen := st.objects[pred]
	for _, v := range objs {
		if v == obj {
			return
		}
	}
	if !seen {
		st.predicates = append(st.predicates, pred)
	}
	st.objects[pred] = append(objs, obj)
	g.size++
}

// Len returns the number of statements.
func (g *Graph) Len() int {
	return g.size
}

// Has is true if the node is the subject of at least one statement.
func (g *Graph) Has(subj Node) bool {
	_, ok := g.index[keyOf(subj)]
	return ok
}

// Predicates returns predicates of a subject in the order they first
// appeared.
func (g *Graph) Predicates(subj Node) []string {
	st, ok := g.index[keyOf(subj)]
	if !ok {
		return nil
	}
	return st.predicates
}

// Objects returns all objects of a subject and predicate in document
// order.
func (g *Graph) Objects(subj Node, pred string) []Node {
	st, ok := g.index[keyOf(subj)]
	if !ok {
		return nil
	}
	return st.objects[pred]
}

// Object returns the first object of a subject and predicate.
func (g *Graph) Object(subj Node, pred string) (Node, bool) {
	objs := g.Objects(subj, pred)
	if len(objs) == 0 {
		return Node{}, false
	}
	return objs[0], true
}

// Value returns the lexical value of the first object of a subject and
// predicate, or nil if there is none. IRIs give the IRI itself.
func (g *Graph) Value(subj Node, pred string) *string {
	obj, ok := g.Object(subj, pred)
	if !ok || obj.Kind == Blank {
		return nil
	}
	res := obj.Value
	return &res
}

// Deref follows pred from subj, then returns the value of via on the
// reached node. It is used for "hashed" nodes that carry their value
// in rdf:value.
func (g *Graph) Deref(subj Node, pred, via string) *string {
	obj, ok := g.Object(subj, pred)
	if !ok || !obj.IsResource() {
		return nil
	}
	return g.Value(obj, via)
}

// DerefAll is like Deref for every object of pred. Objects without a
// value are skipped.
func (g *Graph) DerefAll(subj Node, pred, via string) []string {
	var res []string
	for _, obj := range g.Objects(subj, pred) {
		if !obj.IsResource() {
			continue
		}
		if v := g.Value(obj, via); v != nil {
			res = append(res, *v)
		}
	}
	return res
}
