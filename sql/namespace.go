package sql

import (
	"fmt"
	"strings"
)

// Namespace is a named container, such as a database or a schema, optionally nested inside a
// parent namespace. Parents are shared: many namespaces and tables may refer to the same
// parent, and a namespace is never changed after it is constructed.
type Namespace struct {
	name   string
	parent *Namespace
}

func NewNamespace(nam string, parent *Namespace) (*Namespace, error) {
	if nam == "" {
		return nil, fmt.Errorf("sql: namespace: %w", ErrInvalidName)
	}
	return &Namespace{
		name:   nam,
		parent: parent,
	}, nil
}

func NewDatabase(nam string) (*Namespace, error) {
	return NewNamespace(nam, nil)
}

func NewSchema(nam string, db *Namespace) (*Namespace, error) {
	return NewNamespace(nam, db)
}

func (ns *Namespace) Name() string {
	return ns.name
}

func (ns *Namespace) Parent() *Namespace {
	return ns.parent
}

// Child returns a namespace named nam nested inside ns.
func (ns *Namespace) Child(nam string) (*Namespace, error) {
	return NewNamespace(nam, ns)
}

// Table returns a table named nam in ns.
func (ns *Namespace) Table(nam string) (Table, error) {
	return NewTable(nam, InNamespace(ns))
}

func (ns *Namespace) walk(fn func(n *Namespace)) error {
	seen := map[*Namespace]struct{}{}
	for n := ns; n != nil; n = n.parent {
		if _, ok := seen[n]; ok {
			return fmt.Errorf("sql: namespace %s: cycle at %s: %w", ns.name, n.name,
				ErrInvalidHierarchy)
		}
		seen[n] = struct{}{}
		fn(n)
	}
	return nil
}

func (ns *Namespace) Depth() (int, error) {
	var depth int
	err := ns.walk(func(n *Namespace) {
		depth += 1
	})
	if err != nil {
		return 0, err
	}
	return depth, nil
}

// Path returns the names from the root namespace down to and including ns.
func (ns *Namespace) Path() ([]string, error) {
	var path []string
	err := ns.walk(func(n *Namespace) {
		path = append(path, n.name)
	})
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

func (ns *Namespace) mustPath() []string {
	path, err := ns.Path()
	if err != nil {
		panic(err)
	}
	return path
}

func (ns *Namespace) writeTo(buf *strings.Builder, quote rune) {
	for idx, nam := range ns.mustPath() {
		if idx > 0 {
			buf.WriteByte('.')
		}
		writeQuoted(buf, nam, quote)
	}
}

func (ns *Namespace) Render(quote rune) string {
	var buf strings.Builder
	ns.writeTo(&buf, quote)
	return buf.String()
}

func (ns *Namespace) String() string {
	return ns.Render('"')
}

// Equal compares the whole chain of names up to the root; two namespaces at different depths
// are never equal.
func (ns *Namespace) Equal(other *Namespace) bool {
	if ns == nil || other == nil {
		return ns == other
	}
	if ns == other {
		return true
	}

	p1 := ns.mustPath()
	p2 := other.mustPath()
	if len(p1) != len(p2) {
		return false
	}
	for idx := range p1 {
		if p1[idx] != p2[idx] {
			return false
		}
	}
	return true
}
