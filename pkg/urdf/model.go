package urdf

import (
	"errors"
	"slices"
)

var (
	// ErrDuplicateLink is returned when two links share a name.
	ErrDuplicateLink = errors.New("duplicate link name")

	// ErrDuplicateJoint is returned when two joints share a name.
	ErrDuplicateJoint = errors.New("duplicate joint name")

	// ErrUnknownParentLink is returned when a joint's parent link does
	// not exist in the document.
	ErrUnknownParentLink = errors.New("unknown parent link")

	// ErrUnknownChildLink is returned when a joint's child link does
	// not exist in the document.
	ErrUnknownChildLink = errors.New("unknown child link")

	// ErrMultipleParents is returned when two joints claim the same
	// child link. Each link has at most one parent joint.
	ErrMultipleParents = errors.New("link has multiple parent joints")

	// ErrNoRoot is returned when every link is the child of some joint,
	// which means the graph contains a cycle or is empty.
	ErrNoRoot = errors.New("document has no root link")

	// ErrMultipleRoots is returned when more than one link has no
	// parent joint. A robot description must be a single connected tree.
	ErrMultipleRoots = errors.New("document has multiple root links")

	// ErrGraphHasCycle is returned when the link/joint graph contains a
	// directed cycle. Cycles are detected with depth-first search using
	// white/gray/black coloring.
	ErrGraphHasCycle = errors.New("document graph contains a cycle")
)

// Model is an immutable link/joint graph decoded from a robot description.
//
// Links and joints are indexed by name. Joint iteration order and each
// link's child-joint order follow document declaration order, which keeps
// downstream tree construction deterministic.
//
// The zero value is not usable - obtain a Model from [Decode].
type Model struct {
	name       string
	links      map[string]*Link
	joints     map[string]*Joint
	jointOrder []string
	root       string
}

// Name returns the robot name declared on the document root element.
func (m *Model) Name() string { return m.name }

// RootLink returns the name of the unique link with no parent joint.
func (m *Model) RootLink() string { return m.root }

// Link returns the link with the given name and true, or nil and false if
// not found.
func (m *Model) Link(name string) (*Link, bool) {
	l, ok := m.links[name]
	return l, ok
}

// Joint returns the joint with the given name and true, or nil and false
// if not found.
func (m *Model) Joint(name string) (*Joint, bool) {
	j, ok := m.joints[name]
	return j, ok
}

// JointNames returns all joint names in document declaration order.
func (m *Model) JointNames() []string { return slices.Clone(m.jointOrder) }

// LinkCount returns the number of links in the document.
func (m *Model) LinkCount() int { return len(m.links) }

// JointCount returns the number of joints in the document.
func (m *Model) JointCount() int { return len(m.joints) }

// newModel indexes the decoded links and joints, wires parent/child
// references, locates the root and validates the graph structure.
func newModel(name string, links []*Link, joints []*Joint) (*Model, error) {
	m := &Model{
		name:   name,
		links:  make(map[string]*Link, len(links)),
		joints: make(map[string]*Joint, len(joints)),
	}

	for _, l := range links {
		if _, exists := m.links[l.Name]; exists {
			return nil, ErrDuplicateLink
		}
		m.links[l.Name] = l
	}

	for _, j := range joints {
		if _, exists := m.joints[j.Name]; exists {
			return nil, ErrDuplicateJoint
		}
		parent, ok := m.links[j.ParentLink]
		if !ok {
			return nil, ErrUnknownParentLink
		}
		child, ok := m.links[j.ChildLink]
		if !ok {
			return nil, ErrUnknownChildLink
		}
		if child.ParentJoint != "" {
			return nil, ErrMultipleParents
		}
		child.ParentJoint = j.Name
		parent.ChildJoints = append(parent.ChildJoints, j.Name)
		m.joints[j.Name] = j
		m.jointOrder = append(m.jointOrder, j.Name)
	}

	if err := m.findRoot(); err != nil {
		return nil, err
	}
	return m, m.detectCycles()
}

func (m *Model) findRoot() error {
	for _, l := range m.links {
		if l.ParentJoint != "" {
			continue
		}
		if m.root != "" {
			return ErrMultipleRoots
		}
		m.root = l.Name
	}
	if m.root == "" {
		return ErrNoRoot
	}
	return nil
}

func (m *Model) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(m.links))
	var hasCycle bool

	var dfs func(link string)
	dfs = func(link string) {
		color[link] = gray
		l := m.links[link]
		for _, jn := range l.ChildJoints {
			child := m.joints[jn].ChildLink
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[link] = black
	}

	for name := range m.links {
		if color[name] == white {
			dfs(name)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
