package git

import (
	"maps"
	"slices"
	"strings"
)

// ObjectName identifies a commit.
type ObjectName string

// NonExistentObject asserts that a reference does not exist. Git treats the
// all-zero object name this way in update-ref and push leases.
const NonExistentObject ObjectName = "0000000000000000000000000000000000000000"

// IsNonExistent reports whether o is the "no such object" sentinel.
func (o ObjectName) IsNonExistent() bool {
	return o == NonExistentObject
}

// Short returns an abbreviated object name for display.
func (o ObjectName) Short() string {
	if len(o) > 7 {
		return string(o[:7])
	}
	return string(o)
}

func (o ObjectName) String() string {
	return string(o)
}

// Ref is a single reference as read at snapshot time.
type Ref struct {
	Name string
	// Object is the resolved object. Symbolic references whose target is
	// missing have an empty Object.
	Object ObjectName
	// SymrefTarget is the referenced name for symbolic references.
	SymrefTarget string
	// Remote is the remote a branch is associated with (branch.<name>.remote).
	Remote string
}

// IsSymbolic reports whether the reference holds another reference's name.
func (r Ref) IsSymbolic() bool {
	return r.SymrefTarget != ""
}

// RemoteName returns the remote association, if any.
func (r Ref) RemoteName() (string, bool) {
	return r.Remote, r.Remote != ""
}

// Snapshot is a point-in-time reading of the repository's references. It is
// never modified after construction.
type Snapshot struct {
	refs map[string]Ref
}

// NewSnapshot builds a snapshot from the given references.
func NewSnapshot(refs ...Ref) *Snapshot {
	s := &Snapshot{refs: make(map[string]Ref, len(refs))}
	for _, r := range refs {
		s.refs[r.Name] = r
	}
	return s
}

// Lookup returns the reference with the given name.
func (s *Snapshot) Lookup(name string) (Ref, bool) {
	r, ok := s.refs[name]
	return r, ok
}

// Len returns the number of references in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.refs)
}

// Names returns all reference names in sorted order.
func (s *Snapshot) Names() []string {
	return slices.Sorted(maps.Keys(s.refs))
}

// TrackedBranches returns every branch with at least one auxiliary
// reference, sorted by name.
func (s *Snapshot) TrackedBranches() []Branch {
	seen := make(map[string]bool)
	var branches []Branch
	for name := range s.refs {
		if !strings.HasPrefix(name, RefPrefix) {
			continue
		}
		b, _, ok := ParseAuxRefName(name)
		if !ok || seen[b.Name()] {
			continue
		}
		seen[b.Name()] = true
		branches = append(branches, b)
	}
	slices.SortFunc(branches, func(a, b Branch) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return branches
}
