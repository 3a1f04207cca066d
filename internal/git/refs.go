package git

import "strings"

const (
	// RefPrefix is the private namespace holding stacking metadata.
	RefPrefix = "refs/stacker/"

	branchRefPrefix = "refs/heads/"
	baseRefPrefix   = RefPrefix + "base/"
	startRefPrefix  = RefPrefix + "start/"
	remoteRefPrefix = RefPrefix + "remote/"
)

// AuxKind identifies one of the three auxiliary references of a branch.
type AuxKind int

const (
	AuxBase AuxKind = iota
	AuxStart
	AuxRemote
)

func (k AuxKind) String() string {
	switch k {
	case AuxBase:
		return "base"
	case AuxStart:
		return "start"
	default:
		return "remote"
	}
}

// Branch is a validated branch name.
type Branch struct {
	name string
}

// NewBranch wraps an already validated branch name.
func NewBranch(name string) Branch {
	return Branch{name: name}
}

// Name returns the short branch name.
func (b Branch) Name() string {
	return b.name
}

func (b Branch) String() string {
	return b.name
}

// RefName returns the branch's primary reference.
func (b Branch) RefName() string {
	return branchRefPrefix + b.name
}

// BaseRefName returns the symbolic reference pointing at the base branch.
func (b Branch) BaseRefName() string {
	return baseRefPrefix + b.name
}

// StartRefName returns the reference holding the fork-point commit.
func (b Branch) StartRefName() string {
	return startRefPrefix + b.name
}

// RemoteRefName returns the reference caching the last published commit.
func (b Branch) RemoteRefName() string {
	return remoteRefPrefix + b.name
}

// AuxRefName returns the auxiliary reference of the given kind.
func (b Branch) AuxRefName(kind AuxKind) string {
	switch kind {
	case AuxBase:
		return b.BaseRefName()
	case AuxStart:
		return b.StartRefName()
	default:
		return b.RemoteRefName()
	}
}

// BranchFromRefName returns the branch for a refs/heads/ reference.
func BranchFromRefName(refName string) (Branch, bool) {
	name, ok := strings.CutPrefix(refName, branchRefPrefix)
	if !ok || name == "" {
		return Branch{}, false
	}
	return NewBranch(name), true
}

// ParseAuxRefName maps an auxiliary reference back to its branch.
func ParseAuxRefName(refName string) (Branch, AuxKind, bool) {
	for _, kind := range []AuxKind{AuxBase, AuxStart, AuxRemote} {
		prefix := RefPrefix + kind.String() + "/"
		if name, ok := strings.CutPrefix(refName, prefix); ok && name != "" {
			return NewBranch(name), kind, true
		}
	}
	return Branch{}, 0, false
}
