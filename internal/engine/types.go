package engine

import "stacker.dev/stacker/internal/git"

// StartResult describes a newly started branch
type StartResult struct {
	Branch git.Branch
	Base   git.Branch
	// Start is the fork point, equal to the base's tip at creation.
	Start git.ObjectName
}

// PushResult describes a publish
type PushResult struct {
	Branch git.Branch
	Remote string
	// Expected is the remote tip asserted by the lease; NonExistentObject on
	// first publish.
	Expected git.ObjectName
	// Published is the tip recorded in the remote cache.
	Published git.ObjectName
}

// FirstPublish reports whether the branch did not exist on the remote before.
func (r PushResult) FirstPublish() bool {
	return r.Expected.IsNonExistent()
}

// RebaseResult describes a rebase onto the base's current tip
type RebaseResult struct {
	Branch   git.Branch
	Base     git.Branch
	OldStart git.ObjectName
	NewStart git.ObjectName
}

// Moved reports whether the fork point changed.
func (r RebaseResult) Moved() bool {
	return r.OldStart != r.NewStart
}

// FixOptions selects an explicit branch/base pairing for Fix
type FixOptions struct {
	Branch string
	Base   string
}

// Pairing is the outcome of an explicit branch/base pairing
type Pairing struct {
	Branch git.Branch
	Base   git.Branch
	// BaseCreated is false when the branch already had the requested base.
	BaseCreated bool
	// StartCreated is false when a start reference already existed.
	StartCreated bool
}

// FindingReason explains why Fix left a branch as it was
type FindingReason int

const (
	// FindingDanglingBase indicates the base branch no longer exists
	FindingDanglingBase FindingReason = iota
	// FindingMissingBase indicates a start reference without a base reference
	FindingMissingBase
)

func (r FindingReason) String() string {
	switch r {
	case FindingDanglingBase:
		return "base branch no longer exists"
	case FindingMissingBase:
		return "start recorded without a base"
	default:
		return "unknown"
	}
}

// Finding is a condition Fix detected but does not repair
type Finding struct {
	Branch git.Branch
	Reason FindingReason
}

// FixReport summarizes what Fix changed
type FixReport struct {
	// Paired is nil unless a branch was given.
	Paired *Pairing
	// Collected lists branches whose auxiliary references were deleted.
	Collected []git.Branch
	// Repaired lists branches that received a recomputed start reference.
	Repaired   []git.Branch
	Unresolved []Finding
}

// Changed reports whether Fix wrote anything.
func (r FixReport) Changed() bool {
	paired := r.Paired != nil && (r.Paired.BaseCreated || r.Paired.StartCreated)
	return paired || len(r.Collected) > 0 || len(r.Repaired) > 0
}

// PublishState compares a branch's tip with its remote cache
type PublishState int

const (
	// NeverPublished indicates there is no remote cache
	NeverPublished PublishState = iota
	// Published indicates the remote cache equals the tip
	Published
	// Unpublished indicates the tip moved since the last push
	Unpublished
)

func (s PublishState) String() string {
	switch s {
	case Published:
		return "published"
	case Unpublished:
		return "unpublished changes"
	default:
		return "never published"
	}
}

// BranchStatus is the recorded state of one tracked branch. Object names
// are empty when the corresponding reference is absent.
type BranchStatus struct {
	Branch git.Branch
	// Base is the zero Branch when no base reference exists.
	Base    git.Branch
	HasBase bool
	Start   git.ObjectName
	Tip     git.ObjectName
	Remote  git.ObjectName
	Publish PublishState
	// Orphaned indicates the branch itself was deleted.
	Orphaned bool
	// DanglingBase indicates the base branch was deleted.
	DanglingBase bool
}
