// Package memgit implements git.Git in memory. It keeps a small commit graph,
// references, remotes and config, and enforces the same compare-and-swap
// contracts as a real repository so stack operations can be tested without
// one.
package memgit

import (
	"context"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"

	stackererrors "stacker.dev/stacker/internal/errors"
	"stacker.dev/stacker/internal/git"
)

// Repo is an in-memory repository.
type Repo struct {
	parents   map[git.ObjectName][]git.ObjectName
	refs      map[string]git.Ref
	head      string
	upstreams map[string]string
	remotes   map[string]map[string]git.ObjectName
	config    map[string][]string
	conflicts map[string]bool
	nextID    int

	// Fetches counts FetchAllPruning calls.
	Fetches int
}

var _ git.Git = (*Repo)(nil)

// New creates a repository with a single root commit on main, checked out.
func New() *Repo {
	r := &Repo{
		parents:   make(map[git.ObjectName][]git.ObjectName),
		refs:      make(map[string]git.Ref),
		upstreams: make(map[string]string),
		remotes:   make(map[string]map[string]git.ObjectName),
		config:    make(map[string][]string),
		conflicts: make(map[string]bool),
	}
	root := r.newCommit()
	r.setBranch("main", root)
	r.head = "main"
	return r
}

func (r *Repo) newCommit(parents ...git.ObjectName) git.ObjectName {
	r.nextID++
	id := git.ObjectName(fmt.Sprintf("%040x", r.nextID))
	r.parents[id] = parents
	return id
}

func (r *Repo) setBranch(name string, object git.ObjectName) {
	b := git.NewBranch(name)
	r.refs[b.RefName()] = git.Ref{Name: b.RefName(), Object: object}
}

// Commit adds a commit on top of branch and returns it.
func (r *Repo) Commit(branch string) git.ObjectName {
	tip, ok := r.Tip(branch)
	if !ok {
		panic(fmt.Sprintf("memgit: no branch %s", branch))
	}
	id := r.newCommit(tip)
	r.setBranch(branch, id)
	return id
}

// Branch creates branch at the tip of from without switching to it.
func (r *Repo) Branch(name, from string) git.ObjectName {
	tip, ok := r.Tip(from)
	if !ok {
		panic(fmt.Sprintf("memgit: no branch %s", from))
	}
	r.setBranch(name, tip)
	return tip
}

// Checkout switches HEAD to branch.
func (r *Repo) Checkout(branch string) {
	r.head = branch
}

// Detach leaves HEAD off any branch.
func (r *Repo) Detach() {
	r.head = ""
}

// DeleteBranch removes a branch's primary reference and nothing else.
func (r *Repo) DeleteBranch(name string) {
	delete(r.refs, git.NewBranch(name).RefName())
}

// Tip returns the commit a branch points at.
func (r *Repo) Tip(branch string) (git.ObjectName, bool) {
	ref, ok := r.refs[git.NewBranch(branch).RefName()]
	return ref.Object, ok
}

// Ref returns a reference exactly as stored.
func (r *Repo) Ref(name string) (git.Ref, bool) {
	ref, ok := r.refs[name]
	return ref, ok
}

// SetRef writes a direct reference without any checks.
func (r *Repo) SetRef(name string, object git.ObjectName) {
	r.refs[name] = git.Ref{Name: name, Object: object}
}

// SetSymbolicRef writes a symbolic reference without any checks.
func (r *Repo) SetSymbolicRef(name, target string) {
	r.refs[name] = git.Ref{Name: name, SymrefTarget: target}
}

// RemoveRef deletes a reference without any checks.
func (r *Repo) RemoveRef(name string) {
	delete(r.refs, name)
}

// AddRemote registers an empty remote.
func (r *Repo) AddRemote(name string) {
	if _, ok := r.remotes[name]; !ok {
		r.remotes[name] = make(map[string]git.ObjectName)
	}
}

// SetUpstream associates a local branch with a remote.
func (r *Repo) SetUpstream(branch, remote string) {
	r.AddRemote(remote)
	r.upstreams[branch] = remote
}

// SetRemoteBranch changes a branch on a remote, as another actor would.
func (r *Repo) SetRemoteBranch(remote, branch string, object git.ObjectName) {
	r.AddRemote(remote)
	r.remotes[remote][branch] = object
}

// RemoteBranch returns the tip of a branch on a remote.
func (r *Repo) RemoteBranch(remote, branch string) (git.ObjectName, bool) {
	obj, ok := r.remotes[remote][branch]
	return obj, ok
}

// NewDetachedCommit creates a commit on top of parent that no branch points at.
func (r *Repo) NewDetachedCommit(parent git.ObjectName) git.ObjectName {
	return r.newCommit(parent)
}

// ConfigValues returns the values of a multi-valued config key.
func (r *Repo) ConfigValues(key string) []string {
	return slices.Clone(r.config[key])
}

// FailNextRebase makes the next rebase of branch stop with a conflict.
func (r *Repo) FailNextRebase(branch string) {
	r.conflicts[branch] = true
}

func (r *Repo) Snapshot(_ context.Context) (*git.Snapshot, error) {
	refs := make([]git.Ref, 0, len(r.refs))
	for _, ref := range r.refs {
		if ref.IsSymbolic() {
			if target, ok := r.refs[ref.SymrefTarget]; ok {
				ref.Object = target.Object
			}
		}
		if b, ok := git.BranchFromRefName(ref.Name); ok {
			ref.Remote = r.upstreams[b.Name()]
		}
		refs = append(refs, ref)
	}
	return git.NewSnapshot(refs...), nil
}

func (r *Repo) Head(_ context.Context) (git.Branch, error) {
	if r.head == "" {
		return git.Branch{}, stackererrors.NotOnBranch()
	}
	return git.NewBranch(r.head), nil
}

var invalidBranchName = regexp.MustCompile(`(^[-/.])|([/.]$)|(\.\.)|(//)|(@\{)|(\.lock$)|(/\.)|[\x00-\x20\x7f~^:?*\[\\]`)

func (r *Repo) ValidateBranchName(_ context.Context, name string) (git.Branch, error) {
	if name == "" || name == "@" || invalidBranchName.MatchString(name) {
		return git.Branch{}, stackererrors.InvalidArgument("fatal: '%s' is not a valid branch name", name)
	}
	return git.NewBranch(name), nil
}

func (r *Repo) TrackedBranches(ctx context.Context) (iter.Seq[git.Branch], error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Values(snap.TrackedBranches()), nil
}

func (r *Repo) ForkPoint(_ context.Context, baseRefName, branchRefName string) (git.ObjectName, error) {
	base, ok := r.resolve(baseRefName)
	if !ok {
		return "", stackererrors.NotFound("fatal: not a valid ref: %s", baseRefName)
	}
	branch, ok := r.resolve(branchRefName)
	if !ok {
		return "", stackererrors.NotFound("fatal: not a valid ref: %s", branchRefName)
	}
	baseAncestors := make(map[git.ObjectName]bool)
	for c := range r.ancestors(base) {
		baseAncestors[c] = true
	}
	for c := range r.ancestors(branch) {
		if baseAncestors[c] {
			return c, nil
		}
	}
	return "", stackererrors.NotFound("no common ancestor of %s and %s", baseRefName, branchRefName)
}

// ancestors walks the history of start breadth-first, nearest first.
func (r *Repo) ancestors(start git.ObjectName) iter.Seq[git.ObjectName] {
	return func(yield func(git.ObjectName) bool) {
		seen := map[git.ObjectName]bool{start: true}
		queue := []git.ObjectName{start}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			if !yield(c) {
				return
			}
			for _, p := range r.parents[c] {
				if !seen[p] {
					seen[p] = true
					queue = append(queue, p)
				}
			}
		}
	}
}

func (r *Repo) resolve(refName string) (git.ObjectName, bool) {
	ref, ok := r.refs[refName]
	if !ok {
		return "", false
	}
	if ref.IsSymbolic() {
		return r.resolve(ref.SymrefTarget)
	}
	return ref.Object, true
}

func (r *Repo) CreateBranch(_ context.Context, name git.Branch, base git.Branch) error {
	if _, ok := r.refs[name.RefName()]; ok {
		return stackererrors.Conflict("fatal: a branch named '%s' already exists", name)
	}
	tip, ok := r.refs[base.RefName()]
	if !ok {
		return stackererrors.NotFound("fatal: not a valid object name: '%s'", base)
	}
	r.setBranch(name.Name(), tip.Object)
	return nil
}

func (r *Repo) SwitchTo(_ context.Context, branch git.Branch) error {
	if _, ok := r.refs[branch.RefName()]; !ok {
		return stackererrors.NotFound("error: pathspec '%s' did not match any file(s) known to git", branch)
	}
	r.head = branch.Name()
	return nil
}

func (r *Repo) CreateSymbolicRef(_ context.Context, name, target, _ string) error {
	if !strings.HasPrefix(target, "refs/") {
		return stackererrors.InvalidArgument("fatal: Refusing to point %s at non-ref target", name)
	}
	r.SetSymbolicRef(name, target)
	return nil
}

func (r *Repo) CreateRef(ctx context.Context, name string, object git.ObjectName) error {
	return r.UpdateRef(ctx, name, object, git.NonExistentObject)
}

func (r *Repo) UpdateRef(_ context.Context, name string, newObject, expectedOld git.ObjectName) error {
	current, ok := r.refs[name]
	switch {
	case expectedOld.IsNonExistent() && ok:
		return stackererrors.Rejected("fatal: cannot lock ref '%s': reference already exists", name)
	case !expectedOld.IsNonExistent() && !ok:
		return stackererrors.Rejected("fatal: cannot lock ref '%s': unable to resolve reference", name)
	case ok && current.IsSymbolic():
		return stackererrors.Rejected("fatal: cannot lock ref '%s': is a symbolic ref", name)
	case ok && current.Object != expectedOld:
		return stackererrors.Rejected("fatal: cannot lock ref '%s': is at %s but expected %s", name, current.Object, expectedOld)
	}
	r.SetRef(name, newObject)
	return nil
}

func (r *Repo) DeleteRef(_ context.Context, name string, expected git.ObjectName) error {
	current, ok := r.refs[name]
	if !ok || current.IsSymbolic() || current.Object != expected {
		return stackererrors.Rejected("error: cannot lock ref '%s': is at %s but expected %s", name, current.Object, expected)
	}
	delete(r.refs, name)
	return nil
}

func (r *Repo) DeleteSymbolicRef(_ context.Context, name string) error {
	current, ok := r.refs[name]
	if !ok || !current.IsSymbolic() {
		return stackererrors.NewStatus(1, nil, []byte(fmt.Sprintf("fatal: Cannot delete %s, not a symbolic ref\n", name)))
	}
	delete(r.refs, name)
	return nil
}

func (r *Repo) Push(_ context.Context, branch git.Branch, remote string, expectedRemote git.ObjectName) error {
	branches, ok := r.remotes[remote]
	if !ok {
		return stackererrors.NewStatus(128, nil, []byte(fmt.Sprintf("fatal: '%s' does not appear to be a git repository\n", remote)))
	}
	tip, ok := r.Tip(branch.Name())
	if !ok {
		return stackererrors.NotFound("error: src refspec %s does not match any", branch.RefName())
	}
	current, exists := branches[branch.Name()]
	if (expectedRemote.IsNonExistent() && exists) || (!expectedRemote.IsNonExistent() && current != expectedRemote) {
		return stackererrors.Rejected("!\t%s:%s\t[rejected] (stale info)", branch.RefName(), branch.RefName())
	}
	branches[branch.Name()] = tip
	return nil
}

func (r *Repo) RebaseOnto(_ context.Context, branch git.Branch, onto, upstream git.ObjectName) error {
	if r.conflicts[branch.Name()] {
		delete(r.conflicts, branch.Name())
		return stackererrors.NewRebaseConflictError(branch.Name(), nil, []byte("CONFLICT (content): Merge conflict in test.txt\n"))
	}
	tip, ok := r.Tip(branch.Name())
	if !ok {
		return stackererrors.NewBranchNotFoundError(branch.Name())
	}
	if onto == upstream {
		return nil
	}

	// Collect (upstream, tip] along first parents, oldest last.
	var replay []git.ObjectName
	for c := tip; c != upstream; {
		replay = append(replay, c)
		parents := r.parents[c]
		if len(parents) == 0 {
			return stackererrors.NewStatus(1, nil, []byte(fmt.Sprintf("fatal: %s is not an ancestor of %s\n", upstream, branch)))
		}
		c = parents[0]
	}

	newTip := onto
	for range replay {
		newTip = r.newCommit(newTip)
	}
	r.setBranch(branch.Name(), newTip)
	return nil
}

func (r *Repo) FetchAllPruning(_ context.Context) error {
	r.Fetches++
	for name := range r.refs {
		if strings.HasPrefix(name, "refs/remotes/") {
			delete(r.refs, name)
		}
	}
	for remote, branches := range r.remotes {
		for branch, obj := range branches {
			name := "refs/remotes/" + remote + "/" + branch
			r.refs[name] = git.Ref{Name: name, Object: obj}
		}
	}
	return nil
}

func (r *Repo) AddConfigValue(_ context.Context, key, value string) error {
	if !slices.Contains(r.config[key], value) {
		r.config[key] = append(r.config[key], value)
	}
	return nil
}

func (r *Repo) RemoveConfigValuesMatching(_ context.Context, key, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return stackererrors.InvalidArgument("error: invalid pattern: %s", pattern)
	}
	r.config[key] = slices.DeleteFunc(r.config[key], re.MatchString)
	if len(r.config[key]) == 0 {
		delete(r.config, key)
	}
	return nil
}
