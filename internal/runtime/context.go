package runtime

import (
	"context"
	"fmt"
	"os"

	"stacker.dev/stacker/internal/config"
	"stacker.dev/stacker/internal/engine"
	"stacker.dev/stacker/internal/git"
	"stacker.dev/stacker/internal/tui"
)

// Context provides access to engine and output for commands
type Context struct {
	Context  context.Context
	Engine   engine.Engine
	Splog    *tui.Splog
	RepoRoot string
	Config   *config.RepoConfig
	// Git is the capability the engine runs on. Actions only use it for
	// reads that are not stack operations, such as the current branch.
	Git git.Git
}

// NewContext creates a context around an existing capability. Used by tests
// to run actions against an in-memory repository.
func NewContext(ctx context.Context, g git.Git, splog *tui.Splog) *Context {
	return &Context{
		Context: ctx,
		Engine:  engine.New(g, engine.Options{DefaultRemote: config.DefaultRemote}),
		Splog:   splog,
		Config:  &config.RepoConfig{},
		Git:     g,
	}
}

// GetContext discovers the repository containing dir and wires the engine to
// it. Every git invocation is recorded by splog and echoed when
// printCommands is enabled.
func GetContext(ctx context.Context, splog *tui.Splog, dir string) (*Context, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repoRoot, err := git.GetRepoRoot(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	echo := cfg.PrintCommandsEnabled()
	runner := git.NewCommandRunner(repoRoot).WithTrace(func(args []string) {
		splog.Command(args, echo)
	})
	repo, err := git.NewRepo(repoRoot, runner)
	if err != nil {
		return nil, err
	}

	return &Context{
		Context:  ctx,
		Engine:   engine.New(repo, engine.Options{DefaultRemote: cfg.RemoteOrDefault()}),
		Splog:    splog,
		RepoRoot: repoRoot,
		Config:   cfg,
		Git:      repo,
	}, nil
}
