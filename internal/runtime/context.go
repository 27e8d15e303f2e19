package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"snap.dev/snap/internal/config"
	"snap.dev/snap/internal/engine"
	"snap.dev/snap/internal/git"
	"snap.dev/snap/internal/lock"
	"snap.dev/snap/internal/tui"
)

// Context provides access to engine and output for commands
type Context struct {
	context.Context
	Engine   engine.Engine
	Splog    *tui.Splog
	RepoRoot string
	GitDir   string
	Config   *config.Config
	// Guard serializes mutating commands and cleans up after interrupted git children
	Guard *lock.Guard
	// Interactive is false when prompts must not be shown
	Interactive bool
	// Spinner enables the progress spinner around network operations
	Spinner bool
}

// Options tunes how a context is built
type Options struct {
	// Dir is the directory to search upward from; defaults to the working directory
	Dir string
	// Out receives console output; defaults to os.Stdout
	Out io.Writer
	// Debug shows git commands and state transitions on the console
	Debug bool
	// Quiet suppresses console output except errors reported by the caller
	Quiet bool
}

// GetContext runs the pre-flight checks and builds a context for the
// repository containing opts.Dir.
func GetContext(ctx context.Context, opts Options) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := git.CheckBackend(); err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	repoRoot, err := git.FindRepoRoot(dir)
	if err != nil {
		return nil, err
	}

	runner := git.NewCommandRunner(repoRoot)
	gitDir, err := runner.GitDir(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(gitDir)
	if err != nil {
		return nil, err
	}

	splogOpts := tui.SplogOptions{Writer: opts.Out, Debug: opts.Debug || os.Getenv("DEBUG") != ""}
	if cfg.LogFile != "" || os.Getenv("SNAP_LOG_FILE") != "" || splogOpts.Debug {
		splogOpts.LogFile = tui.GetLogFilePath(cfg.LogFile)
	}
	splog, err := tui.NewSplogWithOptions(splogOpts)
	if err != nil {
		return nil, err
	}
	splog.SetQuiet(opts.Quiet)

	runner.SetTimeout(cfg.CommandTimeout)
	runner.SetLogger(splog)

	eng := engine.NewEngine(runner, engine.Options{
		Remote: cfg.Remote,
		Logger: splog,
	})

	state, err := eng.Probe(ctx)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}
	guard := lock.NewGuard(gitDir, state.CurrentBranch)
	commonDir, err := runner.GitCommonDir(ctx)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}
	guard.SetCommonDir(commonDir)
	remotes, err := runner.Remotes(ctx)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}
	guard.SetRemotes(remotes)
	runner.SetObserver(guard)

	splog.Debug("repository %s (branch %q, config remote %q)", repoRoot, state.CurrentBranch, cfg.Remote)

	return &Context{
		Context:     ctx,
		Engine:      eng,
		Splog:       splog,
		RepoRoot:    repoRoot,
		GitDir:      gitDir,
		Config:      cfg,
		Guard:       guard,
		Interactive: tui.IsTTY(),
		Spinner:     !opts.Quiet && !splogOpts.Debug,
	}, nil
}

// Close flushes and closes the log file
func (c *Context) Close() error {
	return c.Splog.Close()
}
