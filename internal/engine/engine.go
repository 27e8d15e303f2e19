package engine

import (
	"time"

	"github.com/google/uuid"

	"snap.dev/snap/internal/git"
)

// DefaultRemote is the remote preferred when a branch has no upstream
const DefaultRemote = "origin"

// Options configures an engine
type Options struct {
	// Remote is preferred when the current branch tracks nothing
	Remote string
	Logger git.Logger
	// Clock supplies snapshot timestamps
	Clock func() time.Time
	// NewID supplies the Snap-Id trailer value
	NewID func() string
}

// engineImpl implements Engine over a git.Runner
type engineImpl struct {
	git    git.Runner
	remote string
	logger git.Logger
	clock  func() time.Time
	newID  func() string
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// NewEngine creates a new engine instance
func NewEngine(runner git.Runner, opts Options) Engine {
	e := &engineImpl{
		git:    runner,
		remote: opts.Remote,
		logger: opts.Logger,
		clock:  opts.Clock,
		newID:  opts.NewID,
	}
	if e.remote == "" {
		e.remote = DefaultRemote
	}
	if e.logger == nil {
		e.logger = nopLogger{}
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.newID == nil {
		e.newID = func() string { return uuid.NewString() }
	}
	return e
}
