package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	snaperrors "snap.dev/snap/internal/errors"
)

// FileName is the name of snap's lock file inside the git directory
const FileName = "snap.lock"

// Token represents ownership of the repository lock for one invocation
type Token struct {
	ID         string
	PID        int
	AcquiredAt time.Time
}

// Guard owns the repository lock and tracks git lock artifacts created by
// this invocation. It implements git.CommandObserver.
type Guard struct {
	gitDir    string
	commonDir string
	branch    string
	remotes   []string
	path      string
	fl        *flock.Flock

	mu      sync.Mutex
	token   *Token
	absent  map[string]bool
	created map[string]bool
}

// NewGuard creates a guard for the repository at gitDir. branch is the
// current branch; its ref lock is tracked along with the index and HEAD locks.
func NewGuard(gitDir, branch string) *Guard {
	path := filepath.Join(gitDir, FileName)
	return &Guard{
		gitDir:    gitDir,
		commonDir: gitDir,
		branch:    branch,
		path:      path,
		fl:        flock.New(path),
		created:   make(map[string]bool),
	}
}

// SetCommonDir sets the directory holding refs, packed-refs and config when
// it differs from the git directory, as in a linked worktree
func (g *Guard) SetCommonDir(dir string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if dir != "" {
		g.commonDir = dir
	}
}

// SetRemotes sets the remotes whose tracking ref for the current branch a
// fetch may lock
func (g *Guard) SetRemotes(remotes []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.remotes = remotes
}

// Path returns the lock file path
func (g *Guard) Path() string {
	return g.path
}

// Token returns the held token, or nil when the lock is not held
func (g *Guard) Token() *Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// Acquire takes the repository lock without waiting. It fails with a
// LockHeldError when another snap process holds it or when a git lock file
// is already present.
func (g *Guard) Acquire(ctx context.Context) (*Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token != nil {
		return nil, fmt.Errorf("lock %s already acquired by this invocation", g.path)
	}

	locked, err := g.fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", g.path, err)
	}
	if !locked {
		return nil, snaperrors.NewLockHeldError(g.path, readHolderPID(g.path))
	}

	for _, artifact := range g.artifacts() {
		if exists(artifact) {
			_ = g.fl.Unlock()
			return nil, snaperrors.NewLockHeldError(artifact, 0)
		}
	}

	token := &Token{
		ID:         uuid.NewString(),
		PID:        os.Getpid(),
		AcquiredAt: time.Now(),
	}
	content := fmt.Sprintf("%d\n%s\n", token.PID, token.ID)
	if err := os.WriteFile(g.path, []byte(content), 0600); err != nil {
		_ = g.fl.Unlock()
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}

	g.token = token
	g.created = make(map[string]bool)
	return token, nil
}

// Release removes git lock files attributed to this invocation and releases
// the repository lock. It is safe to call when the lock is not held.
func (g *Guard) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.token == nil {
		return nil
	}

	var errs []string
	for artifact := range g.created {
		if err := os.Remove(artifact); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err.Error())
		}
	}
	g.created = make(map[string]bool)

	// the file stays; only its content identifies a holder
	if readToken(g.path) == g.token.ID {
		if err := os.Truncate(g.path, 0); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := g.fl.Unlock(); err != nil {
		errs = append(errs, err.Error())
	}
	g.token = nil

	if len(errs) > 0 {
		return fmt.Errorf("failed to release lock: %s", strings.Join(errs, "; "))
	}
	return nil
}

func readHolderPID(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	first, _, _ := strings.Cut(string(data), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0
	}
	return pid
}

func readToken(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return ""
	}
	return strings.TrimSpace(lines[1])
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
