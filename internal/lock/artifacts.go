package lock

import (
	"os"
	"path/filepath"
)

// artifacts lists the git lock files snap's commands can create. Per-worktree
// files live in the git directory, refs and config in the common directory.
func (g *Guard) artifacts() []string {
	paths := []string{
		filepath.Join(g.gitDir, "index.lock"),
		filepath.Join(g.gitDir, "HEAD.lock"),
		filepath.Join(g.gitDir, "ORIG_HEAD.lock"),
		filepath.Join(g.commonDir, "packed-refs.lock"),
		filepath.Join(g.commonDir, "config.lock"),
	}
	if g.branch != "" {
		ref := filepath.FromSlash(g.branch) + ".lock"
		paths = append(paths, filepath.Join(g.commonDir, "refs", "heads", ref))
		for _, remote := range g.remotes {
			paths = append(paths, filepath.Join(g.commonDir, "refs", "remotes", remote, ref))
		}
	}
	return paths
}

// BeforeCommand records which lock files are absent before a git subprocess starts
func (g *Guard) BeforeCommand(_ []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.absent = make(map[string]bool)
	for _, artifact := range g.artifacts() {
		if !exists(artifact) {
			g.absent[artifact] = true
		}
	}
}

// AfterCommand attributes lock files that appeared while an interrupted
// subprocess ran to this invocation and removes them at once, since the
// subprocess has exited. Release retries any removal that failed.
func (g *Guard) AfterCommand(_ []string, interrupted bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if interrupted && g.token != nil {
		for artifact := range g.absent {
			if !exists(artifact) {
				continue
			}
			g.created[artifact] = true
			_ = os.Remove(artifact)
		}
	}
	g.absent = nil
}

// Owned returns the lock files attributed to this invocation since the lock
// was acquired, whether or not they have been removed yet
func (g *Guard) Owned() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	owned := make([]string, 0, len(g.created))
	for artifact := range g.created {
		owned = append(owned, artifact)
	}
	return owned
}
