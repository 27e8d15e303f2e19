package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
// The repository lives in Dir/repo so bare remotes and clones can sit beside it.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// Global and system git config and snap's user config are masked for the
// duration of the test.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_TERMINAL_PROMPT", "0")

	tmpDir := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	// snap's own settings come only from the scene
	t.Setenv("SNAP_CONFIG", filepath.Join(tmpDir, "snap-config.yaml"))
	t.Setenv("SNAP_REMOTE", "")
	t.Setenv("SNAP_NO_PUSH", "")
	t.Setenv("SNAP_LOG_FILE", "")

	repo, err := NewGitRepo(filepath.Join(tmpDir, "repo"))
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// AddRemote creates a bare repository beside the scene repo and registers it as name.
func (s *Scene) AddRemote(name string) (string, error) {
	path := filepath.Join(s.Dir, name+".git")
	if err := s.Repo.CreateBareRemote(name, path); err != nil {
		return "", err
	}
	return path, nil
}

// CloneRemote clones the bare remote name into a sibling working copy.
// It simulates a second machine pushing to the same remote.
func (s *Scene) CloneRemote(name string) (*GitRepo, error) {
	return CloneGitRepo(filepath.Join(s.Dir, name+".git"), filepath.Join(s.Dir, name+"-clone"))
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// PublishedSceneSetup creates a commit and publishes main to a bare "origin".
func PublishedSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	if _, err := scene.AddRemote("origin"); err != nil {
		return err
	}
	return scene.Repo.PushBranch("origin", "main")
}
