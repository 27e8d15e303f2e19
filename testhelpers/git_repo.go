package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", "-q", dir, "-b", "main")
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w: %s", err, output)
	}
	repo := &GitRepo{Dir: dir}
	if err := repo.configureUser(); err != nil {
		return nil, err
	}
	return repo, nil
}

// CloneGitRepo clones source into dir and configures a test user.
func CloneGitRepo(source, dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "clone", "-q", source, dir)
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to clone repo: %w: %s", err, output)
	}
	repo := &GitRepo{Dir: dir}
	if err := repo.configureUser(); err != nil {
		return nil, err
	}
	return repo, nil
}

// configureUser sets the identity required for commits
func (r *GitRepo) configureUser() error {
	if err := r.runGitCommand("config", "user.name", "Test User"); err != nil {
		return err
	}
	if err := r.runGitCommand("config", "user.email", "test@example.com"); err != nil {
		return err
	}
	return r.runGitCommand("config", "commit.gpgsign", "false")
}

// gitEnv avoids reading global and system git config so tests are hermetic
func gitEnv() []string {
	return append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1", "LC_ALL=C")
}

// runGitCommand executes a git command in the repository directory.
func (r *GitRepo) runGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, output)
	}
	return nil
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// runGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) runGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RunGitCommandAndGetOutput executes a git command and returns its output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	return r.runGitCommandAndGetOutput(args...)
}

// FilePath returns the absolute path of a file in the working tree
func (r *GitRepo) FilePath(name string) string {
	return filepath.Join(r.Dir, name)
}

// WriteFile writes content to a file in the working tree without staging it.
func (r *GitRepo) WriteFile(name, content string) error {
	path := r.FilePath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadFile returns the contents of a file in the working tree.
func (r *GitRepo) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(r.FilePath(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateChange creates a file change in the repository.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	if err := r.WriteFile(fileName, textValue); err != nil {
		return err
	}
	if !unstaged {
		return r.runGitCommand("add", fileName)
	}
	return nil
}

// ChangeFileName returns the file CreateChange writes for prefix
func ChangeFileName(prefix string) string {
	if prefix == "" {
		return textFileName
	}
	return prefix + "_" + textFileName
}

// CreateChangeAndCommit creates a file change and commits it.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	if err := r.runGitCommand("add", "."); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-q", "-m", textValue)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-q", "-b", name)
}

// CheckoutBranch checks out a branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-q", name)
}

// GitDir returns the absolute git directory of the repository.
func (r *GitRepo) GitDir() (string, error) {
	return r.runGitCommandAndGetOutput("rev-parse", "--absolute-git-dir")
}

// RebaseInProgress checks if a rebase is in progress.
func (r *GitRepo) RebaseInProgress() bool {
	gitDir, err := r.GitDir()
	if err != nil {
		return false
	}
	for _, name := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(gitDir, name)); err == nil {
			return true
		}
	}
	return false
}

// CurrentBranchName returns the name of the current branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.runGitCommandAndGetOutput("branch", "--show-current")
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.runGitCommandAndGetOutput("rev-parse", rev)
}

// GetCurrentSHA returns the SHA of HEAD.
func (r *GitRepo) GetCurrentSHA() (string, error) {
	return r.GetRevision("HEAD")
}

// ListCurrentBranchCommitSubjects returns the commit subjects on the current branch, newest first.
func (r *GitRepo) ListCurrentBranchCommitSubjects() ([]string, error) {
	output, err := r.runGitCommandAndGetOutput("log", "--format=%s")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// LastCommitMessage returns the full message of HEAD.
func (r *GitRepo) LastCommitMessage() (string, error) {
	return r.runGitCommandAndGetOutput("log", "-1", "--format=%B")
}

// CommitCount returns the number of commits reachable from rev.
func (r *GitRepo) CommitCount(rev string) (int, error) {
	output, err := r.runGitCommandAndGetOutput("rev-list", "--count", rev)
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(output, "%d", &count); err != nil {
		return 0, fmt.Errorf("failed to parse commit count: %w", err)
	}
	return count, nil
}

// StatusPorcelain returns `git status --porcelain` output.
func (r *GitRepo) StatusPorcelain() (string, error) {
	return r.runGitCommandAndGetOutput("status", "--porcelain")
}

// splitLines splits a string by newlines and returns non-empty lines.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// CreateBareRemote creates a bare git repository at path and adds it as remote name.
func (r *GitRepo) CreateBareRemote(name, path string) error {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "init", "-q", "--bare", path)
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to create bare repo: %w: %s", err, output)
	}
	if err := r.runGitCommand("remote", "add", name, path); err != nil {
		return fmt.Errorf("failed to add remote: %w", err)
	}
	return nil
}

// PushBranch pushes a branch to a remote and sets it as upstream.
func (r *GitRepo) PushBranch(remote, branch string) error {
	return r.runGitCommand("push", "-q", "-u", remote, branch)
}

// InstallHook writes an executable hook script.
func (r *GitRepo) InstallHook(name, script string) error {
	gitDir, err := r.GitDir()
	if err != nil {
		return err
	}
	hookDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hookDir, 0700); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}
	hookPath := filepath.Join(hookDir, name)
	// nolint:gosec // Hook must be executable
	if err := os.WriteFile(hookPath, []byte(script), 0700); err != nil {
		return fmt.Errorf("failed to write hook: %w", err)
	}
	return nil
}
