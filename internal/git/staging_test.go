package git_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"snap.dev/snap/internal/git"
	"snap.dev/snap/testhelpers"
)

func TestStageAll(t *testing.T) {
	t.Run("stages modifications, new files and deletions", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("keep", "keep"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("gone", "gone")
		})

		require.NoError(t, scene.Repo.WriteFile(testhelpers.ChangeFileName("keep"), "changed"))
		require.NoError(t, scene.Repo.WriteFile("nested/new.txt", "new"))
		require.NoError(t, os.Remove(scene.Repo.FilePath(testhelpers.ChangeFileName("gone"))))

		runner := git.NewCommandRunner(scene.Repo.Dir)
		require.NoError(t, runner.StageAll(context.Background()))

		staged, err := runner.StagedFiles(context.Background())
		require.NoError(t, err)
		require.ElementsMatch(t, []string{
			testhelpers.ChangeFileName("keep"),
			testhelpers.ChangeFileName("gone"),
			"nested/new.txt",
		}, staged)
	})

	t.Run("non-ASCII paths are returned unquoted", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.WriteFile("naïve.txt", "n"))
		require.NoError(t, scene.Repo.WriteFile("dir with space/日本.txt", "j"))

		runner := git.NewCommandRunner(scene.Repo.Dir)
		require.NoError(t, runner.StageAll(context.Background()))

		staged, err := runner.StagedFiles(context.Background())
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"naïve.txt", "dir with space/日本.txt"}, staged)
	})

	t.Run("clean tree stages nothing", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		runner := git.NewCommandRunner(scene.Repo.Dir)

		require.NoError(t, runner.StageAll(context.Background()))
		staged, err := runner.StagedFiles(context.Background())
		require.NoError(t, err)
		require.Empty(t, staged)
	})
}

func TestCommit(t *testing.T) {
	t.Run("keeps the message verbatim", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, scene.Repo.CreateChange("two", "two", false))
		runner := git.NewCommandRunner(scene.Repo.Dir)

		message := "# not a comment\n\nTrailer: value"
		sha, err := runner.Commit(context.Background(), message)
		require.NoError(t, err)

		head, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, head, sha)

		actual, err := scene.Repo.LastCommitMessage()
		require.NoError(t, err)
		require.Equal(t, message, actual)
	})

	t.Run("fails with nothing staged", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		runner := git.NewCommandRunner(scene.Repo.Dir)

		_, err := runner.Commit(context.Background(), "empty")
		require.Error(t, err)
		testhelpers.ExpectCommitCount(t, scene.Repo, "HEAD", 1)
	})
}
