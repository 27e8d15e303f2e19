package engine_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	snaperrors "snap.dev/snap/internal/errors"
	"snap.dev/snap/internal/engine"
	"snap.dev/snap/testhelpers"
)

func TestUndoLast(t *testing.T) {
	t.Run("refuses a manual commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "one"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("manual", "manual")
		})
		before, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		eng := newTestEngine(scene)

		_, err = eng.UndoLast(context.Background(), false)
		require.ErrorIs(t, err, snaperrors.ErrUnsafeUndo)

		var undoErr *snaperrors.UnsafeUndoError
		require.ErrorAs(t, err, &undoErr)
		require.Equal(t, before, undoErr.CommitID)
		require.Equal(t, "manual", undoErr.Subject)

		after, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, before, after)
		testhelpers.ExpectClean(t, scene.Repo)
	})

	t.Run("refuses a look-alike commit without the trailer", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "one"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("[Snap 2026-01-02 03:04:05] mine", "two")
		})
		eng := newTestEngine(scene)

		_, err := eng.UndoLast(context.Background(), false)
		require.ErrorIs(t, err, snaperrors.ErrUnsafeUndo)
		testhelpers.ExpectCommitCount(t, scene.Repo, "HEAD", 2)
	})

	t.Run("restores changes byte for byte", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		content := "line one\r\nline two\n\x00binary\xff\n"
		require.NoError(t, scene.Repo.WriteFile("data.bin", content))
		require.NoError(t, scene.Repo.WriteFile(testhelpers.ChangeFileName("1"), "changed"))
		require.NoError(t, os.Chmod(scene.Repo.FilePath("data.bin"), 0700))
		eng := newTestEngine(scene)

		saved, err := eng.Save(context.Background(), "wip", engine.SaveOptions{NoPush: true})
		require.NoError(t, err)

		outcome, err := eng.UndoLast(context.Background(), false)
		require.NoError(t, err)
		require.Equal(t, saved.Snapshot.ID, outcome.Undone.ID)
		require.False(t, outcome.Forced)
		require.False(t, outcome.WasPublished)
		require.ElementsMatch(t, []string{"data.bin", testhelpers.ChangeFileName("1")}, outcome.RestoredPaths)

		testhelpers.ExpectCommitCount(t, scene.Repo, "HEAD", 1)
		testhelpers.ExpectFileContent(t, scene.Repo, "data.bin", content)
		testhelpers.ExpectFileContent(t, scene.Repo, testhelpers.ChangeFileName("1"), "changed")
		testhelpers.ExpectStaged(t, scene.Repo, []string{"data.bin", testhelpers.ChangeFileName("1")})

		info, err := os.Stat(scene.Repo.FilePath("data.bin"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	t.Run("is not idempotent", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		eng := newTestEngine(scene)
		for _, name := range []string{"a", "b"} {
			require.NoError(t, scene.Repo.CreateChange(name, name, true))
			_, err := eng.Save(context.Background(), name, engine.SaveOptions{NoPush: true})
			require.NoError(t, err)
		}

		_, err := eng.UndoLast(context.Background(), false)
		require.NoError(t, err)
		testhelpers.ExpectCommitCount(t, scene.Repo, "HEAD", 2)

		_, err = eng.UndoLast(context.Background(), false)
		require.NoError(t, err)
		testhelpers.ExpectCommitCount(t, scene.Repo, "HEAD", 1)

		// The remaining commit is manual
		_, err = eng.UndoLast(context.Background(), false)
		require.ErrorIs(t, err, snaperrors.ErrUnsafeUndo)
	})

	t.Run("force undoes a manual commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "one"); err != nil {
				return err
			}
			return s.Repo.CreateChangeAndCommit("manual", "manual")
		})
		eng := newTestEngine(scene)

		outcome, err := eng.UndoLast(context.Background(), true)
		require.NoError(t, err)
		require.True(t, outcome.Forced)
		testhelpers.ExpectCommitCount(t, scene.Repo, "HEAD", 1)
		testhelpers.ExpectStaged(t, scene.Repo, []string{testhelpers.ChangeFileName("manual")})
	})

	t.Run("restored non-ASCII paths are unquoted", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("one", "one"); err != nil {
				return err
			}
			if err := s.Repo.WriteFile("naïve.txt", "manual"); err != nil {
				return err
			}
			if err := s.Repo.RunGitCommand("add", "naïve.txt"); err != nil {
				return err
			}
			return s.Repo.RunGitCommand("commit", "-q", "-m", "manual")
		})
		eng := newTestEngine(scene)

		outcome, err := eng.UndoLast(context.Background(), true)
		require.NoError(t, err)
		require.Equal(t, []string{"naïve.txt"}, outcome.RestoredPaths)
		testhelpers.ExpectStaged(t, scene.Repo, []string{"naïve.txt"})
	})

	t.Run("root commit leaves an unborn branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		require.NoError(t, scene.Repo.CreateChange("first", "first", true))
		eng := newTestEngine(scene)
		_, err := eng.Save(context.Background(), "first", engine.SaveOptions{NoPush: true})
		require.NoError(t, err)

		_, err = eng.UndoLast(context.Background(), false)
		require.NoError(t, err)

		state, err := eng.Probe(context.Background())
		require.NoError(t, err)
		require.True(t, state.Unborn)
		require.Equal(t, "main", state.CurrentBranch)
		testhelpers.ExpectStaged(t, scene.Repo, []string{testhelpers.ChangeFileName("first")})

		_, err = eng.UndoLast(context.Background(), false)
		require.ErrorIs(t, err, snaperrors.ErrNothingToUndo)
	})

	t.Run("warns when the snapshot was published", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.PublishedSceneSetup)
		require.NoError(t, scene.Repo.CreateChange("x", "x", true))
		eng := newTestEngine(scene)
		saved, err := eng.Save(context.Background(), "published", engine.SaveOptions{})
		require.NoError(t, err)
		require.IsType(t, engine.Published{}, saved.Push)

		outcome, err := eng.UndoLast(context.Background(), false)
		require.NoError(t, err)
		require.True(t, outcome.WasPublished)
	})
}
