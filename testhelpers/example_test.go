package testhelpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"snap.dev/snap/testhelpers"
)

func TestSceneBasics(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	branch, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	testhelpers.ExpectCommits(t, scene.Repo, "HEAD", []string{"1"})
	testhelpers.ExpectClean(t, scene.Repo)
}

func TestSceneRemoteAndClone(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.PublishedSceneSetup)

	clone, err := scene.CloneRemote("origin")
	require.NoError(t, err)
	require.NoError(t, clone.CreateChangeAndCommit("from clone", "clone"))
	require.NoError(t, clone.RunGitCommand("push", "-q", "origin", "main"))

	require.NoError(t, scene.Repo.RunGitCommand("fetch", "-q", "origin"))
	testhelpers.ExpectCommitCount(t, scene.Repo, "origin/main", 2)
	testhelpers.ExpectCommitCount(t, scene.Repo, "HEAD", 1)
}

func TestCreateChangeStagesUnlessAskedNotTo(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	require.NoError(t, scene.Repo.CreateChange("a", "staged", false))
	require.NoError(t, scene.Repo.CreateChange("b", "loose", true))

	testhelpers.ExpectStaged(t, scene.Repo, []string{testhelpers.ChangeFileName("staged")})
	testhelpers.ExpectFileContent(t, scene.Repo, testhelpers.ChangeFileName("loose"), "b")
}
