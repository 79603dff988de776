package gitlib

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/require"
)

const (
	testDirPerm  = 0o755
	testFilePerm = 0o644
)

// TestRepo is a throwaway on-disk repository for tests in this and
// downstream packages.
type TestRepo struct {
	tb     testing.TB
	Path   string
	native *git2go.Repository
}

// NewTestRepo initializes an empty non-bare repository in a temp directory.
// It is freed automatically when the test finishes.
func NewTestRepo(tb testing.TB) *TestRepo {
	tb.Helper()

	dir := tb.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	require.NoError(tb, err)

	tb.Cleanup(repo.Free)

	return &TestRepo{tb: tb, Path: dir, native: repo}
}

// WriteFile creates or overwrites a file in the working directory.
func (tr *TestRepo) WriteFile(name, content string) {
	tr.tb.Helper()

	path := filepath.Join(tr.Path, name)

	require.NoError(tr.tb, os.MkdirAll(filepath.Dir(path), testDirPerm))
	require.NoError(tr.tb, os.WriteFile(path, []byte(content), testFilePerm))
}

// DeleteFile removes a file from the working directory.
func (tr *TestRepo) DeleteFile(name string) {
	tr.tb.Helper()

	require.NoError(tr.tb, os.Remove(filepath.Join(tr.Path, name)))
}

// Commit stages the whole working tree and commits it on HEAD with sig as
// both author and committer.
func (tr *TestRepo) Commit(sig Signature, message string) Hash {
	tr.tb.Helper()

	index, err := tr.native.Index()
	require.NoError(tr.tb, err)

	defer index.Free()

	require.NoError(tr.tb, index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil))
	require.NoError(tr.tb, index.UpdateAll([]string{"*"}, nil))
	require.NoError(tr.tb, index.Write())

	treeID, err := index.WriteTree()
	require.NoError(tr.tb, err)

	tree, err := tr.native.LookupTree(treeID)
	require.NoError(tr.tb, err)

	defer tree.Free()

	nativeSig := &git2go.Signature{Name: sig.Name, Email: sig.Email, When: sig.When}

	var parents []*git2go.Commit

	head, err := tr.native.Head()
	if err == nil {
		headCommit, lookupErr := tr.native.LookupCommit(head.Target())
		require.NoError(tr.tb, lookupErr)

		parents = append(parents, headCommit)

		head.Free()
	}

	oid, err := tr.native.CreateCommit("HEAD", nativeSig, nativeSig, message, tree, parents...)
	require.NoError(tr.tb, err)

	for _, parent := range parents {
		parent.Free()
	}

	return HashFromOid(oid)
}

// RemoveObject deletes the loose object file of hash, leaving the repository
// with a dangling reference to it.
func (tr *TestRepo) RemoveObject(hash Hash) {
	tr.tb.Helper()

	hexHash := hash.String()

	require.NoError(tr.tb, os.Remove(filepath.Join(tr.native.Path(), "objects", hexHash[:2], hexHash[2:])))
}

// TestSignature creates a signature for testing.
func TestSignature(name, email string, when time.Time) Signature {
	return Signature{
		Name:  name,
		Email: email,
		When:  when,
	}
}
