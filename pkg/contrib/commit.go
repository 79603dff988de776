package contrib

import "time"

// Commit is the read-only view of one commit needed for aggregation.
type Commit struct {
	Hash       string
	Author     string
	AuthorName string
	When       time.Time
	Insertions int
	Deletions  int
}

// CommitResult carries a commit that was read successfully, or the reason
// its statistics could not be computed. Hash and Author are set either way.
type CommitResult struct {
	Commit Commit
	Err    error
}

// OK reports whether the commit statistics are usable.
func (r CommitResult) OK() bool {
	return r.Err == nil
}
