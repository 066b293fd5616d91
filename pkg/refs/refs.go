// Package refs resolves the repository's current branch from a HEAD file,
// the one piece of ref state the PoW subsystem needs: which branch's
// difficulty policy applies to the commit being mined.
package refs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const headRelPath = "HEAD"

// branchRefPrefix is stripped from a "ref: refs/heads/<branch>" HEAD line to
// recover the branch name.
const branchRefPrefix = "refs/heads/"

// Refs resolves branch state from a repository's ref directory.
type Refs struct {
	gitDir string
}

// Open returns a Refs rooted at gitDir (the directory containing HEAD, e.g.
// ".git3").
func Open(gitDir string) *Refs {
	return &Refs{gitDir: gitDir}
}

// CurrentBranch returns the branch HEAD currently points to. ok is false
// when HEAD is detached (pointing directly at a commit rather than a
// branch ref); policy resolution then uses the minimum difficulty floor
// without consulting any branch, pattern, or default configuration.
func (r *Refs) CurrentBranch() (branch string, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(r.gitDir, headRelPath))
	if err != nil {
		return "", false, fmt.Errorf("refs: reading HEAD: %w", err)
	}

	line := strings.TrimSpace(string(data))
	const prefix = "ref: "
	if !strings.HasPrefix(line, prefix) {
		return "", false, nil
	}
	ref := strings.TrimPrefix(line, prefix)
	if !strings.HasPrefix(ref, branchRefPrefix) {
		return "", false, nil
	}
	return strings.TrimPrefix(ref, branchRefPrefix), true, nil
}
