// Package object builds the byte-exact commit and tag templates that the
// mining engine hashes, and splits them into a fixed prefix, a nonce field,
// and a fixed suffix so that the prefix's hash state can be computed once and
// cloned per candidate nonce.
package object

import "git3/pkg/hash"

// Kind distinguishes the two object types that can carry proof-of-work.
type Kind int

const (
	KindCommit Kind = iota
	KindTag
)

// CommitCategory tags the three flavors of commit the original system mines.
// Only CommitNormal carries no message prefix.
type CommitCategory int

const (
	CommitNormal CommitCategory = iota
	CommitFreeze
	CommitClean
)

func (c CommitCategory) prefix() string {
	switch c {
	case CommitFreeze:
		return "[FREEZE] "
	case CommitClean:
		return "[CLEAN] "
	default:
		return ""
	}
}

// CommitTemplate holds everything needed to build a commit object except the
// winning nonce, which Prepared.Build folds in. Difficulty and ParentWork are
// rendered by PrepareCommit into the PoW-Difficulty/PoW-Parent-Work trailer.
type CommitTemplate struct {
	Tree      hash.Digest
	Parent    hash.Digest // zero value (NullDigest) means no parent
	HasParent bool
	Author    string
	Committer string
	Category  CommitCategory
	Message   string

	Difficulty  uint32
	ParentWork  uint64
}

// TagTemplate holds everything needed to build a tag object except the
// winning nonce.
type TagTemplate struct {
	Object  hash.Digest
	Type    string
	Tag     string
	Tagger  string
	HasTagger bool
	// TagCategory is emitted as a "tagtype <value>\n" line when it is
	// anything other than "normal" or empty, matching the original distinction
	// between ordinary release tags and other tag categories.
	TagCategory string
	Message     string
}
