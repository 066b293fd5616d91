package object

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedTemplate is returned when a template is missing a required
// field or carries a newline in a field the single-line header format
// forbids.
var ErrMalformedTemplate = errors.New("object: malformed template")

// Prepared is a commit or tag body split around its nonce field. Prefix ends
// immediately after "PoW-Nonce: "; Suffix holds everything the original
// format places after the nonce digits, which for tags is empty. Building the
// full body for a candidate nonce is Prefix + decimal(nonce) + Suffix, with
// no separator of any kind — exactly the original format.
type Prepared struct {
	Prefix []byte
	Suffix []byte
}

// Build assembles the complete object body for a candidate nonce.
func (p Prepared) Build(nonce uint64) []byte {
	out := make([]byte, 0, len(p.Prefix)+20+len(p.Suffix))
	out = append(out, p.Prefix...)
	out = strconv.AppendUint(out, nonce, 10)
	out = append(out, p.Suffix...)
	return out
}

// PrepareCommit renders a CommitTemplate's invariant header and message, and
// splits the remainder around the nonce field:
//
//	tree <hex>
//	[parent <hex>]
//	author <author>
//	committer <committer>
//
//	[<category prefix>]<message>
//
//	PoW-Nonce: <nonce>
//	PoW-Difficulty: <difficulty>
//	PoW-Parent-Work: <parent work>
//
// with no trailing newline after the parent-work field. It returns
// ErrMalformedTemplate if Author or Committer is empty or contains a
// newline, which the single-line header format forbids.
func PrepareCommit(t CommitTemplate) (Prepared, error) {
	if t.Author == "" || strings.Contains(t.Author, "\n") {
		return Prepared{}, ErrMalformedTemplate
	}
	if t.Committer == "" || strings.Contains(t.Committer, "\n") {
		return Prepared{}, ErrMalformedTemplate
	}

	var b strings.Builder
	b.WriteString("tree ")
	b.WriteString(t.Tree.Hex())
	b.WriteByte('\n')
	if t.HasParent {
		b.WriteString("parent ")
		b.WriteString(t.Parent.Hex())
		b.WriteByte('\n')
	}
	b.WriteString("author ")
	b.WriteString(t.Author)
	b.WriteByte('\n')
	b.WriteString("committer ")
	b.WriteString(t.Committer)
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(t.Category.prefix())
	b.WriteString(t.Message)
	b.WriteString("\n\n")
	b.WriteString("PoW-Nonce: ")

	prefix := []byte(b.String())

	suffix := make([]byte, 0, 64)
	suffix = append(suffix, "\nPoW-Difficulty: "...)
	suffix = strconv.AppendUint(suffix, uint64(t.Difficulty), 10)
	suffix = append(suffix, "\nPoW-Parent-Work: "...)
	suffix = strconv.AppendUint(suffix, t.ParentWork, 10)

	return Prepared{Prefix: prefix, Suffix: suffix}, nil
}

// PrepareTag renders a TagTemplate's invariant header and message, and splits
// the remainder around the nonce field:
//
//	object <hex>
//	type <type>
//	tag <tag>
//	[tagger <tagger>]
//	[tagtype <category>]
//
//	<message>
//
//	PoW-Nonce: <nonce>
//
// with no trailing newline and nothing after the nonce. It returns
// ErrMalformedTemplate if Type or Tag is empty, or if Type, Tag, or Tagger
// contains a newline.
func PrepareTag(t TagTemplate) (Prepared, error) {
	if t.Type == "" || strings.Contains(t.Type, "\n") {
		return Prepared{}, ErrMalformedTemplate
	}
	if t.Tag == "" || strings.Contains(t.Tag, "\n") {
		return Prepared{}, ErrMalformedTemplate
	}
	if t.HasTagger && strings.Contains(t.Tagger, "\n") {
		return Prepared{}, ErrMalformedTemplate
	}

	var b strings.Builder
	b.WriteString("object ")
	b.WriteString(t.Object.Hex())
	b.WriteByte('\n')
	b.WriteString("type ")
	b.WriteString(t.Type)
	b.WriteByte('\n')
	b.WriteString("tag ")
	b.WriteString(t.Tag)
	b.WriteByte('\n')
	if t.HasTagger {
		b.WriteString("tagger ")
		b.WriteString(t.Tagger)
		b.WriteByte('\n')
	}
	if t.TagCategory != "" && t.TagCategory != "normal" {
		b.WriteString("tagtype ")
		b.WriteString(t.TagCategory)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(t.Message)
	b.WriteString("\n\n")
	b.WriteString("PoW-Nonce: ")

	return Prepared{Prefix: []byte(b.String()), Suffix: nil}, nil
}
