// Mine is the command-line entry point for mining a single proof-of-work
// commit or tag against an existing object store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git3/pkg/config"
	"git3/pkg/difficulty"
	"git3/pkg/hash"
	"git3/pkg/object"
	"git3/pkg/policy"
	"git3/pkg/pow"
	"git3/pkg/refs"
	"git3/pkg/store"
)

// shortID returns a short prefix of a digest's hex form for logging.
func shortID(d hash.Digest) string {
	h := d.Hex()
	if len(h) <= 8 {
		return h
	}
	return h[:8]
}

func main() {
	kind := flag.String("kind", "commit", "object kind to mine: commit or tag")
	gitDir := flag.String("git-dir", ".git3", "repository metadata directory")

	tree := flag.String("tree", "", "commit: hex digest of the tree object (required)")
	parent := flag.String("parent", "", "commit: hex digest of the parent commit, if any")
	author := flag.String("author", "", "commit: author line (required)")
	committer := flag.String("committer", "", "commit: committer line, defaults to author")
	category := flag.String("category", "normal", "commit: category — normal, freeze, or clean")

	object_ := flag.String("object", "", "tag: hex digest of the tagged object (required)")
	objType := flag.String("type", "commit", "tag: type of the tagged object")
	tagName := flag.String("tag", "", "tag: name of the tag (required)")
	tagger := flag.String("tagger", "", "tag: tagger line, omitted if empty")
	tagCategory := flag.String("tagcategory", "normal", "tag: category, emitted as tagtype when not normal")

	message := flag.String("message", "", "message for the commit or tag (required)")
	branch := flag.String("branch", "", "branch to resolve difficulty policy for, defaults to HEAD's current branch")
	difficultyOverride := flag.Int("difficulty", 0, "explicit difficulty in bits, overriding policy resolution")
	workers := flag.Int("workers", 1, "number of mining worker goroutines")
	verbose := flag.Bool("verbose", false, "log sampled mining progress")

	flag.Parse()

	objStore, err := store.Open(*gitDir + "/objects")
	if err != nil {
		log.Fatalf("opening object store: %v", err)
	}
	cfgStore, err := config.Open(*gitDir + "/pow-config.toml")
	if err != nil {
		log.Fatalf("opening config store: %v", err)
	}

	difficultyBits := resolveDifficulty(cfgStore, *gitDir, *branch, *difficultyOverride)

	var prepared object.Prepared
	var parentWork uint64

	switch *kind {
	case "commit":
		if *tree == "" || *author == "" || *message == "" {
			fmt.Println("Usage: mine -kind commit -tree <hex> -author <line> -message <text> [-parent <hex>] [-branch <name>] [-difficulty <bits>] [-workers <n>]")
			os.Exit(1)
		}
		if *committer == "" {
			*committer = *author
		}
		prepared, parentWork = prepareCommit(objStore, *tree, *parent, *author, *committer, *category, *message, difficultyBits)

	case "tag":
		if *object_ == "" || *tagName == "" || *message == "" {
			fmt.Println("Usage: mine -kind tag -object <hex> -tag <name> -message <text> [-type <kind>] [-tagger <line>] [-difficulty <bits>] [-workers <n>]")
			os.Exit(1)
		}
		prepared = prepareTag(*object_, *objType, *tagName, *tagger, *tagCategory, *message)

	default:
		log.Fatalf("unknown -kind %q: must be commit or tag", *kind)
	}

	log.Printf("mining proof-of-work %s (difficulty: %d bits, workers: %d)...", *kind, difficultyBits, *workers)

	token := pow.NewCancelToken()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("mining interrupted, cancelling...")
		token.Cancel()
	}()

	start := time.Now()
	engine := pow.New(*workers)
	var progress pow.ProgressFunc
	if *verbose {
		progress = func(nonce uint64, digest hash.Digest) {
			log.Printf("  mining... (nonce: %d, hash: %s)", nonce, shortID(digest))
		}
	}
	result, err := engine.Mine(context.Background(), token, objStore, prepared, difficultyBits, progress)
	if err != nil {
		log.Fatalf("mining failed: %v", err)
	}

	bits := difficulty.LeadingZeroBits(result.Digest)
	work := difficulty.Work(bits)
	total := parentWork + work

	log.Printf("found valid PoW %s: %s", *kind, result.Digest.Hex())
	log.Printf("  difficulty: %d bits (required: %d)", bits, difficultyBits)
	log.Printf("  work: %s  cumulative: %s", difficulty.FormatWork(work), difficulty.FormatWork(total))
	log.Printf("  nonce: %d  elapsed: %s", result.Nonce, time.Since(start).Round(time.Millisecond))
}

// resolveDifficulty applies an explicit override if given, otherwise resolves
// branch policy — falling to the floor directly when HEAD is detached.
func resolveDifficulty(cfgStore *config.Store, gitDir, branchFlag string, override int) uint32 {
	if override != 0 {
		return uint32(override)
	}

	branchName := branchFlag
	onBranch := branchName != ""
	if !onBranch {
		r := refs.Open(gitDir)
		resolved, ok, err := r.CurrentBranch()
		if err != nil {
			log.Fatalf("resolving current branch: %v", err)
		}
		branchName, onBranch = resolved, ok
	}

	bits := policy.RequiredDifficultyForBranch(cfgStore, branchName, onBranch)
	if onBranch {
		log.Printf("resolved difficulty for branch %q: %d bits", branchName, bits)
	} else {
		log.Printf("HEAD is detached, using floor difficulty: %d bits", bits)
	}
	return bits
}

// prepareCommit builds and serializes a commit template, looking up the
// parent's cumulative work through walker when a parent is given.
func prepareCommit(objStore *store.Store, treeHex, parentHex, author, committer, category, message string, difficultyBits uint32) (object.Prepared, uint64) {
	treeDigest, err := hash.FromHex(treeHex)
	if err != nil {
		log.Fatalf("invalid -tree: %v", err)
	}

	var parentDigest hash.Digest
	hasParent := parentHex != ""
	if hasParent {
		parentDigest, err = hash.FromHex(parentHex)
		if err != nil {
			log.Fatalf("invalid -parent: %v", err)
		}
	}

	var parentWork uint64
	if hasParent {
		walker := difficulty.NewWalker(objStore)
		parentWork, err = walker.CumulativeWork(parentDigest)
		if err != nil {
			log.Fatalf("computing parent cumulative work: %v", err)
		}
		if parentWork > 0 {
			log.Printf("parent cumulative work: %s", difficulty.FormatWork(parentWork))
		}
	}

	tmpl := object.CommitTemplate{
		Tree:       treeDigest,
		Parent:     parentDigest,
		HasParent:  hasParent,
		Author:     author,
		Committer:  committer,
		Category:   parseCategory(category),
		Message:    message,
		Difficulty: difficultyBits,
		ParentWork: parentWork,
	}
	prepared, err := object.PrepareCommit(tmpl)
	if err != nil {
		log.Fatalf("invalid commit template: %v", err)
	}
	return prepared, parentWork
}

// prepareTag builds and serializes a tag template.
func prepareTag(objectHex, objType, tagName, tagger, tagCategory, message string) object.Prepared {
	objectDigest, err := hash.FromHex(objectHex)
	if err != nil {
		log.Fatalf("invalid -object: %v", err)
	}

	tmpl := object.TagTemplate{
		Object:      objectDigest,
		Type:        objType,
		Tag:         tagName,
		Tagger:      tagger,
		HasTagger:   tagger != "",
		TagCategory: tagCategory,
		Message:     message,
	}
	prepared, err := object.PrepareTag(tmpl)
	if err != nil {
		log.Fatalf("invalid tag template: %v", err)
	}
	return prepared
}

func parseCategory(s string) object.CommitCategory {
	switch s {
	case "freeze":
		return object.CommitFreeze
	case "clean":
		return object.CommitClean
	default:
		return object.CommitNormal
	}
}
