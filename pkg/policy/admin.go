package policy

import (
	"fmt"

	"git3/pkg/difficulty"
)

// ConfigWriter is the write side of the config store that administration
// needs, narrowed from the full Store API.
type ConfigWriter interface {
	ConfigReader
	Set(key string, value int) error
	Unset(key string) error
	Keys() []string
}

// maxBranchDifficulty bounds SetBranch and SetDefault. Pattern overrides set
// through SetPattern are validated against a much wider range; the two
// ranges are intentionally different, carried over unchanged from how this
// configuration has always been validated.
const maxBranchDifficulty = 32

// maxPatternDifficulty bounds SetPattern.
const maxPatternDifficulty = 256

// recognizedPatterns is the closed set of pattern keys SetPattern/List
// understand, in display order.
var recognizedPatterns = []string{"dev", "feature", "main", "release", "default"}

// Admin administers the branch and pattern difficulty overrides a
// ConfigWriter holds.
type Admin struct {
	cfg ConfigWriter
}

// NewAdmin wraps cfg for policy administration.
func NewAdmin(cfg ConfigWriter) *Admin {
	return &Admin{cfg: cfg}
}

// SetBranch sets an exact per-branch override. difficulty must be between
// difficulty.MinDifficulty and maxBranchDifficulty inclusive.
func (a *Admin) SetBranch(branch string, bits uint32) error {
	if bits < difficulty.MinDifficulty || bits > maxBranchDifficulty {
		return fmt.Errorf("%w: branch difficulty must be between %d and %d bits",
			ErrOutOfRange, difficulty.MinDifficulty, maxBranchDifficulty)
	}
	return a.cfg.Set(branchKey(branch), int(bits))
}

// UnsetBranch removes a branch's exact override, if any.
func (a *Admin) UnsetBranch(branch string) error {
	return a.cfg.Unset(branchKey(branch))
}

// SetDefault sets the fallback difficulty used when no branch or pattern
// match applies. Subject to the same range as SetBranch.
func (a *Admin) SetDefault(bits uint32) error {
	if bits < difficulty.MinDifficulty || bits > maxBranchDifficulty {
		return fmt.Errorf("%w: default difficulty must be between %d and %d bits",
			ErrOutOfRange, difficulty.MinDifficulty, maxBranchDifficulty)
	}
	return a.cfg.Set("pow.difficulty.default", int(bits))
}

// SetPattern sets the override for one of the recognized pattern keys (dev,
// feature, main, release, default). Its valid range, 1 to 256 bits, is wider
// than SetBranch/SetDefault's 20-to-32 — a discrepancy this administration
// layer preserves rather than unifies, since nothing calls for narrowing it.
func (a *Admin) SetPattern(pattern string, bits uint32) error {
	if bits < 1 || bits > maxPatternDifficulty {
		return fmt.Errorf("%w: pattern difficulty must be between 1 and %d bits",
			ErrOutOfRange, maxPatternDifficulty)
	}
	if !isRecognizedPattern(pattern) {
		return fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
	}
	return a.cfg.Set("pow.difficulty."+pattern, int(bits))
}

// Listing is one line of `pow-config list` output: a pattern or branch
// name, its configured or hardcoded difficulty (before the MinDifficulty
// floor that resolution applies), and whether that value comes from an
// explicit override or a hardcoded default.
type Listing struct {
	Name       string
	Difficulty uint32
	Overridden bool
}

// List reports the configured or hardcoded difficulty for every recognized
// pattern plus every branch carrying an exact override; values are not raised
// to the MinDifficulty floor. It completes the admitted gap in
// the original listing command, which only printed the hardcoded pattern
// table and never looked at branch-specific configuration.
func (a *Admin) List() []Listing {
	out := make([]Listing, 0, len(recognizedPatterns))
	for _, p := range recognizedPatterns {
		v, ok := a.cfg.GetInt("pow.difficulty." + p)
		if ok && v > 0 {
			out = append(out, Listing{Name: p, Difficulty: uint32(v), Overridden: true})
		} else {
			out = append(out, Listing{Name: p, Difficulty: hardcodedDefault(p), Overridden: false})
		}
	}
	for _, k := range a.cfg.Keys() {
		branch, ok := parseBranchKey(k)
		if !ok {
			continue
		}
		v, _ := a.cfg.GetInt(k)
		out = append(out, Listing{Name: branch, Difficulty: uint32(v), Overridden: true})
	}
	return out
}

func hardcodedDefault(pattern string) uint32 {
	switch pattern {
	case "dev":
		return defaultDifficultyDev
	case "feature":
		return defaultDifficultyFeature
	case "main":
		return defaultDifficultyMain
	case "release":
		return defaultDifficultyRelease
	default:
		return defaultDifficultyDefault
	}
}

func isRecognizedPattern(pattern string) bool {
	for _, p := range recognizedPatterns {
		if p == pattern {
			return true
		}
	}
	return false
}

func branchKey(branch string) string {
	return "branch." + branch + ".powdifficulty"
}

func parseBranchKey(key string) (branch string, ok bool) {
	const prefix, suffix = "branch.", ".powdifficulty"
	if len(key) <= len(prefix)+len(suffix) {
		return "", false
	}
	if key[:len(prefix)] != prefix {
		return "", false
	}
	if key[len(key)-len(suffix):] != suffix {
		return "", false
	}
	return key[len(prefix) : len(key)-len(suffix)], true
}
