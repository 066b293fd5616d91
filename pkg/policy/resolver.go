// Package policy resolves the proof-of-work difficulty required for a
// branch, and administers the configuration that resolution reads from.
package policy

import (
	"strings"

	"git3/pkg/difficulty"
)

// ConfigReader is the narrow read side of the config store that resolution
// needs: an integer lookup keyed by dotted config names.
type ConfigReader interface {
	GetInt(key string) (int, bool)
}

// Hardcoded fallback difficulties for each recognized branch pattern, used
// when no configuration override is present. These mirror the values a
// fresh repository ships with before any pow-config command has run.
const (
	defaultDifficultyDev     = 8
	defaultDifficultyFeature = 10
	defaultDifficultyMain    = 12
	defaultDifficultyRelease = 16
	defaultDifficultyDefault = 20
)

// RequiredDifficultyForBranch resolves the proof-of-work difficulty a commit
// on branch must meet. onBranch must be false when there is no branch
// currently checked out (detached HEAD); in that case the floor is returned
// directly, without consulting branch, pattern, or default configuration at
// all. Otherwise resolution order is:
//
//  1. An exact per-branch override: branch.<name>.powdifficulty
//  2. A pattern match against dev/*, develop/*, feature/*, feat/*,
//     release/*, v*, main, master, each with its own pow.difficulty.<pattern>
//     override falling back to a hardcoded default
//  3. pow.difficulty.default, falling back to the feature-branch default
//
// The result is never lower than difficulty.MinDifficulty, regardless of
// what configuration says.
func RequiredDifficultyForBranch(cfg ConfigReader, branch string, onBranch bool) uint32 {
	if !onBranch {
		return difficulty.MinDifficulty
	}

	if v, ok := cfg.GetInt("branch." + branch + ".powdifficulty"); ok && v > 0 {
		return clampToFloor(uint32(v))
	}

	bits := resolvePattern(cfg, branch)
	return clampToFloor(bits)
}

func resolvePattern(cfg ConfigReader, branch string) uint32 {
	switch {
	case strings.HasPrefix(branch, "dev/") || strings.HasPrefix(branch, "develop/"):
		return configuredOr(cfg, "pow.difficulty.dev", defaultDifficultyDev)
	case strings.HasPrefix(branch, "feature/") || strings.HasPrefix(branch, "feat/"):
		return configuredOr(cfg, "pow.difficulty.feature", defaultDifficultyFeature)
	case strings.HasPrefix(branch, "release/") || strings.HasPrefix(branch, "v"):
		return configuredOr(cfg, "pow.difficulty.release", defaultDifficultyRelease)
	case branch == "main" || branch == "master":
		return configuredOr(cfg, "pow.difficulty.main", defaultDifficultyMain)
	default:
		return configuredOr(cfg, "pow.difficulty.default", defaultDifficultyFeature)
	}
}

func configuredOr(cfg ConfigReader, key string, fallback uint32) uint32 {
	if v, ok := cfg.GetInt(key); ok && v > 0 {
		return uint32(v)
	}
	return fallback
}

func clampToFloor(bits uint32) uint32 {
	if bits < difficulty.MinDifficulty {
		return difficulty.MinDifficulty
	}
	return bits
}
