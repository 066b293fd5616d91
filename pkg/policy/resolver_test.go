package policy

import "testing"

type fakeConfig map[string]int

func (f fakeConfig) GetInt(key string) (int, bool) {
	v, ok := f[key]
	return v, ok
}

func (f fakeConfig) Set(key string, value int) error {
	f[key] = value
	return nil
}

func (f fakeConfig) Unset(key string) error {
	delete(f, key)
	return nil
}

func (f fakeConfig) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	return keys
}

func TestFeatureBranchFloorsToMinDifficulty(t *testing.T) {
	cfg := fakeConfig{}
	// feature/* hardcodes to 10 bits, which is below the 20-bit floor.
	got := RequiredDifficultyForBranch(cfg, "feature/x", true)
	if got != 20 {
		t.Errorf("RequiredDifficultyForBranch(feature/x) = %d, want 20 (floored)", got)
	}
}

func TestFeatureBranchPatternOverrideStillFloors(t *testing.T) {
	cfg := fakeConfig{"pow.difficulty.feature": 15}
	got := RequiredDifficultyForBranch(cfg, "feature/y", true)
	if got != 20 {
		t.Errorf("RequiredDifficultyForBranch(feature/y) with override 15 = %d, want 20 (floored)", got)
	}
}

func TestExactBranchOverrideWinsOverPattern(t *testing.T) {
	cfg := fakeConfig{
		"branch.feature/z.powdifficulty": 28,
		"pow.difficulty.feature":         10,
	}
	got := RequiredDifficultyForBranch(cfg, "feature/z", true)
	if got != 28 {
		t.Errorf("RequiredDifficultyForBranch(feature/z) = %d, want 28 (exact override)", got)
	}
}

func TestMainMasterAndReleasePatterns(t *testing.T) {
	cfg := fakeConfig{}
	if got := RequiredDifficultyForBranch(cfg, "main", true); got != 20 {
		t.Errorf("main = %d, want 20 (floored from 12)", got)
	}
	if got := RequiredDifficultyForBranch(cfg, "master", true); got != 20 {
		t.Errorf("master = %d, want 20 (floored from 12)", got)
	}
	if got := RequiredDifficultyForBranch(cfg, "release/2.0", true); got != 20 {
		t.Errorf("release/2.0 = %d, want 20 (floored from 16)", got)
	}
	if got := RequiredDifficultyForBranch(cfg, "v3", true); got != 20 {
		t.Errorf("v3 = %d, want 20 (floored from 16)", got)
	}
}

func TestUnmatchedBranchFallsBackToDefault(t *testing.T) {
	cfg := fakeConfig{}
	got := RequiredDifficultyForBranch(cfg, "experiment", true)
	if got != 20 {
		t.Errorf("RequiredDifficultyForBranch(experiment) = %d, want 20", got)
	}

	cfg["pow.difficulty.default"] = 24
	got = RequiredDifficultyForBranch(cfg, "experiment", true)
	if got != 24 {
		t.Errorf("RequiredDifficultyForBranch(experiment) with default override = %d, want 24", got)
	}
}

func TestDetachedHeadReturnsFloorDirectly(t *testing.T) {
	cfg := fakeConfig{
		"pow.difficulty.default": 28,
		"pow.difficulty.main":    30,
	}
	// onBranch=false must short-circuit to the floor even though configured
	// overrides above it exist and branch happens to name a recognized one.
	got := RequiredDifficultyForBranch(cfg, "main", false)
	if got != 20 {
		t.Errorf("RequiredDifficultyForBranch on detached HEAD = %d, want 20 (floor, bypassing config)", got)
	}
}
