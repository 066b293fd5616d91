package policy

import (
	"errors"
	"testing"
)

func TestSetBranchRejectsBelowFloor(t *testing.T) {
	admin := NewAdmin(fakeConfig{})
	err := admin.SetBranch("main", 19)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("SetBranch(main, 19) = %v, want ErrOutOfRange", err)
	}
}

func TestSetBranchRejectsAboveMax(t *testing.T) {
	admin := NewAdmin(fakeConfig{})
	err := admin.SetBranch("main", 33)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("SetBranch(main, 33) = %v, want ErrOutOfRange", err)
	}
}

func TestSetBranchAcceptsBoundaryValues(t *testing.T) {
	cfg := fakeConfig{}
	admin := NewAdmin(cfg)
	if err := admin.SetBranch("main", 20); err != nil {
		t.Errorf("SetBranch(main, 20) = %v, want nil", err)
	}
	if err := admin.SetBranch("release/x", 32); err != nil {
		t.Errorf("SetBranch(release/x, 32) = %v, want nil", err)
	}
}

func TestSetDefaultSameRangeAsSetBranch(t *testing.T) {
	admin := NewAdmin(fakeConfig{})
	if err := admin.SetDefault(19); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetDefault(19) = %v, want ErrOutOfRange", err)
	}
	if err := admin.SetDefault(33); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetDefault(33) = %v, want ErrOutOfRange", err)
	}
}

// SetPattern's valid range (1-256) is intentionally wider than
// SetBranch/SetDefault's (20-32); a value invalid for a branch override can
// be a perfectly valid pattern override.
func TestSetPatternRangeWiderThanBranchRange(t *testing.T) {
	admin := NewAdmin(fakeConfig{})
	if err := admin.SetPattern("dev", 5); err != nil {
		t.Errorf("SetPattern(dev, 5) = %v, want nil even though 5 is below the branch floor", err)
	}
	if err := admin.SetPattern("dev", 200); err != nil {
		t.Errorf("SetPattern(dev, 200) = %v, want nil even though 200 exceeds the branch max", err)
	}
	if err := admin.SetPattern("dev", 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetPattern(dev, 0) = %v, want ErrOutOfRange", err)
	}
	if err := admin.SetPattern("dev", 257); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetPattern(dev, 257) = %v, want ErrOutOfRange", err)
	}
}

func TestSetPatternRejectsUnknownPattern(t *testing.T) {
	admin := NewAdmin(fakeConfig{})
	err := admin.SetPattern("staging", 20)
	if !errors.Is(err, ErrUnknownPattern) {
		t.Fatalf("SetPattern(staging, 20) = %v, want ErrUnknownPattern", err)
	}
}

func TestUnsetBranchRemovesOverride(t *testing.T) {
	cfg := fakeConfig{}
	admin := NewAdmin(cfg)
	admin.SetBranch("main", 24)
	if _, ok := cfg.GetInt("branch.main.powdifficulty"); !ok {
		t.Fatal("expected branch override to be set")
	}
	if err := admin.UnsetBranch("main"); err != nil {
		t.Fatalf("UnsetBranch: %v", err)
	}
	if _, ok := cfg.GetInt("branch.main.powdifficulty"); ok {
		t.Error("expected branch override to be removed")
	}
}

func TestListIncludesPatternsAndBranchOverrides(t *testing.T) {
	cfg := fakeConfig{}
	admin := NewAdmin(cfg)
	admin.SetBranch("main", 24)

	listing := admin.List()
	if len(listing) != len(recognizedPatterns)+1 {
		t.Fatalf("List() returned %d entries, want %d", len(listing), len(recognizedPatterns)+1)
	}

	var foundBranch bool
	for _, l := range listing {
		if l.Name == "main" && l.Difficulty == 24 && l.Overridden {
			foundBranch = true
		}
	}
	if !foundBranch {
		t.Error("List() did not include the branch override for main")
	}
}
