package difficulty

import (
	"errors"
	"testing"

	"git3/pkg/hash"
)

func digestFrom(bytes ...byte) hash.Digest {
	var d hash.Digest
	copy(d[:], bytes)
	return d
}

func TestLeadingZeroBitsByteAndHexAgree(t *testing.T) {
	cases := []hash.Digest{
		digestFrom(0x00, 0x0f),
		digestFrom(0x04),
		digestFrom(0x00, 0x00, 0x00, 0x01),
		digestFrom(0xff),
		{},
	}
	for _, d := range cases {
		byteWise := LeadingZeroBits(d)
		hexWise := LeadingZeroBitsHex(d.Hex())
		if byteWise != hexWise {
			t.Errorf("digest %s: byte-wise=%d hex-wise=%d disagree", d.Hex(), byteWise, hexWise)
		}
	}
}

func TestLeadingZeroBitsKnownValues(t *testing.T) {
	// 0x00 0x0f... -> first byte all zero (8 bits), second byte 0x0f has
	// 4 leading zero bits (upper nibble), total 12.
	d := digestFrom(0x00, 0x0f)
	if got := LeadingZeroBits(d); got != 12 {
		t.Errorf("LeadingZeroBits(0x000f...) = %d, want 12", got)
	}
	if got := Work(LeadingZeroBits(d)); got != 4096 {
		t.Errorf("Work(12) = %d, want 4096", got)
	}

	// 0x04... -> binary 0000 0100, 5 leading zero bits.
	d2 := digestFrom(0x04)
	if got := LeadingZeroBits(d2); got != 5 {
		t.Errorf("LeadingZeroBits(0x04...) = %d, want 5", got)
	}
	if got := Work(LeadingZeroBits(d2)); got != 32 {
		t.Errorf("Work(5) = %d, want 32", got)
	}
}

func TestWorkOfZeroBitsIsOne(t *testing.T) {
	if got := Work(0); got != 1 {
		t.Errorf("Work(0) = %d, want 1", got)
	}
}

func TestMeetsDifficulty(t *testing.T) {
	d := digestFrom(0x00, 0x0f)
	if !MeetsDifficulty(d, 12) {
		t.Error("digest with 12 leading zero bits should meet a difficulty of 12")
	}
	if MeetsDifficulty(d, 13) {
		t.Error("digest with 12 leading zero bits should not meet a difficulty of 13")
	}
}

func TestFormatWork(t *testing.T) {
	cases := []struct {
		work uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{2_500_000, "2.5M"},
		{3_000_000_000, "3.0B"},
		{4_000_000_000_000, "4.0T"},
	}
	for _, tc := range cases {
		if got := FormatWork(tc.work); got != tc.want {
			t.Errorf("FormatWork(%d) = %q, want %q", tc.work, got, tc.want)
		}
	}
}

type fakeParentLookup map[hash.Digest]hash.Digest

func (f fakeParentLookup) Parent(commit hash.Digest) (hash.Digest, bool, error) {
	p, ok := f[commit]
	return p, ok, nil
}

func TestCumulativeWorkFirstParentChain(t *testing.T) {
	root := digestFrom(0x04) // work 32
	mid := digestFrom(0x00, 0x0f) // work 4096
	tip := digestFrom(0x00, 0x00, 0x00, 0x01)

	store := fakeParentLookup{
		mid: root,
		tip: mid,
	}

	w := NewWalker(store)
	got, err := w.CumulativeWork(tip)
	if err != nil {
		t.Fatalf("CumulativeWork: %v", err)
	}
	want := Work(LeadingZeroBits(tip)) + Work(LeadingZeroBits(mid)) + Work(LeadingZeroBits(root))
	if got != want {
		t.Errorf("CumulativeWork(tip) = %d, want %d", got, want)
	}

	// Recomputing the parent's work alone should hit the memoized value.
	got2, err := w.CumulativeWork(mid)
	if err != nil {
		t.Fatalf("CumulativeWork(mid): %v", err)
	}
	wantMid := Work(LeadingZeroBits(mid)) + Work(LeadingZeroBits(root))
	if got2 != wantMid {
		t.Errorf("CumulativeWork(mid) = %d, want %d", got2, wantMid)
	}
}

func TestCumulativeWorkNullParentIsZero(t *testing.T) {
	w := NewWalker(fakeParentLookup{})
	got, err := w.CumulativeWork(hash.NullDigest)
	if err != nil {
		t.Fatalf("CumulativeWork(NullDigest): %v", err)
	}
	if got != 0 {
		t.Errorf("CumulativeWork(NullDigest) = %d, want 0", got)
	}
}

type missingParentLookup struct {
	errOn hash.Digest
}

func (m missingParentLookup) Parent(commit hash.Digest) (hash.Digest, bool, error) {
	if commit == m.errOn {
		return hash.Digest{}, false, errors.New("store: object not found")
	}
	return hash.Digest{}, false, nil
}

func TestCumulativeWorkPropagatesLookupFailure(t *testing.T) {
	tip := digestFrom(0x00, 0x00, 0x00, 0x01)
	w := NewWalker(missingParentLookup{errOn: tip})

	_, err := w.CumulativeWork(tip)
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("CumulativeWork with a failing parent lookup = %v, want ErrLookupFailed", err)
	}
}

func TestCumulativeWorkBreaksCycles(t *testing.T) {
	a := digestFrom(0x01)
	b := digestFrom(0x02)
	store := fakeParentLookup{a: b, b: a}

	w := NewWalker(store)
	// Must terminate rather than looping forever.
	if _, err := w.CumulativeWork(a); err != nil {
		t.Fatalf("CumulativeWork with a cycle: %v", err)
	}
}
