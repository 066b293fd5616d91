package hash

import "encoding/hex"

// Digest is an immutable 32-byte SHA3-256 output. SHA3-256 is the only
// algorithm this system defines, so Digest does not carry a separate
// algorithm tag; Algorithm always reports "sha3-256".
type Digest [Size]byte

// Algorithm names the hash algorithm that produced this digest.
func (Digest) Algorithm() string { return "sha3-256" }

// NullDigest is the all-zeros digest, used as the sentinel "no parent" value.
var NullDigest Digest

// IsNull reports whether d is the all-zeros digest.
func (d Digest) IsNull() bool { return d == NullDigest }

// Equal reports bytewise equality.
func (d Digest) Equal(other Digest) bool { return d == other }

// Hex returns the lowercase 64-character hex form.
func (d Digest) Hex() string { return hex.EncodeToString(d[:]) }

// String satisfies fmt.Stringer with the hex form.
func (d Digest) String() string { return d.Hex() }

// FromBytes wraps a 32-byte slice as a Digest. It panics if b is not exactly
// Size bytes, which indicates a caller bug rather than recoverable input.
func FromBytes(b []byte) Digest {
	if len(b) != Size {
		panic("hash: digest must be exactly 32 bytes")
	}
	var d Digest
	copy(d[:], b)
	return d
}

// FromHex parses a 64-character lowercase hex digest.
func FromHex(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, err
	}
	if len(b) != Size {
		return Digest{}, errInvalidDigestLength
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// Sum computes the SHA3-256 digest of data, selecting the fastest backend
// available.
func Sum(data []byte) Digest {
	return Digest(OneshotBackend(data))
}

// EmptyBlobDigest is the SHA3-256 digest of the empty byte string.
var EmptyBlobDigest = Digest{
	0xa7, 0xff, 0xc6, 0xf8, 0xbf, 0x1e, 0xd7, 0x66, 0x51, 0xc1,
	0x47, 0x56, 0xa0, 0x61, 0xd6, 0x62, 0xf5, 0x80, 0xff, 0x4d,
	0xe4, 0x3b, 0x49, 0xfa, 0x82, 0xd8, 0x0a, 0x4b, 0x80, 0xf8,
	0x43, 0x4a,
}

// EmptyTreeDigest is the SHA3-256 digest of "tree 0\x00", the canonical
// empty tree object.
var EmptyTreeDigest = Digest{
	0x30, 0x21, 0x1e, 0xd4, 0x85, 0xc9, 0x12, 0xe5, 0xbc, 0x28,
	0x5b, 0xd0, 0xbd, 0x89, 0x59, 0xdd, 0xbf, 0xb5, 0x87, 0x5c,
	0xaf, 0xb0, 0xae, 0x28, 0xe0, 0xab, 0xfa, 0x10, 0x77, 0xb2,
	0xb2, 0x14,
}
