package pre

import "errors"

// Error taxonomy, per spec.md §7.
var (
	// ErrValidation covers every deserialization failure: wrong byte
	// length, non-canonical encoding, off-curve point, scalar out of
	// range, or an invalid boolean tag.
	ErrValidation = errors.New("pre: validation error")

	// ErrInvalidCapsule is returned by DecryptOriginal when the
	// capsule fails its self-consistency check.
	ErrInvalidCapsule = errors.New("pre: invalid capsule")

	// ErrDecryptionFailed is the single opaque outcome for every
	// decryption failure in DecryptReencrypted and DecryptOriginal's
	// DEM step: authentication tag mismatch, insufficient cfrags, or
	// cfrags carrying inconsistent precursors. The core deliberately
	// does not distinguish between these to the caller.
	ErrDecryptionFailed = errors.New("pre: decryption failed")

	// ErrInvalidThreshold is a fatal precondition failure: threshold
	// must be in [1, count].
	ErrInvalidThreshold = errors.New("pre: threshold must be >= 1 and <= count")

	// errSharedSecretExhausted is returned if 255 attempts to sample a
	// nonzero shared secret `d` all failed, per Design Note 2 of
	// spec.md §9 (bounded retry loop instead of an unbounded one).
	errSharedSecretExhausted = errors.New("pre: failed to derive nonzero shared secret after maximum retries")
)
