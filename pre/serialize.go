package pre

import (
	"encoding/binary"
	"fmt"

	"github.com/nucypher/umbral-go"
	"github.com/nucypher/umbral-go/ecsig"
)

// Fixed-width sizes of every serializable entity, per spec.md §6.
const (
	pointSize     = secp256k1.CompressedPointSize // 33
	scalarSize    = secp256k1.ScalarSize          // 32
	boolSize      = 1
	sigSize       = ecsig.SignatureSize // 64
	kfragIDSize   = 32

	// ParametersSize is the encoded size of Parameters.
	ParametersSize = pointSize // 33

	// CapsuleSize is the encoded size of a Capsule.
	CapsuleSize = pointSize + pointSize + scalarSize // 98

	// KeyFragProofSize is the encoded size of a KeyFragProof.
	KeyFragProofSize = pointSize + sigSize + sigSize + boolSize + boolSize // 163

	// KeyFragSize is the encoded size of a KeyFrag.
	KeyFragSize = ParametersSize + kfragIDSize + scalarSize + pointSize + KeyFragProofSize // 293

	// CapsuleFragProofSize is the encoded size of a CapsuleFragProof.
	CapsuleFragProofSize = pointSize + pointSize + pointSize + pointSize + scalarSize + sigSize // 228

	// CapsuleFragSize is the encoded size of a CapsuleFrag.
	CapsuleFragSize = pointSize + pointSize + kfragIDSize + pointSize + CapsuleFragProofSize // 359
)

func encodeBool(b bool) byte {
	if b {
		return 0x01
	}
	return 0x00
}

func decodeBool(b byte) (bool, error) {
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid boolean tag 0x%02x", ErrValidation, b)
	}
}

func encodePoint(p *secp256k1.Point) []byte {
	return p.CompressedBytes()
}

func decodePoint(src []byte) (*secp256k1.Point, error) {
	if len(src) != pointSize {
		return nil, fmt.Errorf("%w: invalid point length", ErrValidation)
	}
	p, err := secp256k1.NewPointFromBytes(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if p.IsIdentity() != 0 {
		return nil, fmt.Errorf("%w: point is the identity", ErrValidation)
	}
	return p, nil
}

func decodeScalar(src []byte) (*secp256k1.Scalar, error) {
	if len(src) != scalarSize {
		return nil, fmt.Errorf("%w: invalid scalar length", ErrValidation)
	}
	s, err := secp256k1.NewScalarFromCanonicalBytes((*[secp256k1.ScalarSize]byte)(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s, nil
}

func decodeSignature(src []byte) (*ecsig.Signature, error) {
	if len(src) != sigSize {
		return nil, fmt.Errorf("%w: invalid signature length", ErrValidation)
	}
	sig, err := ecsig.SignatureFromBytes(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return sig, nil
}

// encodeOptionalPublicKey resolves the Open Question of spec.md §9: a
// 1-byte presence tag, followed by the 33-byte compressed point when
// present, nothing when absent.
func encodeOptionalPublicKey(pk *PublicKey) []byte {
	if pk == nil {
		return []byte{0x00}
	}
	dst := make([]byte, 0, 1+pointSize)
	dst = append(dst, 0x01)
	dst = append(dst, pk.point.CompressedBytes()...)
	return dst
}

// encodeMetadata resolves the metadata ambiguity of spec.md §9: a
// 1-byte presence tag, and when present a 4-byte big-endian length
// prefix followed by the bytes, so that absent, empty, and non-empty
// metadata all hash distinctly.
func encodeMetadata(metadata []byte, present bool) []byte {
	if !present {
		return []byte{0x00}
	}
	dst := make([]byte, 0, 1+4+len(metadata))
	dst = append(dst, 0x01)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(metadata)))
	dst = append(dst, lenBuf[:]...)
	dst = append(dst, metadata...)
	return dst
}
