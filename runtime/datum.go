package runtime

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/compress"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/internal/hash"
)

// DatumVersion is the envelope version written by MarshalDatum.
const DatumVersion uint8 = 1

// datumEnvelope is the stored form of a packed array.
type datumEnvelope struct {
	Version     uint8  `cbor:"1,keyasint"`
	Type        uint8  `cbor:"2,keyasint"`
	Compression uint8  `cbor:"3,keyasint"`
	RawLength   uint32 `cbor:"4,keyasint"`
	Checksum    uint64 `cbor:"5,keyasint"`
	Payload     []byte `cbor:"6,keyasint"`
}

var (
	datumEncMode = mustEncMode()
	datumDecMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create datum cbor encoder: %v", err))
	}

	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create datum cbor decoder: %v", err))
	}

	return dm
}

// MarshalDatum seals a packed array into a deterministic CBOR envelope.
//
// The buffer is validated, compressed with the given codec and stored with its
// element type, raw length and xxHash64 checksum of the uncompressed bytes.
//
// Returns:
//   - []byte: The encoded envelope
//   - compress.CompressionStats: Sizes before and after compression
//   - error: ErrMalformedBuffer, ErrUnsupportedType or ErrInvalidCompression
func MarshalDatum(a array.Array, compression format.CompressionType) ([]byte, compress.CompressionStats, error) {
	if _, err := array.NewView(a); err != nil {
		return nil, compress.CompressionStats{}, err
	}

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, compress.CompressionStats{}, err
	}

	payload, stats, err := compress.Measure(codec, compression, a.Buf)
	if err != nil {
		return nil, compress.CompressionStats{}, fmt.Errorf("compress datum: %w", err)
	}

	out, err := datumEncMode.Marshal(datumEnvelope{
		Version:     DatumVersion,
		Type:        uint8(a.Type),
		Compression: uint8(compression),
		RawLength:   uint32(len(a.Buf)), //nolint:gosec
		Checksum:    hash.Sum64(a.Buf),
		Payload:     payload,
	})
	if err != nil {
		return nil, compress.CompressionStats{}, fmt.Errorf("encode datum: %w", err)
	}

	return out, stats, nil
}

// UnmarshalDatum opens an envelope written by MarshalDatum.
//
// Returns ErrMalformedBuffer for an undecodable or inconsistent envelope,
// ErrChecksumMismatch if the payload does not verify, and the errors of
// NewView if the restored buffer is not a valid packed array.
func UnmarshalDatum(data []byte) (array.Array, format.CompressionType, error) {
	var env datumEnvelope
	if err := datumDecMode.Unmarshal(data, &env); err != nil {
		return array.Array{}, 0, fmt.Errorf("%w: datum envelope: %w", errs.ErrMalformedBuffer, err)
	}
	if env.Version != DatumVersion {
		return array.Array{}, 0, fmt.Errorf("%w: datum version %d", errs.ErrMalformedBuffer, env.Version)
	}

	compression := format.CompressionType(env.Compression)
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return array.Array{}, 0, err
	}

	raw, err := codec.Decompress(env.Payload)
	if err != nil {
		return array.Array{}, 0, fmt.Errorf("%w: decompress datum: %w", errs.ErrMalformedBuffer, err)
	}
	if len(raw) != int(env.RawLength) {
		return array.Array{}, 0, fmt.Errorf("%w: datum holds %d bytes, header says %d", errs.ErrMalformedBuffer, len(raw), env.RawLength)
	}
	if sum := hash.Sum64(raw); sum != env.Checksum {
		return array.Array{}, 0, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, env.Checksum)
	}

	a := array.Array{Type: format.ElementType(env.Type), Buf: raw}
	if _, err := array.NewView(a); err != nil {
		return array.Array{}, 0, err
	}

	return a, compression, nil
}
