package runtime

import (
	"fmt"

	"github.com/arloliu/mdarr/array"
	"github.com/arloliu/mdarr/endian"
	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
)

// VarLenHeaderSize is the size of the VarLen32 length prefix.
const VarLenHeaderSize = 4

// VarLen32 is a u32 length prefix in native byte order followed by that many bytes.
type VarLen32 []byte

// NewVarLen32 copies payload into a new VarLen32.
func NewVarLen32(payload []byte) VarLen32 {
	out := make([]byte, VarLenHeaderSize+len(payload))
	endian.GetNativeEngine().PutUint32(out, uint32(len(payload))) //nolint:gosec
	copy(out[VarLenHeaderSize:], payload)

	return out
}

// Payload returns the bytes after the length prefix without copying.
//
// Returns ErrInvalidVarLen if the prefix is missing or disagrees with the size.
func (v VarLen32) Payload() ([]byte, error) {
	if len(v) < VarLenHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", errs.ErrInvalidVarLen, len(v), VarLenHeaderSize)
	}

	n := endian.GetNativeEngine().Uint32(v[:VarLenHeaderSize])
	if uint64(n) != uint64(len(v)-VarLenHeaderSize) {
		return nil, fmt.Errorf("%w: prefix says %d bytes, have %d", errs.ErrInvalidVarLen, n, len(v)-VarLenHeaderSize)
	}

	return v[VarLenHeaderSize:], nil
}

// Value is a packed array as the host sees it: a VarLen32 plus its element type.
type Value struct {
	Type format.ElementType
	Data VarLen32
}

// ValueOf wraps a packed array into a Value.
func ValueOf(a array.Array) Value {
	return Value{Type: a.Type, Data: NewVarLen32(a.Buf)}
}

// Array returns the packed array carried by v. The buffer aliases v.Data.
func (v Value) Array() (array.Array, error) {
	payload, err := v.Data.Payload()
	if err != nil {
		return array.Array{}, err
	}

	return array.Array{Type: v.Type, Buf: payload}, nil
}
