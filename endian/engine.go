// Package endian provides the byte order used by packed array buffers.
//
// Packed arrays are an in-process value format: every u32 header field, metadata
// entry and fixed-width element is stored in the host's native byte order so that
// the surrounding engine can hand buffers across its runtime boundary without
// conversion. This package detects that order once and exposes it as an
// EndianEngine, which combines binary.ByteOrder and binary.AppendByteOrder.
//
// # Basic Usage
//
//	engine := endian.GetNativeEngine()
//	buf = engine.AppendUint32(buf, dimensionCount)
//	count := engine.Uint32(buf[0:4])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = detectNative()

func detectNative() EndianEngine {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	return nativeEngine
}

func IsNativeLittleEndian() bool {
	return nativeEngine == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return nativeEngine == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host's byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == nativeEngine
}

// GetNativeEngine returns the engine for the host's byte order. Packed arrays use it
// unless a caller explicitly asks for a fixed order.
func GetNativeEngine() EndianEngine {
	return nativeEngine
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
