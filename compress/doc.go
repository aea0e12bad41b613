// Package compress provides the block codecs used to shrink stored array datums.
//
// A packed array buffer is self-describing and usually dominated by its element
// section, which compresses well when values repeat or share magnitude. The
// runtime package compresses the whole buffer before wrapping it in a datum
// envelope, and records the codec type so the reader can reverse it.
//
// Available codecs:
//   - None: passthrough, no copy
//   - Zstd: best ratio; pure Go by default, cgo (valyala/gozstd) with the gozstd build tag
//   - S2: fast Snappy-compatible variant from klauspost/compress
//   - LZ4: fast block compression from pierrec/lz4
//
// Every codec is stateless and safe for concurrent use. Encoders and decoders
// that keep internal state are pooled.
package compress
