// Package hash wraps xxHash64 for datum checksums and array fingerprints.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Sum64Parts computes the xxHash64 of the concatenation of parts without
// materializing it.
func Sum64Parts(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
