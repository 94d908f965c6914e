package utils

import "hash/fnv"

// fingerprintSeed starts every accumulated fingerprint chain.
const fingerprintSeed uint64 = 0x9e3779b185ebca87

func U64ToBytes(u uint64) []byte {
	return []byte{
		byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32),
		byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u),
	}
}

// U64 hashes a string with FNV-1a.
func U64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func Mix64(a, b uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(U64ToBytes(a))
	_, _ = h.Write(U64ToBytes(b))
	return h.Sum64()
}

// Chain folds a tag and a list of child fingerprints into one value.
// Children are mixed in order, so reordering them changes the result.
func Chain(tag string, parts ...uint64) uint64 {
	acc := Mix64(fingerprintSeed, U64(tag))
	for _, p := range parts {
		acc = Mix64(acc, p)
	}
	return acc
}

// Strings fingerprints an ordered list of strings. Boundaries are kept, so
// ("ab", "c") and ("a", "bc") hash differently.
func Strings(tag string, ss ...string) uint64 {
	acc := Mix64(fingerprintSeed, U64(tag))
	for _, s := range ss {
		acc = Mix64(acc, U64(s))
	}
	return acc
}
