// Package nthash implements the rolling component of ntHash: recursive,
// O(1)-per-base hashing of DNA k-mers, supporting forward-strand,
// reverse-complement-strand, and canonical hash values.
//
// This is the primitive that digest.Hasher wraps (see ../../hasher.go).
// Unlike github.com/will-rowe/nthash or github.com/will-rowe/ntHash, both
// of which hand a whole buffer to a stateful iterator and advance it
// internally, this package exposes the bare roll step (outgoing base,
// incoming base, k) so the caller can feed bases one at a time from two
// different backing arrays -- which is exactly what bridging an
// append_seq seam with a carryover queue requires.
package nthash

// Seed values for the four DNA bases, as used by the published ntHash
// algorithm (Mohamadi et al., 2016). Any other byte has no seed and must
// be rejected by the caller before it reaches this package.
const (
	seedA uint64 = 0x3c8bfbb395c60474
	seedC uint64 = 0x3193c18562a02b4c
	seedG uint64 = 0x20323ed082572324
	seedT uint64 = 0x295549f54be24456
)

var seedTable [256]uint64
var seedTableValid [256]bool
var complementSeedTable [256]uint64

func init() {
	set := func(upper, lower byte, seed, compSeed uint64) {
		seedTable[upper] = seed
		seedTable[lower] = seed
		seedTableValid[upper] = true
		seedTableValid[lower] = true
		complementSeedTable[upper] = compSeed
		complementSeedTable[lower] = compSeed
	}
	set('A', 'a', seedA, seedT)
	set('C', 'c', seedC, seedG)
	set('G', 'g', seedG, seedC)
	set('T', 't', seedT, seedA)
}

// IsACTG reports whether b is one of A, C, G, T in either case.
func IsACTG(b byte) bool {
	return seedTableValid[b]
}

func rol(x uint64, d uint) uint64 {
	d &= 63
	if d == 0 {
		return x
	}
	return (x << d) | (x >> (64 - d))
}

func ror(x uint64, d uint) uint64 {
	d &= 63
	if d == 0 {
		return x
	}
	return (x >> d) | (x << (64 - d))
}

// InitialForward computes the forward-strand hash of the k-mer kmer.
// The caller must ensure every byte of kmer is a valid ACTG base.
func InitialForward(kmer []byte) uint64 {
	var h uint64
	for _, b := range kmer {
		h = rol(h, 1)
		h ^= seedTable[b]
	}
	return h
}

// InitialReverse computes the reverse-complement-strand hash of kmer.
func InitialReverse(kmer []byte) uint64 {
	var h uint64
	for i := len(kmer) - 1; i >= 0; i-- {
		h = rol(h, 1)
		h ^= complementSeedTable[kmer[i]]
	}
	return h
}

// RollForward advances a forward hash by one base: charOut leaves the
// window, charIn enters it. k is the k-mer length.
func RollForward(fhVal uint64, charOut, charIn byte, k uint) uint64 {
	h := rol(fhVal, 1)
	h ^= rol(seedTable[charOut], k)
	h ^= seedTable[charIn]
	return h
}

// RollReverse advances a reverse-complement hash by one base.
func RollReverse(rhVal uint64, charOut, charIn byte, k uint) uint64 {
	h := ror(rhVal, 1)
	h ^= ror(complementSeedTable[charOut], 1)
	h ^= rol(complementSeedTable[charIn], k-1)
	return h
}

// Canonical returns the smaller of the forward and reverse hashes.
func Canonical(fhVal, rhVal uint64) uint64 {
	if rhVal < fhVal {
		return rhVal
	}
	return fhVal
}
