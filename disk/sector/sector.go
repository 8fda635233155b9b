// Package sector holds the integer geometry primitives everything else
// plans with. All partition arithmetic is done in 512-byte sectors and
// rounded to a 2048-sector (1 MiB) boundary.
package sector

import (
	"errors"
	"math"
)

const (
	// SectorSize is the fixed logical sector size in bytes.
	SectorSize uint64 = 512

	// Alignment is the partition alignment boundary in sectors.
	Alignment uint64 = 2048
)

// ErrArithmeticOverflow is returned when a computation would exceed the
// addressable 64-bit sector range instead of silently wrapping.
var ErrArithmeticOverflow = errors.New("sector arithmetic overflow")

// BytesToSectors converts a byte count to sectors, rounding up so the
// resulting span always covers the requested bytes.
func BytesToSectors(sizeInBytes uint64) (uint64, error) {
	if sizeInBytes > math.MaxUint64-(SectorSize-1) {
		return 0, ErrArithmeticOverflow
	}
	return (sizeInBytes + SectorSize - 1) / SectorSize, nil
}

// SectorsToBytes converts a sector count to bytes.
func SectorsToBytes(sectors uint64) (uint64, error) {
	if sectors > math.MaxUint64/SectorSize {
		return 0, ErrArithmeticOverflow
	}
	return sectors * SectorSize, nil
}

// AlignDown rounds a sector down to the previous alignment boundary.
func AlignDown(s uint64) uint64 {
	return (s / Alignment) * Alignment
}

// AlignUp rounds a sector up to the next alignment boundary.
func AlignUp(s uint64) (uint64, error) {
	if s > math.MaxUint64-(Alignment-1) {
		return 0, ErrArithmeticOverflow
	}
	return ((s + Alignment - 1) / Alignment) * Alignment, nil
}
