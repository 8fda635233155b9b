package sizes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	KiloByte uint64 = 1024
	MegaByte uint64 = 1024 * KiloByte
	GigaByte uint64 = 1024 * MegaByte
)

var unitMultipliers = map[string]uint64{
	"K":  KiloByte,
	"KB": KiloByte,
	"M":  MegaByte,
	"MB": MegaByte,
	"G":  GigaByte,
	"GB": GigaByte,
}

// InvalidSizeFormatError is returned when a size string cannot be
// understood as `<integer><unit>`.
type InvalidSizeFormatError struct {
	Input string
}

func (e InvalidSizeFormatError) Error() string {
	return fmt.Sprintf("Invalid size format: `%s' (expected <integer><unit>, e.g. 16G)", e.Input)
}

// Parse converts a human size string such as "16G" or "512mb" to a byte
// count. Recognized units are K, KB, M, MB, G and GB (case-insensitive).
func Parse(sizeStr string) (uint64, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(sizeStr))
	if cleaned == "" {
		return 0, InvalidSizeFormatError{Input: sizeStr}
	}

	digitsEnd := 0
	for digitsEnd < len(cleaned) && cleaned[digitsEnd] >= '0' && cleaned[digitsEnd] <= '9' {
		digitsEnd++
	}

	if digitsEnd == 0 {
		return 0, InvalidSizeFormatError{Input: sizeStr}
	}

	number, err := strconv.ParseUint(cleaned[:digitsEnd], 10, 64)
	if err != nil || number == 0 {
		return 0, InvalidSizeFormatError{Input: sizeStr}
	}

	multiplier, found := unitMultipliers[cleaned[digitsEnd:]]
	if !found {
		return 0, InvalidSizeFormatError{Input: sizeStr}
	}

	// The product must not wrap; a wrapped size would silently plan the
	// wrong layout (or, at exactly zero, drop the partition request).
	if number > math.MaxUint64/multiplier {
		return 0, InvalidSizeFormatError{Input: sizeStr}
	}

	return number * multiplier, nil
}

// Format renders a byte count using the largest unit that divides it
// cleanly enough to stay readable.
func Format(sizeInBytes uint64) string {
	switch {
	case sizeInBytes >= GigaByte:
		return fmt.Sprintf("%.1fG", float64(sizeInBytes)/float64(GigaByte))
	case sizeInBytes >= MegaByte:
		return fmt.Sprintf("%.1fM", float64(sizeInBytes)/float64(MegaByte))
	case sizeInBytes >= KiloByte:
		return fmt.Sprintf("%.1fK", float64(sizeInBytes)/float64(KiloByte))
	default:
		return fmt.Sprintf("%dB", sizeInBytes)
	}
}
