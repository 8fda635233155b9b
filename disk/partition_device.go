package disk

import (
	"fmt"
	"strings"
)

// PartitionDevicePath returns the device node for a partition index.
// mmcblk and nvme devices separate the partition number with a `p'
// (/dev/mmcblk0p2), everything else appends it directly (/dev/sda2).
func PartitionDevicePath(devicePath string, index int) string {
	if strings.Contains(devicePath, "mmcblk") || strings.Contains(devicePath, "nvme") {
		return fmt.Sprintf("%sp%d", devicePath, index)
	}
	return fmt.Sprintf("%s%d", devicePath, index)
}

// NormalizeDevicePath expands a bare device name such as `mmcblk0' to
// its /dev path.
func NormalizeDevicePath(devicePath string) string {
	if !strings.HasPrefix(devicePath, "/dev/") {
		return "/dev/" + devicePath
	}
	return devicePath
}

// isPartitionOf reports whether partitionPath is devicePath itself or
// one of its partitions. A partition is the device plus a numeric
// suffix, optionally p-separated; a longer device name sharing the
// prefix (/dev/sdaa vs /dev/sda) is not a match.
func isPartitionOf(partitionPath, devicePath string) bool {
	if partitionPath == devicePath {
		return true
	}

	suffix := strings.TrimPrefix(partitionPath, devicePath)
	if suffix == partitionPath {
		return false
	}

	suffix = strings.TrimPrefix(suffix, "p")
	if suffix == "" {
		return false
	}

	for _, c := range suffix {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
