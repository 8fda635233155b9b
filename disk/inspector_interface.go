package disk

import "fmt"

// DeviceGeometry describes the target device as found at the start of a
// run. It is captured once and never mutated; all planning is computed
// relative to it.
type DeviceGeometry struct {
	DevicePath  string
	SizeInBytes uint64

	TotalSectors uint64
	SectorSize   uint64

	// IsRemovableMedia is true for SD cards and similar flash media,
	// which get a stricter partition policy.
	IsRemovableMedia bool

	// RootPartitionStart is the start sector of the existing root
	// partition, the partition immediately following boot.
	RootPartitionStart uint64
	RootPartitionPath  string
	RootPartitionIndex int
}

type DeviceInspector interface {
	GetDeviceGeometry(devicePath string) (DeviceGeometry, error)

	// IsActiveRootDisk reports whether devicePath backs the currently
	// mounted root filesystem.
	IsActiveRootDisk(devicePath string) (bool, error)

	// WaitForDeviceNode blocks until the kernel has surfaced the device
	// node for a freshly created partition.
	WaitForDeviceNode(partitionPath string) error
}

type DeviceNotFoundError struct {
	Path string
}

func (e DeviceNotFoundError) Error() string {
	return fmt.Sprintf("Device `%s' does not exist", e.Path)
}

type DeviceQueryFailedError struct {
	Path  string
	Cause error
}

func (e DeviceQueryFailedError) Error() string {
	return fmt.Sprintf("Querying device `%s': %s", e.Path, e.Cause)
}
