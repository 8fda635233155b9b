package layout

import (
	"fmt"

	"github.com/greenpdx/crpart/sizes"
)

type RootSizeOutOfRangeError struct {
	SizeInBytes uint64
}

func (e RootSizeOutOfRangeError) Error() string {
	return fmt.Sprintf("Root size %s is out of range (minimum %s, maximum %s)",
		sizes.Format(e.SizeInBytes), sizes.Format(MinRootSizeInBytes), sizes.Format(MaxRootSizeInBytes))
}

type RootSizeExceedsDeviceError struct {
	SizeInBytes       uint64
	DeviceSizeInBytes uint64
}

func (e RootSizeExceedsDeviceError) Error() string {
	return fmt.Sprintf("Root size %s does not fit on the %s device with room left for home",
		sizes.Format(e.SizeInBytes), sizes.Format(e.DeviceSizeInBytes))
}

type RemovableMediaPolicyViolationError struct {
	Role Role
}

func (e RemovableMediaPolicyViolationError) Error() string {
	return fmt.Sprintf("A %s partition is not allowed on removable media (pass --force-removable to override)", e.Role)
}

type InsufficientHomeSpaceError struct {
	HomeSectors    uint64
	MinimumSectors uint64
}

func (e InsufficientHomeSpaceError) Error() string {
	return fmt.Sprintf("Insufficient space for home partition: %d sectors left, need at least %d (half the device)",
		e.HomeSectors, e.MinimumSectors)
}
