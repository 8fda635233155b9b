// Package settings holds the immutable per-invocation configuration,
// parsed once at the CLI boundary.
package settings

type RunConfig struct {
	DevicePath string

	RootSizeInBytes uint64
	// Zero means the partition is not requested.
	SwapSizeInBytes uint64
	VarSizeInBytes  uint64

	// AllowActiveDisk permits operating on the disk backing the live
	// root filesystem. Off by default; destructive operations on the
	// active disk are unsafe.
	AllowActiveDisk bool

	// ForceRemovable selects the warn-and-allow policy for swap/var
	// partitions on removable media instead of the default hard deny.
	ForceRemovable bool

	// DryRun computes and reports the plan without mutating anything.
	DryRun bool
}
