package disk

// PartitionEditor mutates the on-disk partition table. Every method
// leaves the kernel's view of the table refreshed (partprobe) before
// returning.
type PartitionEditor interface {
	// ResizePartition recreates an existing partition with a new end
	// sector, keeping its start sector and filesystem contents.
	ResizePartition(devicePath string, index int, startSector, endSector uint64, fsType FileSystemType) error

	// CreatePartition appends a new partition covering the given sector
	// span and returns its partition index.
	CreatePartition(devicePath string, fsType FileSystemType, startSector, endSector uint64) (index int, err error)
}
