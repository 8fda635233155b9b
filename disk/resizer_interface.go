package disk

// FileSystemResizer checks and shrinks an existing ext4 filesystem
// before its partition is resized.
type FileSystemResizer interface {
	// CheckFileSystem runs a forced consistency check. A failed check is
	// reported via the returned clean flag rather than an error, since
	// the repartition sequence treats it as advisory.
	CheckFileSystem(partitionPath string) (clean bool, err error)

	// ShrinkFileSystem resizes the filesystem down to newSizeInBytes.
	ShrinkFileSystem(partitionPath string, newSizeInBytes uint64) error
}
