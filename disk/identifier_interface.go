package disk

// IdentifierResolver returns the stable unique identifier of a
// formatted partition. Identifiers only exist after mkfs/mkswap has
// run on the partition.
type IdentifierResolver interface {
	FileSystemUUID(partitionPath string) (string, error)
}
