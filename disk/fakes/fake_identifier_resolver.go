package fakes

import "fmt"

type FakeIdentifierResolver struct {
	// UUIDs maps partition path to the UUID to report.
	UUIDs map[string]string

	FileSystemUUIDPaths []string
	FileSystemUUIDErr   error
}

func (r *FakeIdentifierResolver) FileSystemUUID(partitionPath string) (string, error) {
	r.FileSystemUUIDPaths = append(r.FileSystemUUIDPaths, partitionPath)

	if r.FileSystemUUIDErr != nil {
		return "", r.FileSystemUUIDErr
	}

	fsUUID, found := r.UUIDs[partitionPath]
	if !found {
		return "", fmt.Errorf("no UUID registered for %s", partitionPath)
	}

	return fsUUID, nil
}
