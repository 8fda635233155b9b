package fakes

import (
	"github.com/greenpdx/crpart/disk"
)

type ResizePartitionCall struct {
	DevicePath  string
	Index       int
	StartSector uint64
	EndSector   uint64
	FsType      disk.FileSystemType
}

type CreatePartitionCall struct {
	DevicePath  string
	FsType      disk.FileSystemType
	StartSector uint64
	EndSector   uint64
}

type FakePartitionEditor struct {
	ResizePartitionCalls []ResizePartitionCall
	ResizePartitionErr   error

	CreatePartitionCalls []CreatePartitionCall
	CreatePartitionIndex int

	// CreatePartitionErrAtCall fails the nth create (1-based) with
	// CreatePartitionErr; zero never fails.
	CreatePartitionErrAtCall int
	CreatePartitionErr       error
}

func (e *FakePartitionEditor) ResizePartition(devicePath string, index int, startSector, endSector uint64, fsType disk.FileSystemType) error {
	e.ResizePartitionCalls = append(e.ResizePartitionCalls, ResizePartitionCall{
		DevicePath:  devicePath,
		Index:       index,
		StartSector: startSector,
		EndSector:   endSector,
		FsType:      fsType,
	})
	return e.ResizePartitionErr
}

func (e *FakePartitionEditor) CreatePartition(devicePath string, fsType disk.FileSystemType, startSector, endSector uint64) (int, error) {
	e.CreatePartitionCalls = append(e.CreatePartitionCalls, CreatePartitionCall{
		DevicePath:  devicePath,
		FsType:      fsType,
		StartSector: startSector,
		EndSector:   endSector,
	})

	if e.CreatePartitionErrAtCall != 0 && len(e.CreatePartitionCalls) == e.CreatePartitionErrAtCall {
		return 0, e.CreatePartitionErr
	}

	e.CreatePartitionIndex++
	return e.CreatePartitionIndex, nil
}
