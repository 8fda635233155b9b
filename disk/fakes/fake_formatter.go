package fakes

import (
	"github.com/greenpdx/crpart/disk"
)

type FormatCall struct {
	PartitionPath string
	FsType        disk.FileSystemType
}

type FakeFormatter struct {
	FormatCalls []FormatCall
	FormatErr   error
}

func (f *FakeFormatter) Format(partitionPath string, fsType disk.FileSystemType) error {
	f.FormatCalls = append(f.FormatCalls, FormatCall{PartitionPath: partitionPath, FsType: fsType})
	return f.FormatErr
}
