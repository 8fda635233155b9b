package fakes

type ShrinkFileSystemCall struct {
	PartitionPath  string
	NewSizeInBytes uint64
}

type FakeFileSystemResizer struct {
	CheckFileSystemPaths []string
	CheckFileSystemClean bool
	CheckFileSystemErr   error

	ShrinkFileSystemCalls []ShrinkFileSystemCall
	ShrinkFileSystemErr   error
}

func NewFakeFileSystemResizer() *FakeFileSystemResizer {
	return &FakeFileSystemResizer{CheckFileSystemClean: true}
}

func (r *FakeFileSystemResizer) CheckFileSystem(partitionPath string) (bool, error) {
	r.CheckFileSystemPaths = append(r.CheckFileSystemPaths, partitionPath)
	return r.CheckFileSystemClean, r.CheckFileSystemErr
}

func (r *FakeFileSystemResizer) ShrinkFileSystem(partitionPath string, newSizeInBytes uint64) error {
	r.ShrinkFileSystemCalls = append(r.ShrinkFileSystemCalls, ShrinkFileSystemCall{
		PartitionPath:  partitionPath,
		NewSizeInBytes: newSizeInBytes,
	})
	return r.ShrinkFileSystemErr
}
