package pipeline

import (
	"fmt"

	"github.com/greenpdx/crpart/disk"
	"github.com/greenpdx/crpart/layout"
)

// Stage names the steps of the execution pipeline, in order. Each stage
// drives exactly one external capability; a failed stage terminates the
// run immediately.
type Stage string

const (
	StageCheckFileSystem       Stage = "CheckFilesystem"
	StageShrinkFileSystem      Stage = "ShrinkFilesystem"
	StageResizeRootPartition   Stage = "ResizeRootPartition"
	StageCreateSwap            Stage = "CreateSwap"
	StageCreateVar             Stage = "CreateVar"
	StageCreateHome            Stage = "CreateHome"
	StageMountAll              Stage = "MountAll"
	StageMigrateVar            Stage = "MigrateVar"
	StageMigrateHome           Stage = "MigrateHome"
	StageUpdatePersistedMounts Stage = "UpdatePersistedMounts"
	StageUnmountAll            Stage = "UnmountAll"
)

// StageError is the terminal failure state: the stage that failed and
// why. Partition and filesystem mutations made by earlier stages are
// not rolled back; only mount state is unwound.
type StageError struct {
	Stage Stage
	Cause error
}

func (e StageError) Error() string {
	return fmt.Sprintf("Stage %s failed: %s", e.Stage, e.Cause)
}

func (e StageError) Unwrap() error {
	return e.Cause
}

// CreatedFileSystem records a filesystem made during the run, with the
// identifier assigned by mkfs.
type CreatedFileSystem struct {
	Role          layout.Role
	PartitionPath string
	FileSystem    disk.FileSystemType
	UUID          string
}

// Outcome is the terminal success result of a pipeline run.
type Outcome struct {
	FileSystemsCreated []CreatedFileSystem

	// FileSystemCheckClean is false when e2fsck reported problems; the
	// run continues but the operator should know.
	FileSystemCheckClean bool
}
