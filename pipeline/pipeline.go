// Package pipeline sequences the irreversible operations of a
// repartitioning run. Stages run strictly in order, each one waiting
// for its external tool to exit before the next starts. On the first
// failure the run halts: completed partition and filesystem mutations
// stay as they are (undoing a shrink or format is not generally
// possible), while mounts established along the way are unwound.
package pipeline

import (
	"path/filepath"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	"github.com/greenpdx/crpart/disk"
	"github.com/greenpdx/crpart/layout"
	"github.com/greenpdx/crpart/settings"
)

// BaseMountPoint is where the new root filesystem is staged during
// migration; var and home are mounted beneath it.
const BaseMountPoint = "/mnt/crpart"

type Pipeline struct {
	fs          boshsys.FileSystem
	resizer     disk.FileSystemResizer
	editor      disk.PartitionEditor
	formatter   disk.Formatter
	mounter     disk.Mounter
	inspector   disk.DeviceInspector
	identifiers disk.IdentifierResolver
	migrator    Migrator
	fstab       FstabWriter
	logger      boshlog.Logger
	logTag      string
}

func New(
	fs boshsys.FileSystem,
	resizer disk.FileSystemResizer,
	editor disk.PartitionEditor,
	formatter disk.Formatter,
	mounter disk.Mounter,
	inspector disk.DeviceInspector,
	identifiers disk.IdentifierResolver,
	migrator Migrator,
	fstab FstabWriter,
	logger boshlog.Logger,
) Pipeline {
	return Pipeline{
		fs:          fs,
		resizer:     resizer,
		editor:      editor,
		formatter:   formatter,
		mounter:     mounter,
		inspector:   inspector,
		identifiers: identifiers,
		migrator:    migrator,
		fstab:       fstab,
		logger:      logger,
		logTag:      "Pipeline",
	}
}

// Run executes a validated plan. In dry-run mode it returns before the
// first stage without invoking anything.
func (p Pipeline) Run(config settings.RunConfig, geometry disk.DeviceGeometry, plan layout.Plan) (Outcome, error) {
	outcome := Outcome{FileSystemCheckClean: true}

	if config.DryRun {
		p.logger.Info(p.logTag, "Dry run: stopping before any destructive operation")
		return outcome, nil
	}

	rootSpec, _ := plan.Partition(layout.RoleRoot)
	rootPath := geometry.RootPartitionPath

	p.logger.Info(p.logTag, "Stage %s", StageCheckFileSystem)
	clean, err := p.resizer.CheckFileSystem(rootPath)
	if err != nil {
		return outcome, StageError{Stage: StageCheckFileSystem, Cause: err}
	}
	if !clean {
		p.logger.Warn(p.logTag, "Filesystem check on %s reported problems, continuing", rootPath)
		outcome.FileSystemCheckClean = false
	}

	p.logger.Info(p.logTag, "Stage %s", StageShrinkFileSystem)
	err = p.resizer.ShrinkFileSystem(rootPath, rootSpec.SizeInBytes())
	if err != nil {
		return outcome, StageError{Stage: StageShrinkFileSystem, Cause: err}
	}

	p.logger.Info(p.logTag, "Stage %s", StageResizeRootPartition)
	err = p.editor.ResizePartition(
		geometry.DevicePath,
		geometry.RootPartitionIndex,
		rootSpec.StartSector,
		rootSpec.EndSector,
		rootSpec.FileSystem,
	)
	if err != nil {
		return outcome, StageError{Stage: StageResizeRootPartition, Cause: err}
	}

	partitionPaths := map[layout.Role]string{layout.RoleRoot: rootPath}

	for _, creation := range []struct {
		role  layout.Role
		stage Stage
	}{
		{layout.RoleSwap, StageCreateSwap},
		{layout.RoleVar, StageCreateVar},
		{layout.RoleHome, StageCreateHome},
	} {
		spec, wanted := plan.Partition(creation.role)
		if !wanted {
			continue
		}

		p.logger.Info(p.logTag, "Stage %s", creation.stage)
		partitionPath, err := p.createAndFormat(geometry.DevicePath, spec)
		if err != nil {
			return outcome, StageError{Stage: creation.stage, Cause: err}
		}

		partitionPaths[creation.role] = partitionPath
	}

	mounts := newMountStack(p.mounter, p.logger)

	p.logger.Info(p.logTag, "Stage %s", StageMountAll)
	varMount, homeMount, err := p.mountAll(plan, partitionPaths, mounts)
	if err != nil {
		mounts.Unwind()
		return outcome, StageError{Stage: StageMountAll, Cause: err}
	}

	if _, hasVar := plan.Partition(layout.RoleVar); hasVar {
		p.logger.Info(p.logTag, "Stage %s", StageMigrateVar)
		err = p.migrator.MigrateSubtree(filepath.Join(BaseMountPoint, "var"), varMount)
		if err != nil {
			mounts.Unwind()
			return outcome, StageError{Stage: StageMigrateVar, Cause: err}
		}
	}

	p.logger.Info(p.logTag, "Stage %s", StageMigrateHome)
	err = p.migrator.MigrateSubtree(filepath.Join(BaseMountPoint, "home"), homeMount)
	if err != nil {
		mounts.Unwind()
		return outcome, StageError{Stage: StageMigrateHome, Cause: err}
	}

	p.logger.Info(p.logTag, "Stage %s", StageUpdatePersistedMounts)
	created, err := p.updatePersistedMounts(plan, partitionPaths)
	if err != nil {
		mounts.Unwind()
		return outcome, StageError{Stage: StageUpdatePersistedMounts, Cause: err}
	}
	outcome.FileSystemsCreated = created

	p.logger.Info(p.logTag, "Stage %s", StageUnmountAll)
	err = mounts.UnmountAll()
	if err != nil {
		return outcome, StageError{Stage: StageUnmountAll, Cause: err}
	}

	return outcome, nil
}

func (p Pipeline) createAndFormat(devicePath string, spec layout.PartitionSpec) (string, error) {
	index, err := p.editor.CreatePartition(devicePath, spec.FileSystem, spec.StartSector, spec.EndSector)
	if err != nil {
		return "", err
	}

	partitionPath := disk.PartitionDevicePath(devicePath, index)

	err = p.inspector.WaitForDeviceNode(partitionPath)
	if err != nil {
		return "", err
	}

	err = p.formatter.Format(partitionPath, spec.FileSystem)
	if err != nil {
		return "", err
	}

	return partitionPath, nil
}

// mountAll mounts the shrunk root at the staging point, then the new
// var and home partitions beneath it, var before home. Swap is never
// mounted; it only gets an fstab entry.
func (p Pipeline) mountAll(plan layout.Plan, partitionPaths map[layout.Role]string, mounts *mountStack) (varMount, homeMount string, err error) {
	err = p.mountOne(partitionPaths[layout.RoleRoot], BaseMountPoint, mounts)
	if err != nil {
		return "", "", err
	}

	if _, hasVar := plan.Partition(layout.RoleVar); hasVar {
		varMount = filepath.Join(BaseMountPoint, "mnt", "var")
		err = p.mountOne(partitionPaths[layout.RoleVar], varMount, mounts)
		if err != nil {
			return "", "", err
		}
	}

	homeMount = filepath.Join(BaseMountPoint, "mnt", "home")
	err = p.mountOne(partitionPaths[layout.RoleHome], homeMount, mounts)
	if err != nil {
		return "", "", err
	}

	return varMount, homeMount, nil
}

func (p Pipeline) mountOne(partitionPath, mountPoint string, mounts *mountStack) error {
	err := p.fs.MkdirAll(mountPoint, 0755)
	if err != nil {
		return err
	}

	err = p.mounter.Mount(partitionPath, mountPoint)
	if err != nil {
		return err
	}

	mounts.Push(mountPoint)
	return nil
}

func (p Pipeline) updatePersistedMounts(plan layout.Plan, partitionPaths map[layout.Role]string) ([]CreatedFileSystem, error) {
	var created []CreatedFileSystem
	var entries []FstabEntry

	for _, persisted := range []struct {
		role       layout.Role
		mountPoint string
		options    string
		dumpFlag   int
		passFlag   int
	}{
		{layout.RoleSwap, "none", "sw", 0, 0},
		{layout.RoleVar, "/var", "defaults,noatime", 0, 2},
		{layout.RoleHome, "/home", "defaults,noatime", 0, 2},
	} {
		spec, wanted := plan.Partition(persisted.role)
		if !wanted {
			continue
		}

		partitionPath := partitionPaths[persisted.role]
		fsUUID, err := p.identifiers.FileSystemUUID(partitionPath)
		if err != nil {
			return nil, err
		}

		created = append(created, CreatedFileSystem{
			Role:          persisted.role,
			PartitionPath: partitionPath,
			FileSystem:    spec.FileSystem,
			UUID:          fsUUID,
		})

		entries = append(entries, FstabEntry{
			UUID:       fsUUID,
			MountPoint: persisted.mountPoint,
			FileSystem: spec.FileSystem,
			Options:    persisted.options,
			DumpFlag:   persisted.dumpFlag,
			PassFlag:   persisted.passFlag,
		})
	}

	err := p.fstab.Update(filepath.Join(BaseMountPoint, "etc", "fstab"), entries)
	if err != nil {
		return nil, err
	}

	return created, nil
}
