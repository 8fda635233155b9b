package disk

import (
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	"github.com/greenpdx/crpart/disk/sector"
)

const (
	rootPartitionIndex = 2

	deviceSettleDelay    = 500 * time.Millisecond
	deviceSettleAttempts = 4
)

type partedDeviceInspector struct {
	runner         boshsys.CmdRunner
	fs             boshsys.FileSystem
	mountsSearcher MountsSearcher
	timeService    clock.Clock
	logger         boshlog.Logger
	logTag         string
}

func NewPartedDeviceInspector(
	runner boshsys.CmdRunner,
	fs boshsys.FileSystem,
	mountsSearcher MountsSearcher,
	timeService clock.Clock,
	logger boshlog.Logger,
) DeviceInspector {
	return partedDeviceInspector{
		runner:         runner,
		fs:             fs,
		mountsSearcher: mountsSearcher,
		timeService:    timeService,
		logger:         logger,
		logTag:         "PartedDeviceInspector",
	}
}

func (i partedDeviceInspector) GetDeviceGeometry(devicePath string) (DeviceGeometry, error) {
	devicePath = NormalizeDevicePath(devicePath)

	if !i.fs.FileExists(devicePath) {
		return DeviceGeometry{}, DeviceNotFoundError{Path: devicePath}
	}

	sizeInBytes, err := i.getDeviceSizeInBytes(devicePath)
	if err != nil {
		return DeviceGeometry{}, DeviceQueryFailedError{Path: devicePath, Cause: err}
	}

	removable, err := i.isRemovableMedia(devicePath)
	if err != nil {
		return DeviceGeometry{}, DeviceQueryFailedError{Path: devicePath, Cause: err}
	}

	rootPartitionPath := PartitionDevicePath(devicePath, rootPartitionIndex)
	if !i.fs.FileExists(rootPartitionPath) {
		return DeviceGeometry{}, DeviceNotFoundError{Path: rootPartitionPath}
	}

	rootStart, err := i.getPartitionStartSector(devicePath, rootPartitionIndex)
	if err != nil {
		return DeviceGeometry{}, DeviceQueryFailedError{Path: devicePath, Cause: err}
	}

	geometry := DeviceGeometry{
		DevicePath:         devicePath,
		SizeInBytes:        sizeInBytes,
		TotalSectors:       sizeInBytes / sector.SectorSize,
		SectorSize:         sector.SectorSize,
		IsRemovableMedia:   removable,
		RootPartitionStart: rootStart,
		RootPartitionPath:  rootPartitionPath,
		RootPartitionIndex: rootPartitionIndex,
	}

	i.logger.Debug(i.logTag, "Geometry for %s: %d sectors, removable=%t, root starts at %d",
		devicePath, geometry.TotalSectors, geometry.IsRemovableMedia, geometry.RootPartitionStart)

	return geometry, nil
}

func (i partedDeviceInspector) IsActiveRootDisk(devicePath string) (bool, error) {
	devicePath = NormalizeDevicePath(devicePath)

	mounts, err := i.mountsSearcher.SearchMounts()
	if err != nil {
		return false, bosherr.WrapError(err, "Searching system mounts")
	}

	for _, mount := range mounts {
		if mount.MountPoint != "/" {
			continue
		}
		if isPartitionOf(mount.PartitionPath, devicePath) {
			return true, nil
		}
	}

	return false, nil
}

func (i partedDeviceInspector) WaitForDeviceNode(partitionPath string) error {
	for attempt := 0; attempt < deviceSettleAttempts; attempt++ {
		if i.fs.FileExists(partitionPath) {
			return nil
		}
		i.timeService.Sleep(deviceSettleDelay)
	}

	return DeviceNotFoundError{Path: partitionPath}
}

func (i partedDeviceInspector) getDeviceSizeInBytes(devicePath string) (uint64, error) {
	stdout, _, _, err := i.runner.RunCommand("lsblk", "--nodeps", "-nb", "-o", "SIZE", devicePath)
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Getting block device size of `%s'", devicePath)
	}

	deviceSize, err := strconv.ParseUint(strings.TrimSpace(stdout), 10, 64)
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Converting block device size of `%s'", devicePath)
	}

	return deviceSize, nil
}

func (i partedDeviceInspector) isRemovableMedia(devicePath string) (bool, error) {
	// mmcblk devices are SD/eMMC media regardless of what the kernel
	// reports in the removable flag.
	if strings.Contains(devicePath, "mmcblk") {
		return true, nil
	}

	stdout, _, _, err := i.runner.RunCommand("lsblk", "--nodeps", "-no", "RM", devicePath)
	if err != nil {
		return false, bosherr.WrapErrorf(err, "Getting removable flag of `%s'", devicePath)
	}

	return strings.TrimSpace(stdout) == "1", nil
}

// For reference on the parted machine-readable format:
// http://lists.alioth.debian.org/pipermail/parted-devel/2006-December/000573.html
func (i partedDeviceInspector) getPartitionStartSector(devicePath string, index int) (uint64, error) {
	stdout, _, _, err := i.runner.RunCommand("parted", "-m", devicePath, "unit", "s", "print")
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Running parted print on `%s'", devicePath)
	}

	for _, line := range strings.Split(stdout, "\n") {
		fields := strings.Split(strings.TrimSuffix(line, ";"), ":")
		if len(fields) < 3 {
			continue
		}

		partitionIndex, err := strconv.Atoi(fields[0])
		if err != nil || partitionIndex != index {
			continue
		}

		start, err := strconv.ParseUint(strings.TrimSuffix(fields[1], "s"), 10, 64)
		if err != nil {
			return 0, bosherr.WrapErrorf(err, "Parsing start sector of partition %d", index)
		}

		return start, nil
	}

	return 0, bosherr.Errorf("Could not find partition %d on `%s'", index, devicePath)
}
