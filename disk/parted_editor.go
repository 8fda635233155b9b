package disk

import (
	"fmt"
	"strconv"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type partedPartitionEditor struct {
	runner boshsys.CmdRunner
	logger boshlog.Logger
	logTag string
}

func NewPartedPartitionEditor(runner boshsys.CmdRunner, logger boshlog.Logger) PartitionEditor {
	return partedPartitionEditor{
		runner: runner,
		logger: logger,
		logTag: "PartedPartitionEditor",
	}
}

func (e partedPartitionEditor) ResizePartition(devicePath string, index int, startSector, endSector uint64, fsType FileSystemType) error {
	e.logger.Info(e.logTag, "Resizing partition %d on %s to sectors %d-%d", index, devicePath, startSector, endSector)

	_, _, _, err := e.runner.RunCommand("parted", "-s", devicePath, "rm", strconv.Itoa(index))
	if err != nil {
		return bosherr.WrapErrorf(err, "Removing partition %d from `%s'", index, devicePath)
	}

	err = e.mkpart(devicePath, fsType, startSector, endSector)
	if err != nil {
		return bosherr.WrapErrorf(err, "Recreating partition %d on `%s'", index, devicePath)
	}

	return e.probe(devicePath)
}

func (e partedPartitionEditor) CreatePartition(devicePath string, fsType FileSystemType, startSector, endSector uint64) (int, error) {
	index, err := e.nextPartitionIndex(devicePath)
	if err != nil {
		return 0, err
	}

	e.logger.Info(e.logTag, "Creating partition %d (%s) on %s at sectors %d-%d", index, fsType, devicePath, startSector, endSector)

	err = e.mkpart(devicePath, fsType, startSector, endSector)
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Creating partition on `%s'", devicePath)
	}

	err = e.probe(devicePath)
	if err != nil {
		return 0, err
	}

	return index, nil
}

func (e partedPartitionEditor) mkpart(devicePath string, fsType FileSystemType, startSector, endSector uint64) error {
	_, _, _, err := e.runner.RunCommand(
		"parted",
		"-s",
		devicePath,
		"unit", "s",
		"mkpart",
		"primary",
		partedFileSystemName(fsType),
		fmt.Sprintf("%ds", startSector),
		fmt.Sprintf("%ds", endSector),
	)
	return err
}

func (e partedPartitionEditor) probe(devicePath string) error {
	_, _, _, err := e.runner.RunCommand("partprobe", devicePath)
	if err != nil {
		return bosherr.WrapErrorf(err, "Re-reading partition table for `%s'", devicePath)
	}
	return nil
}

func (e partedPartitionEditor) nextPartitionIndex(devicePath string) (int, error) {
	stdout, _, _, err := e.runner.RunCommand("parted", "-m", devicePath, "unit", "s", "print")
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Running parted print on `%s'", devicePath)
	}

	maxIndex := 0
	for _, line := range strings.Split(stdout, "\n") {
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}

		index, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		if index > maxIndex {
			maxIndex = index
		}
	}

	return maxIndex + 1, nil
}

func partedFileSystemName(fsType FileSystemType) string {
	if fsType == FileSystemSwap {
		return "linux-swap"
	}
	return string(fsType)
}
