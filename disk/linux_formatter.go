package disk

import (
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type linuxFormatter struct {
	runner boshsys.CmdRunner
}

func NewLinuxFormatter(runner boshsys.CmdRunner) Formatter {
	return linuxFormatter{runner: runner}
}

func (f linuxFormatter) Format(partitionPath string, fsType FileSystemType) error {
	switch fsType {
	case FileSystemSwap:
		_, _, _, err := f.runner.RunCommand("mkswap", partitionPath)
		if err != nil {
			return bosherr.WrapError(err, "Shelling out to mkswap")
		}

	case FileSystemBTRFS:
		_, _, _, err := f.runner.RunCommand("mkfs.btrfs", "-f", partitionPath)
		if err != nil {
			return bosherr.WrapError(err, "Shelling out to mkfs.btrfs")
		}

	case FileSystemExt4:
		_, _, _, err := f.runner.RunCommand("mkfs.ext4", "-F", partitionPath)
		if err != nil {
			return bosherr.WrapError(err, "Shelling out to mkfs.ext4")
		}

	default:
		return bosherr.Errorf("Unsupported filesystem type `%s'", fsType)
	}

	return nil
}
