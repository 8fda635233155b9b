package disk

import (
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type linuxMounter struct {
	runner         boshsys.CmdRunner
	mountsSearcher MountsSearcher
}

func NewLinuxMounter(runner boshsys.CmdRunner, mountsSearcher MountsSearcher) Mounter {
	return linuxMounter{
		runner:         runner,
		mountsSearcher: mountsSearcher,
	}
}

func (m linuxMounter) Mount(partitionPath, mountPoint string, mountOptions ...string) error {
	mountArgs := []string{partitionPath, mountPoint}
	for _, option := range mountOptions {
		mountArgs = append(mountArgs, "-o", option)
	}

	_, _, _, err := m.runner.RunCommand("mount", mountArgs...)
	if err != nil {
		return bosherr.WrapErrorf(err, "Mounting `%s' at `%s'", partitionPath, mountPoint)
	}

	return nil
}

func (m linuxMounter) Unmount(partitionOrMountPoint string) (bool, error) {
	isMounted, err := m.IsMounted(partitionOrMountPoint)
	if err != nil || !isMounted {
		return false, err
	}

	_, _, _, err = m.runner.RunCommand("umount", partitionOrMountPoint)
	if err != nil {
		return false, bosherr.WrapErrorf(err, "Unmounting `%s'", partitionOrMountPoint)
	}

	return true, nil
}

func (m linuxMounter) IsMounted(devicePathOrMountPoint string) (bool, error) {
	mounts, err := m.mountsSearcher.SearchMounts()
	if err != nil {
		return false, bosherr.WrapError(err, "Searching mounts")
	}

	for _, mount := range mounts {
		if mount.PartitionPath == devicePathOrMountPoint || mount.MountPoint == devicePathOrMountPoint {
			return true, nil
		}
	}

	return false, nil
}
