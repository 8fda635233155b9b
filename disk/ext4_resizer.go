package disk

import (
	"fmt"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

// resize2fs operates on 4K filesystem blocks; the shrink target is
// rounded down to a whole number of them.
const ext4BlockSize = 4096

type ext4FileSystemResizer struct {
	runner boshsys.CmdRunner
	logger boshlog.Logger
	logTag string
}

func NewExt4FileSystemResizer(runner boshsys.CmdRunner, logger boshlog.Logger) FileSystemResizer {
	return ext4FileSystemResizer{
		runner: runner,
		logger: logger,
		logTag: "Ext4FileSystemResizer",
	}
}

func (r ext4FileSystemResizer) CheckFileSystem(partitionPath string) (bool, error) {
	_, _, exitStatus, err := r.runner.RunCommand("e2fsck", "-f", "-y", partitionPath)
	if err != nil {
		// A positive exit status means e2fsck ran and found problems,
		// which is advisory here. Anything else (exit -1: the command
		// could not be started) is a real error.
		if exitStatus > 0 {
			r.logger.Warn(r.logTag, "e2fsck on %s exited %d: %s", partitionPath, exitStatus, err)
			return false, nil
		}
		return false, bosherr.WrapErrorf(err, "Shelling out to e2fsck for `%s'", partitionPath)
	}

	return true, nil
}

func (r ext4FileSystemResizer) ShrinkFileSystem(partitionPath string, newSizeInBytes uint64) error {
	blocks := newSizeInBytes / ext4BlockSize

	r.logger.Info(r.logTag, "Shrinking filesystem on %s to %d 4K blocks", partitionPath, blocks)

	_, _, _, err := r.runner.RunCommand(
		"resize2fs",
		partitionPath,
		fmt.Sprintf("%dK", blocks*(ext4BlockSize/1024)),
	)
	if err != nil {
		return bosherr.WrapErrorf(err, "Shrinking filesystem on `%s'", partitionPath)
	}

	return nil
}
