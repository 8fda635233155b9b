package disk

import (
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type procMountsSearcher struct {
	fs boshsys.FileSystem
}

func NewProcMountsSearcher(fs boshsys.FileSystem) MountsSearcher {
	return procMountsSearcher{fs}
}

func (s procMountsSearcher) SearchMounts() ([]Mount, error) {
	mountInfo, err := s.fs.ReadFileString("/proc/mounts")
	if err != nil {
		return nil, bosherr.WrapError(err, "Reading /proc/mounts")
	}

	lines := strings.Split(mountInfo, "\n")
	mounts := make([]Mount, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)

		// Entries are "<source> <mount point> <type> <options> ...";
		// anything shorter is not a mount entry.
		if len(fields) < 2 {
			continue
		}

		mounts = append(mounts, Mount{
			PartitionPath: fields[0],
			MountPoint:    fields[1],
		})
	}

	return mounts, nil
}
