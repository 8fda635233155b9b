package pipeline

import (
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"

	"github.com/greenpdx/crpart/disk"
)

// mountStack tracks mount points acquired during a run so every exit
// path can release them in reverse order. Partition and filesystem
// mutations have no such compensation; mounts are the only cheaply
// reversible resource.
type mountStack struct {
	mounter disk.Mounter
	points  []string
	logger  boshlog.Logger
	logTag  string
}

func newMountStack(mounter disk.Mounter, logger boshlog.Logger) *mountStack {
	return &mountStack{
		mounter: mounter,
		logger:  logger,
		logTag:  "MountStack",
	}
}

func (s *mountStack) Push(mountPoint string) {
	s.points = append(s.points, mountPoint)
}

// UnmountAll releases every mount in reverse order, attempting all of
// them and reporting the first failure.
func (s *mountStack) UnmountAll() error {
	var firstErr error

	for i := len(s.points) - 1; i >= 0; i-- {
		_, err := s.mounter.Unmount(s.points[i])
		if err != nil && firstErr == nil {
			firstErr = bosherr.WrapErrorf(err, "Unmounting `%s'", s.points[i])
		}
	}

	s.points = nil
	return firstErr
}

// Unwind is the failure-path variant: best-effort, errors only logged.
func (s *mountStack) Unwind() {
	for i := len(s.points) - 1; i >= 0; i-- {
		_, err := s.mounter.Unmount(s.points[i])
		if err != nil {
			s.logger.Warn(s.logTag, "Failed to unmount %s while unwinding: %s", s.points[i], err)
		}
	}
	s.points = nil
}
