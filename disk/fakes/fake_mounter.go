package fakes

type MountCall struct {
	PartitionPath string
	MountPoint    string
}

type FakeMounter struct {
	MountCalls []MountCall
	MountErr   error

	// MountErrAtCall fails the nth mount (1-based); zero never fails.
	MountErrAtCall int

	UnmountCalls []string
	UnmountErr   error

	IsMountedResult bool
	IsMountedErr    error
}

func (m *FakeMounter) Mount(partitionPath, mountPoint string, mountOptions ...string) error {
	m.MountCalls = append(m.MountCalls, MountCall{PartitionPath: partitionPath, MountPoint: mountPoint})

	if m.MountErrAtCall != 0 && len(m.MountCalls) == m.MountErrAtCall {
		return m.MountErr
	}
	if m.MountErrAtCall == 0 && m.MountErr != nil {
		return m.MountErr
	}

	return nil
}

func (m *FakeMounter) Unmount(partitionOrMountPoint string) (bool, error) {
	m.UnmountCalls = append(m.UnmountCalls, partitionOrMountPoint)
	if m.UnmountErr != nil {
		return false, m.UnmountErr
	}
	return true, nil
}

func (m *FakeMounter) IsMounted(devicePathOrMountPoint string) (bool, error) {
	return m.IsMountedResult, m.IsMountedErr
}
