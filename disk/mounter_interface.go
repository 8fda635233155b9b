package disk

type Mounter interface {
	Mount(partitionPath, mountPoint string, mountOptions ...string) (err error)
	Unmount(partitionOrMountPoint string) (didUnmount bool, err error)
	IsMounted(devicePathOrMountPoint string) (result bool, err error)
}
