package fakes

import (
	"github.com/greenpdx/crpart/disk"
)

type FakeDeviceInspector struct {
	GetDeviceGeometryDevicePath string
	GetDeviceGeometryGeometry   disk.DeviceGeometry
	GetDeviceGeometryErr        error

	IsActiveRootDiskDevicePath string
	IsActiveRootDiskResult     bool
	IsActiveRootDiskErr        error

	WaitForDeviceNodePaths []string
	WaitForDeviceNodeErr   error
}

func (i *FakeDeviceInspector) GetDeviceGeometry(devicePath string) (disk.DeviceGeometry, error) {
	i.GetDeviceGeometryDevicePath = devicePath
	return i.GetDeviceGeometryGeometry, i.GetDeviceGeometryErr
}

func (i *FakeDeviceInspector) IsActiveRootDisk(devicePath string) (bool, error) {
	i.IsActiveRootDiskDevicePath = devicePath
	return i.IsActiveRootDiskResult, i.IsActiveRootDiskErr
}

func (i *FakeDeviceInspector) WaitForDeviceNode(partitionPath string) error {
	i.WaitForDeviceNodePaths = append(i.WaitForDeviceNodePaths, partitionPath)
	return i.WaitForDeviceNodeErr
}
