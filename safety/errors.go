package safety

import "fmt"

type PermissionDeniedError struct{}

func (e PermissionDeniedError) Error() string {
	return "This program must be run as root"
}

type ActiveDiskRejectedError struct {
	DevicePath string
}

func (e ActiveDiskRejectedError) Error() string {
	return fmt.Sprintf("Device `%s' backs the running root filesystem (pass --allow-active-disk to override)", e.DevicePath)
}

type MissingDependencyError struct {
	Tool    string
	Package string
}

func (e MissingDependencyError) Error() string {
	return fmt.Sprintf("Required tool `%s' not found (install package `%s')", e.Tool, e.Package)
}
