// Package safety runs the pre-flight checks that stand between a
// computed plan and the first destructive operation. Checks run in a
// fixed order and short-circuit on the first failure.
package safety

import (
	"os"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	"github.com/greenpdx/crpart/disk"
	"github.com/greenpdx/crpart/layout"
	"github.com/greenpdx/crpart/settings"
)

type RequiredTool struct {
	Name    string
	Package string
}

// RequiredTools lists every external capability the pipeline invokes.
// Installation is the operator's job; the gate only reports absence.
var RequiredTools = []RequiredTool{
	{"parted", "parted"},
	{"partprobe", "parted"},
	{"e2fsck", "e2fsprogs"},
	{"resize2fs", "e2fsprogs"},
	{"mkfs.ext4", "e2fsprogs"},
	{"mkfs.btrfs", "btrfs-progs"},
	{"mkswap", "util-linux"},
	{"blkid", "util-linux"},
	{"mount", "util-linux"},
	{"umount", "util-linux"},
	{"rsync", "rsync"},
}

type Gate struct {
	runner    boshsys.CmdRunner
	fs        boshsys.FileSystem
	inspector disk.DeviceInspector
	logger    boshlog.Logger
	logTag    string
	geteuid   func() int
}

func NewGate(
	runner boshsys.CmdRunner,
	fs boshsys.FileSystem,
	inspector disk.DeviceInspector,
	logger boshlog.Logger,
) Gate {
	return NewGateWithGeteuid(runner, fs, inspector, logger, os.Geteuid)
}

// NewGateWithGeteuid allows tests to stand in for the privilege check.
func NewGateWithGeteuid(
	runner boshsys.CmdRunner,
	fs boshsys.FileSystem,
	inspector disk.DeviceInspector,
	logger boshlog.Logger,
	geteuid func() int,
) Gate {
	return Gate{
		runner:    runner,
		fs:        fs,
		inspector: inspector,
		logger:    logger,
		logTag:    "SafetyGate",
		geteuid:   geteuid,
	}
}

// Check validates the environment and the plan. It performs no
// mutations; passing it is the precondition for the execution pipeline.
func (g Gate) Check(config settings.RunConfig, plan layout.Plan) error {
	if g.geteuid() != 0 {
		return PermissionDeniedError{}
	}

	devicePath := disk.NormalizeDevicePath(config.DevicePath)

	if !g.fs.FileExists(devicePath) {
		return disk.DeviceNotFoundError{Path: devicePath}
	}

	isBlock, err := g.isBlockDevice(devicePath)
	if err != nil {
		return bosherr.WrapErrorf(err, "Classifying `%s'", devicePath)
	}
	if !isBlock {
		return disk.DeviceNotFoundError{Path: devicePath}
	}

	active, err := g.inspector.IsActiveRootDisk(devicePath)
	if err != nil {
		return bosherr.WrapError(err, "Detecting active root disk")
	}
	if active {
		if !config.AllowActiveDisk {
			return ActiveDiskRejectedError{DevicePath: devicePath}
		}
		g.logger.Warn(g.logTag, "Operating on the active root disk by explicit override")
	}

	for _, tool := range RequiredTools {
		if !g.runner.CommandExists(tool.Name) {
			return MissingDependencyError{Tool: tool.Name, Package: tool.Package}
		}
	}

	if err := plan.Validate(); err != nil {
		return bosherr.WrapError(err, "Validating plan")
	}

	g.logger.Debug(g.logTag, "All pre-flight checks passed for %s", devicePath)
	return nil
}

func (g Gate) isBlockDevice(devicePath string) (bool, error) {
	stdout, _, _, err := g.runner.RunCommand("lsblk", "--nodeps", "-no", "TYPE", devicePath)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(stdout) == "disk", nil
}
