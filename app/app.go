// Package app wires the concrete collaborators together and exposes
// the plan/execute entry points the CLI drives.
package app

import (
	"code.cloudfoundry.org/clock"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	"github.com/greenpdx/crpart/disk"
	"github.com/greenpdx/crpart/layout"
	"github.com/greenpdx/crpart/pipeline"
	"github.com/greenpdx/crpart/safety"
	"github.com/greenpdx/crpart/settings"
)

type App struct {
	logger    boshlog.Logger
	inspector disk.DeviceInspector
	gate      safety.Gate
	pipeline  pipeline.Pipeline
}

func New(logger boshlog.Logger) App {
	runner := boshsys.NewExecCmdRunner(logger)
	fs := boshsys.NewOsFileSystem(logger)
	timeService := clock.NewClock()

	mountsSearcher := disk.NewProcMountsSearcher(fs)
	inspector := disk.NewPartedDeviceInspector(runner, fs, mountsSearcher, timeService, logger)
	mounter := disk.NewLinuxMounter(runner, mountsSearcher)

	pipe := pipeline.New(
		fs,
		disk.NewExt4FileSystemResizer(runner, logger),
		disk.NewPartedPartitionEditor(runner, logger),
		disk.NewLinuxFormatter(runner),
		mounter,
		inspector,
		disk.NewBlkidIdentifierResolver(runner),
		pipeline.NewRsyncMigrator(runner, logger),
		pipeline.NewFstabWriter(fs, logger),
		logger,
	)

	return App{
		logger:    logger,
		inspector: inspector,
		gate:      safety.NewGate(runner, fs, inspector, logger),
		pipeline:  pipe,
	}
}

// Plan inspects the device and computes the partition plan without
// touching anything.
func (a App) Plan(config settings.RunConfig) (disk.DeviceGeometry, layout.Plan, error) {
	geometry, err := a.inspector.GetDeviceGeometry(config.DevicePath)
	if err != nil {
		return disk.DeviceGeometry{}, layout.Plan{}, err
	}

	policy := layout.RemovableDeny
	if config.ForceRemovable {
		policy = layout.RemovableWarnAndAllow
	}

	plan, err := layout.Compute(geometry, layout.Request{
		RootSizeInBytes: config.RootSizeInBytes,
		SwapSizeInBytes: config.SwapSizeInBytes,
		VarSizeInBytes:  config.VarSizeInBytes,
	}, policy)
	if err != nil {
		return disk.DeviceGeometry{}, layout.Plan{}, err
	}

	return geometry, plan, nil
}

// Execute runs the safety gate and, unless this is a dry run, the
// destructive pipeline.
func (a App) Execute(config settings.RunConfig, geometry disk.DeviceGeometry, plan layout.Plan) (pipeline.Outcome, error) {
	err := a.gate.Check(config, plan)
	if err != nil {
		return pipeline.Outcome{}, err
	}

	return a.pipeline.Run(config, geometry, plan)
}
