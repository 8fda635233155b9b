package pipeline

import (
	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
)

type rsyncMigrator struct {
	runner boshsys.CmdRunner
	logger boshlog.Logger
	logTag string
}

func NewRsyncMigrator(runner boshsys.CmdRunner, logger boshlog.Logger) Migrator {
	return rsyncMigrator{
		runner: runner,
		logger: logger,
		logTag: "RsyncMigrator",
	}
}

func (m rsyncMigrator) MigrateSubtree(sourceDir, targetDir string) error {
	m.logger.Info(m.logTag, "Migrating %s to %s", sourceDir, targetDir)

	// -aHAX preserves permissions, ownership, timestamps, hard links,
	// ACLs and xattrs; trailing slashes copy contents, not the dir.
	_, _, _, err := m.runner.RunCommand("rsync", "-aHAX", "--numeric-ids", sourceDir+"/", targetDir+"/")
	if err != nil {
		return bosherr.WrapErrorf(err, "Copying `%s' to `%s'", sourceDir, targetDir)
	}

	return nil
}
