package pipeline_test

import (
	"errors"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/greenpdx/crpart/pipeline"
)

var _ = Describe("RsyncMigrator", func() {
	var (
		runner   *fakesys.FakeCmdRunner
		migrator pipeline.Migrator
	)

	BeforeEach(func() {
		runner = fakesys.NewFakeCmdRunner()
		migrator = pipeline.NewRsyncMigrator(runner, boshlog.NewLogger(boshlog.LevelNone))
	})

	It("copies the subtree contents with attributes preserved", func() {
		err := migrator.MigrateSubtree("/mnt/crpart/home", "/mnt/crpart/mnt/home")
		Expect(err).ToNot(HaveOccurred())

		Expect(runner.RunCommands).To(Equal([][]string{
			{"rsync", "-aHAX", "--numeric-ids", "/mnt/crpart/home/", "/mnt/crpart/mnt/home/"},
		}))
	})

	It("wraps rsync failures", func() {
		runner.AddCmdResult(
			"rsync -aHAX --numeric-ids /mnt/crpart/home/ /mnt/crpart/mnt/home/",
			fakesys.FakeCmdResult{ExitStatus: 23, Error: errors.New("fake-rsync-error")},
		)

		err := migrator.MigrateSubtree("/mnt/crpart/home", "/mnt/crpart/mnt/home")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Copying"))
	})
})
