package disk_test

import (
	"errors"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	fakesys "github.com/cloudfoundry/bosh-utils/system/fakes"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/greenpdx/crpart/disk"
)

var _ = Describe("PartedPartitionEditor", func() {
	var (
		runner *fakesys.FakeCmdRunner
		editor disk.PartitionEditor
	)

	BeforeEach(func() {
		runner = fakesys.NewFakeCmdRunner()
		editor = disk.NewPartedPartitionEditor(runner, boshlog.NewLogger(boshlog.LevelNone))
	})

	Describe("ResizePartition", func() {
		It("removes and recreates the partition, then reprobes", func() {
			err := editor.ResizePartition("/dev/sda", 2, 532480, 34086911, disk.FileSystemExt4)
			Expect(err).ToNot(HaveOccurred())

			Expect(runner.RunCommands).To(Equal([][]string{
				{"parted", "-s", "/dev/sda", "rm", "2"},
				{"parted", "-s", "/dev/sda", "unit", "s", "mkpart", "primary", "ext4", "532480s", "34086911s"},
				{"partprobe", "/dev/sda"},
			}))
		})

		It("does not recreate the partition when the removal fails", func() {
			runner.AddCmdResult(
				"parted -s /dev/sda rm 2",
				fakesys.FakeCmdResult{ExitStatus: 1, Error: errors.New("fake-parted-error")},
			)

			err := editor.ResizePartition("/dev/sda", 2, 532480, 34086911, disk.FileSystemExt4)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Removing partition 2"))
			Expect(runner.RunCommands).To(HaveLen(1))
		})

		It("reports a failed recreate", func() {
			runner.AddCmdResult(
				"parted -s /dev/sda unit s mkpart primary ext4 532480s 34086911s",
				fakesys.FakeCmdResult{ExitStatus: 1, Error: errors.New("fake-parted-error")},
			)

			err := editor.ResizePartition("/dev/sda", 2, 532480, 34086911, disk.FileSystemExt4)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Recreating partition 2"))
		})
	})

	Describe("CreatePartition", func() {
		stubPrint := func() {
			runner.AddCmdResult(
				"parted -m /dev/sda unit s print",
				fakesys.FakeCmdResult{Stdout: `BYT;
/dev/sda:500118192s:scsi:512:512:msdos:disk:;
1:8192s:532479s:524288s:fat32::boot;
2:532480s:34086911s:33554432s:ext4::;
`},
			)
		}

		It("appends after the highest existing index", func() {
			stubPrint()

			index, err := editor.CreatePartition("/dev/sda", disk.FileSystemSwap, 34086912, 42475519)
			Expect(err).ToNot(HaveOccurred())
			Expect(index).To(Equal(3))

			Expect(runner.RunCommands).To(Equal([][]string{
				{"parted", "-m", "/dev/sda", "unit", "s", "print"},
				{"parted", "-s", "/dev/sda", "unit", "s", "mkpart", "primary", "linux-swap", "34086912s", "42475519s"},
				{"partprobe", "/dev/sda"},
			}))
		})

		It("names btrfs partitions as btrfs", func() {
			stubPrint()

			_, err := editor.CreatePartition("/dev/sda", disk.FileSystemBTRFS, 42475520, 59252735)
			Expect(err).ToNot(HaveOccurred())

			Expect(runner.RunCommands[1]).To(ContainElement("btrfs"))
		})

		It("fails when the partition table cannot be read", func() {
			runner.AddCmdResult(
				"parted -m /dev/sda unit s print",
				fakesys.FakeCmdResult{ExitStatus: 1, Error: errors.New("fake-parted-error")},
			)

			_, err := editor.CreatePartition("/dev/sda", disk.FileSystemSwap, 34086912, 42475519)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Running parted print"))
		})

		It("fails when the partition table cannot be reprobed", func() {
			stubPrint()
			runner.AddCmdResult(
				"partprobe /dev/sda",
				fakesys.FakeCmdResult{ExitStatus: 1, Error: errors.New("fake-partprobe-error")},
			)

			_, err := editor.CreatePartition("/dev/sda", disk.FileSystemSwap, 34086912, 42475519)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Re-reading partition table"))
		})
	})
})
