package disk_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/greenpdx/crpart/disk"
)

var _ = Describe("PartitionDevicePath", func() {
	It("separates the partition number with p for mmcblk devices", func() {
		Expect(disk.PartitionDevicePath("/dev/mmcblk0", 2)).To(Equal("/dev/mmcblk0p2"))
	})

	It("separates the partition number with p for nvme devices", func() {
		Expect(disk.PartitionDevicePath("/dev/nvme0n1", 3)).To(Equal("/dev/nvme0n1p3"))
	})

	It("appends the partition number directly for everything else", func() {
		Expect(disk.PartitionDevicePath("/dev/sda", 2)).To(Equal("/dev/sda2"))
		Expect(disk.PartitionDevicePath("/dev/vdb", 1)).To(Equal("/dev/vdb1"))
	})
})

var _ = Describe("NormalizeDevicePath", func() {
	It("prepends /dev/ to bare names", func() {
		Expect(disk.NormalizeDevicePath("sda")).To(Equal("/dev/sda"))
		Expect(disk.NormalizeDevicePath("mmcblk0")).To(Equal("/dev/mmcblk0"))
	})

	It("leaves full paths alone", func() {
		Expect(disk.NormalizeDevicePath("/dev/sda")).To(Equal("/dev/sda"))
	})
})
