package layout_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/greenpdx/crpart/disk"
	"github.com/greenpdx/crpart/disk/sector"
	"github.com/greenpdx/crpart/layout"
	"github.com/greenpdx/crpart/sizes"
)

func sdCardGeometry() disk.DeviceGeometry {
	// 16GB SD card: 31,251,656 sectors of 512 bytes.
	return disk.DeviceGeometry{
		DevicePath:         "/dev/mmcblk0",
		SizeInBytes:        31251656 * 512,
		TotalSectors:       31251656,
		SectorSize:         512,
		IsRemovableMedia:   true,
		RootPartitionStart: 2048,
		RootPartitionPath:  "/dev/mmcblk0p2",
		RootPartitionIndex: 2,
	}
}

func usbDiskGeometry() disk.DeviceGeometry {
	// 238GiB USB disk with the usual boot partition before root.
	return disk.DeviceGeometry{
		DevicePath:         "/dev/sda",
		SizeInBytes:        500118192 * 512,
		TotalSectors:       500118192,
		SectorSize:         512,
		IsRemovableMedia:   false,
		RootPartitionStart: 532480,
		RootPartitionPath:  "/dev/sda2",
		RootPartitionIndex: 2,
	}
}

var _ = Describe("Compute", func() {
	Context("with a root-and-home request on an SD card", func() {
		It("clamps root to leave half the card for home", func() {
			plan, err := layout.Compute(sdCardGeometry(), layout.Request{
				RootSizeInBytes: 8 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).ToNot(HaveOccurred())

			Expect(plan.Partitions).To(HaveLen(2))

			root := plan.Partitions[0]
			Expect(root.Role).To(Equal(layout.RoleRoot))
			Expect(root.FileSystem).To(Equal(disk.FileSystemExt4))
			Expect(root.StartSector).To(Equal(uint64(2048)))
			// Half of 31,251,656 is reserved for home; the largest aligned
			// root end below that is 15,624,191.
			Expect(root.EndSector).To(Equal(uint64(15624191)))

			home := plan.Partitions[1]
			Expect(home.Role).To(Equal(layout.RoleHome))
			Expect(home.StartSector).To(Equal(uint64(15624192)))
			Expect(home.EndSector).To(Equal(uint64(31251655)))
			Expect(home.Sectors()).To(BeNumerically(">=", plan.TotalSectors/2))

			Expect(plan.Warnings).To(HaveLen(1))
			Expect(plan.Warnings[0]).To(ContainSubstring("Root size reduced"))
		})
	})

	Context("with a full root/swap/var/home request on a fixed disk", func() {
		var plan layout.Plan

		BeforeEach(func() {
			var err error
			plan, err = layout.Compute(usbDiskGeometry(), layout.Request{
				RootSizeInBytes: 16 * sizes.GigaByte,
				SwapSizeInBytes: 4 * sizes.GigaByte,
				VarSizeInBytes:  8 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).ToNot(HaveOccurred())
		})

		It("lays the partitions out in physical order", func() {
			Expect(plan.Partitions).To(HaveLen(4))

			Expect(plan.Partitions[0].Role).To(Equal(layout.RoleRoot))
			Expect(plan.Partitions[0].StartSector).To(Equal(uint64(532480)))
			Expect(plan.Partitions[0].EndSector).To(Equal(uint64(34086911)))

			Expect(plan.Partitions[1].Role).To(Equal(layout.RoleSwap))
			Expect(plan.Partitions[1].FileSystem).To(Equal(disk.FileSystemSwap))
			Expect(plan.Partitions[1].StartSector).To(Equal(uint64(34086912)))
			Expect(plan.Partitions[1].EndSector).To(Equal(uint64(42475519)))

			Expect(plan.Partitions[2].Role).To(Equal(layout.RoleVar))
			Expect(plan.Partitions[2].FileSystem).To(Equal(disk.FileSystemBTRFS))
			Expect(plan.Partitions[2].StartSector).To(Equal(uint64(42475520)))
			Expect(plan.Partitions[2].EndSector).To(Equal(uint64(59252735)))

			Expect(plan.Partitions[3].Role).To(Equal(layout.RoleHome))
			Expect(plan.Partitions[3].StartSector).To(Equal(uint64(59252736)))
			Expect(plan.Partitions[3].EndSector).To(Equal(uint64(500118191)))
		})

		It("produces sector-disjoint partitions in increasing order", func() {
			for i := 1; i < len(plan.Partitions); i++ {
				previous := plan.Partitions[i-1]
				current := plan.Partitions[i]
				Expect(current.StartSector).To(BeNumerically(">", previous.EndSector))
			}
		})

		It("aligns every computed boundary", func() {
			for i, spec := range plan.Partitions {
				if i > 0 {
					Expect(spec.StartSector % sector.Alignment).To(BeZero())
				}
				if spec.Role != layout.RoleHome {
					Expect((spec.EndSector + 1) % sector.Alignment).To(BeZero())
				}
			}
		})

		It("ends home exactly at the last device sector", func() {
			home, found := plan.Partition(layout.RoleHome)
			Expect(found).To(BeTrue())
			Expect(home.EndSector).To(Equal(plan.TotalSectors - 1))
		})

		It("is deterministic", func() {
			again, err := layout.Compute(usbDiskGeometry(), layout.Request{
				RootSizeInBytes: 16 * sizes.GigaByte,
				SwapSizeInBytes: 4 * sizes.GigaByte,
				VarSizeInBytes:  8 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).ToNot(HaveOccurred())
			Expect(again).To(Equal(plan))
		})
	})

	Context("when the root start sector is inherited unaligned", func() {
		It("keeps it as-is", func() {
			geometry := usbDiskGeometry()
			geometry.RootPartitionStart = 532485

			plan, err := layout.Compute(geometry, layout.Request{
				RootSizeInBytes: 16 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).ToNot(HaveOccurred())

			Expect(plan.Partitions[0].StartSector).To(Equal(uint64(532485)))
		})
	})

	Context("when the root size is out of range", func() {
		It("rejects sizes below 8G before looking at the device", func() {
			_, err := layout.Compute(sdCardGeometry(), layout.Request{
				RootSizeInBytes: 4 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).To(BeAssignableToTypeOf(layout.RootSizeOutOfRangeError{}))
		})

		It("rejects sizes above 64G", func() {
			_, err := layout.Compute(usbDiskGeometry(), layout.Request{
				RootSizeInBytes: 65 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).To(BeAssignableToTypeOf(layout.RootSizeOutOfRangeError{}))
		})
	})

	Context("when swap or var is requested on removable media", func() {
		It("fails hard under the deny policy", func() {
			_, err := layout.Compute(sdCardGeometry(), layout.Request{
				RootSizeInBytes: 8 * sizes.GigaByte,
				SwapSizeInBytes: 4 * sizes.GigaByte,
			}, layout.RemovableDeny)

			var policyErr layout.RemovableMediaPolicyViolationError
			Expect(err).To(BeAssignableToTypeOf(policyErr))
			Expect(err.(layout.RemovableMediaPolicyViolationError).Role).To(Equal(layout.RoleSwap))
		})

		It("proceeds with a warning under warn-and-allow", func() {
			// 128GB card, large enough to fit root+swap+home.
			geometry := disk.DeviceGeometry{
				DevicePath:         "/dev/mmcblk0",
				SizeInBytes:        268435456 * 512,
				TotalSectors:       268435456,
				SectorSize:         512,
				IsRemovableMedia:   true,
				RootPartitionStart: 8192,
				RootPartitionPath:  "/dev/mmcblk0p2",
				RootPartitionIndex: 2,
			}

			plan, err := layout.Compute(geometry, layout.Request{
				RootSizeInBytes: 16 * sizes.GigaByte,
				SwapSizeInBytes: 4 * sizes.GigaByte,
			}, layout.RemovableWarnAndAllow)
			Expect(err).ToNot(HaveOccurred())

			_, hasSwap := plan.Partition(layout.RoleSwap)
			Expect(hasSwap).To(BeTrue())
			Expect(plan.Warnings).ToNot(BeEmpty())
			Expect(plan.Warnings[0]).To(ContainSubstring("flash wear"))
		})
	})

	Context("when home would get less than half the device", func() {
		It("fails with InsufficientHomeSpace on fixed disks", func() {
			geometry := sdCardGeometry()
			geometry.IsRemovableMedia = false

			_, err := layout.Compute(geometry, layout.Request{
				RootSizeInBytes: 8 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).To(BeAssignableToTypeOf(layout.InsufficientHomeSpaceError{}))
		})
	})
})

var _ = Describe("Plan", func() {
	Describe("Partition", func() {
		It("reports absent roles", func() {
			plan, err := layout.Compute(usbDiskGeometry(), layout.Request{
				RootSizeInBytes: 16 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).ToNot(HaveOccurred())

			_, hasSwap := plan.Partition(layout.RoleSwap)
			Expect(hasSwap).To(BeFalse())
			_, hasRoot := plan.Partition(layout.RoleRoot)
			Expect(hasRoot).To(BeTrue())
		})
	})

	Describe("Validate", func() {
		var plan layout.Plan

		BeforeEach(func() {
			var err error
			plan, err = layout.Compute(usbDiskGeometry(), layout.Request{
				RootSizeInBytes: 16 * sizes.GigaByte,
				SwapSizeInBytes: 4 * sizes.GigaByte,
			}, layout.RemovableDeny)
			Expect(err).ToNot(HaveOccurred())
		})

		It("accepts computed plans", func() {
			Expect(plan.Validate()).To(Succeed())
		})

		It("rejects overlapping partitions", func() {
			plan.Partitions[1].StartSector = plan.Partitions[0].EndSector + 1 - sector.Alignment
			Expect(plan.Validate()).To(MatchError(ContainSubstring("overlaps")))
		})

		It("rejects a home partition that stops short of the device end", func() {
			plan.Partitions[len(plan.Partitions)-1].EndSector -= 2048
			Expect(plan.Validate()).To(MatchError(ContainSubstring("last sector")))
		})

		It("rejects an undersized home partition", func() {
			home := &plan.Partitions[len(plan.Partitions)-1]
			home.StartSector = sector.AlignDown(plan.TotalSectors)
			Expect(plan.Validate()).To(BeAssignableToTypeOf(layout.InsufficientHomeSpaceError{}))
		})
	})
})
