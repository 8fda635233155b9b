package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/greenpdx/crpart/disk"
	"github.com/greenpdx/crpart/layout"
	"github.com/greenpdx/crpart/pipeline"
	"github.com/greenpdx/crpart/sizes"
)

func printGeometry(geometry disk.DeviceGeometry) {
	color.White("Disk information:")
	fmt.Printf("  Device:         %s\n", geometry.DevicePath)
	fmt.Printf("  Size:           %s (%d sectors)\n", sizes.Format(geometry.SizeInBytes), geometry.TotalSectors)
	fmt.Printf("  Removable:      %t\n", geometry.IsRemovableMedia)
	fmt.Printf("  Root partition: %s (starts at sector %d)\n", geometry.RootPartitionPath, geometry.RootPartitionStart)
}

func printPlan(plan layout.Plan) {
	color.White("\nPlanned layout:")
	for _, spec := range plan.Partitions {
		fmt.Printf("  %-5s %-6s %s, sectors %d - %d\n",
			spec.Role, spec.FileSystem, sizes.Format(spec.SizeInBytes()), spec.StartSector, spec.EndSector)
	}

	for _, warning := range plan.Warnings {
		color.Yellow("  WARNING: %s", warning)
	}
}

func printOutcome(outcome pipeline.Outcome) {
	color.Green("\nRepartitioning complete")

	if !outcome.FileSystemCheckClean {
		color.Yellow("Note: the initial filesystem check reported problems")
	}

	for _, created := range outcome.FileSystemsCreated {
		fmt.Printf("  %-5s %s %s UUID=%s\n", created.Role, created.PartitionPath, created.FileSystem, created.UUID)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Review the migrated data; sources were left in place")
	fmt.Println("  2. Reboot to pick up the new mounts")
}
