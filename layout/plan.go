// Package layout computes the destructive repartitioning plan: given the
// device geometry and the requested sizes, it produces the ordered,
// sector-aligned partition set that the execution pipeline carves out.
// Planning is pure computation; nothing here touches the device.
package layout

import (
	bosherr "github.com/cloudfoundry/bosh-utils/errors"

	"github.com/greenpdx/crpart/disk"
	"github.com/greenpdx/crpart/disk/sector"
)

type Role string

const (
	RoleRoot Role = "root"
	RoleSwap Role = "swap"
	RoleVar  Role = "var"
	RoleHome Role = "home"
)

// PartitionSpec is one planned partition. Sectors are inclusive on both
// ends. Specs are never mutated after planning; replanning produces a
// new set.
type PartitionSpec struct {
	Role        Role
	StartSector uint64
	EndSector   uint64
	FileSystem  disk.FileSystemType
}

func (p PartitionSpec) Sectors() uint64 {
	return p.EndSector - p.StartSector + 1
}

func (p PartitionSpec) SizeInBytes() uint64 {
	return p.Sectors() * sector.SectorSize
}

// Plan is the complete ordered partition set for one device, in
// physical layout order: Root, [Swap], [Var], Home.
type Plan struct {
	DevicePath   string
	TotalSectors uint64
	Partitions   []PartitionSpec

	// Warnings carries advisory policy messages (e.g. swap allowed on
	// removable media by explicit override) for the caller to report.
	Warnings []string
}

// Partition returns the spec for a role, if the plan contains it.
func (p Plan) Partition(role Role) (PartitionSpec, bool) {
	for _, spec := range p.Partitions {
		if spec.Role == role {
			return spec, true
		}
	}
	return PartitionSpec{}, false
}

// Validate re-checks the plan's structural invariants. A plan produced
// by Compute always passes; the safety gate runs this as its final
// pre-flight check.
func (p Plan) Validate() error {
	if len(p.Partitions) < 2 {
		return bosherr.Errorf("Plan must contain at least root and home partitions, got %d", len(p.Partitions))
	}

	if p.Partitions[0].Role != RoleRoot {
		return bosherr.Errorf("Plan must start with the root partition, got `%s'", p.Partitions[0].Role)
	}

	home := p.Partitions[len(p.Partitions)-1]
	if home.Role != RoleHome {
		return bosherr.Errorf("Plan must end with the home partition, got `%s'", home.Role)
	}

	for i, spec := range p.Partitions {
		if spec.StartSector > spec.EndSector {
			return bosherr.Errorf("Partition `%s' starts after it ends (%d > %d)", spec.Role, spec.StartSector, spec.EndSector)
		}

		// The root start is inherited from the existing table and may be
		// unaligned; every other start must sit on the boundary.
		if spec.Role != RoleRoot && spec.StartSector%sector.Alignment != 0 {
			return bosherr.Errorf("Partition `%s' start %d is not aligned", spec.Role, spec.StartSector)
		}

		if spec.Role != RoleHome && (spec.EndSector+1)%sector.Alignment != 0 {
			return bosherr.Errorf("Partition `%s' end %d is not aligned", spec.Role, spec.EndSector)
		}

		if i > 0 && spec.StartSector <= p.Partitions[i-1].EndSector {
			return bosherr.Errorf("Partition `%s' overlaps `%s'", spec.Role, p.Partitions[i-1].Role)
		}

		if spec.EndSector >= p.TotalSectors {
			return bosherr.Errorf("Partition `%s' extends past the end of the device", spec.Role)
		}
	}

	if home.EndSector != p.TotalSectors-1 {
		return bosherr.Errorf("Home partition must end at the last sector %d, got %d", p.TotalSectors-1, home.EndSector)
	}

	if home.Sectors() < p.TotalSectors/2 {
		return InsufficientHomeSpaceError{
			HomeSectors:    home.Sectors(),
			MinimumSectors: p.TotalSectors / 2,
		}
	}

	return nil
}
