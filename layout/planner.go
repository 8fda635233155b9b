package layout

import (
	"fmt"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"

	"github.com/greenpdx/crpart/disk"
	"github.com/greenpdx/crpart/disk/sector"
	"github.com/greenpdx/crpart/sizes"
)

const (
	MinRootSizeInBytes = 8 * sizes.GigaByte
	MaxRootSizeInBytes = 64 * sizes.GigaByte
)

// RemovablePolicy decides how swap/var requests are treated on
// removable media. The choice is made in exactly one place so the
// behavior stays auditable.
type RemovablePolicy string

const (
	// RemovableDeny rejects swap/var partitions on removable media.
	RemovableDeny RemovablePolicy = "deny"

	// RemovableWarnAndAllow creates them anyway, recording a warning on
	// the plan. Selected by an explicit, named override flag.
	RemovableWarnAndAllow RemovablePolicy = "warn-and-allow"
)

// Request carries the user's partition size requests in bytes. A zero
// swap or var size means the partition is not wanted.
type Request struct {
	RootSizeInBytes uint64
	SwapSizeInBytes uint64
	VarSizeInBytes  uint64
}

// Compute turns geometry and a size request into a validated Plan. It
// is deterministic and performs no I/O.
func Compute(geometry disk.DeviceGeometry, request Request, policy RemovablePolicy) (Plan, error) {
	if request.RootSizeInBytes < MinRootSizeInBytes || request.RootSizeInBytes > MaxRootSizeInBytes {
		return Plan{}, RootSizeOutOfRangeError{SizeInBytes: request.RootSizeInBytes}
	}

	var warnings []string

	// Policy is applied before any geometry-dependent computation.
	if geometry.IsRemovableMedia {
		for _, extra := range []struct {
			role        Role
			sizeInBytes uint64
		}{
			{RoleSwap, request.SwapSizeInBytes},
			{RoleVar, request.VarSizeInBytes},
		} {
			if extra.sizeInBytes == 0 {
				continue
			}
			if policy == RemovableDeny {
				return Plan{}, RemovableMediaPolicyViolationError{Role: extra.role}
			}
			warnings = append(warnings, fmt.Sprintf(
				"Creating a %s partition on removable media; expect increased flash wear", extra.role))
		}
	}

	rootSectors, err := sector.BytesToSectors(request.RootSizeInBytes)
	if err != nil {
		return Plan{}, bosherr.WrapError(err, "Converting root size to sectors")
	}

	if geometry.IsRemovableMedia {
		// On removable media the card is usually small enough that the
		// requested root competes with home's half-device reservation, so
		// the effective maximum is clamped to what actually fits.
		homeReserve := geometry.TotalSectors / 2
		maxRootEnd := sector.AlignDown(geometry.TotalSectors - homeReserve)
		if maxRootEnd <= geometry.RootPartitionStart+sector.Alignment {
			return Plan{}, RootSizeExceedsDeviceError{
				SizeInBytes:       request.RootSizeInBytes,
				DeviceSizeInBytes: geometry.SizeInBytes,
			}
		}

		maxRootSectors := maxRootEnd - geometry.RootPartitionStart
		if rootSectors > maxRootSectors {
			warnings = append(warnings, fmt.Sprintf(
				"Root size reduced from %s to %s to leave half the device for home",
				sizes.Format(request.RootSizeInBytes), sizes.Format(maxRootSectors*sector.SectorSize)))
			rootSectors = maxRootSectors
		}
	}

	// The shrink target is rounded down to the alignment boundary, so the
	// effective root size may be slightly smaller than requested.
	rootStart := geometry.RootPartitionStart
	rootEnd := sector.AlignDown(rootStart+rootSectors) - 1
	if rootEnd <= rootStart {
		return Plan{}, RootSizeExceedsDeviceError{
			SizeInBytes:       request.RootSizeInBytes,
			DeviceSizeInBytes: geometry.SizeInBytes,
		}
	}

	partitions := []PartitionSpec{{
		Role:        RoleRoot,
		StartSector: rootStart,
		EndSector:   rootEnd,
		FileSystem:  disk.FileSystemExt4,
	}}

	previousEnd := rootEnd

	for _, extra := range []struct {
		role        Role
		sizeInBytes uint64
		fsType      disk.FileSystemType
	}{
		{RoleSwap, request.SwapSizeInBytes, disk.FileSystemSwap},
		{RoleVar, request.VarSizeInBytes, disk.FileSystemBTRFS},
	} {
		if extra.sizeInBytes == 0 {
			continue
		}

		spec, err := nextPartition(extra.role, previousEnd, extra.sizeInBytes, extra.fsType)
		if err != nil {
			return Plan{}, err
		}

		partitions = append(partitions, spec)
		previousEnd = spec.EndSector
	}

	homeStart, err := sector.AlignUp(previousEnd + 1)
	if err != nil {
		return Plan{}, bosherr.WrapError(err, "Aligning home partition start")
	}

	homeEnd := geometry.TotalSectors - 1
	if homeStart >= homeEnd || homeEnd-homeStart+1 < geometry.TotalSectors/2 {
		var homeSectors uint64
		if homeStart < homeEnd {
			homeSectors = homeEnd - homeStart + 1
		}
		return Plan{}, InsufficientHomeSpaceError{
			HomeSectors:    homeSectors,
			MinimumSectors: geometry.TotalSectors / 2,
		}
	}

	partitions = append(partitions, PartitionSpec{
		Role:        RoleHome,
		StartSector: homeStart,
		EndSector:   homeEnd,
		FileSystem:  disk.FileSystemExt4,
	})

	plan := Plan{
		DevicePath:   geometry.DevicePath,
		TotalSectors: geometry.TotalSectors,
		Partitions:   partitions,
		Warnings:     warnings,
	}

	if err := plan.Validate(); err != nil {
		return Plan{}, bosherr.WrapError(err, "Validating computed plan")
	}

	return plan, nil
}

func nextPartition(role Role, previousEnd uint64, sizeInBytes uint64, fsType disk.FileSystemType) (PartitionSpec, error) {
	start, err := sector.AlignUp(previousEnd + 1)
	if err != nil {
		return PartitionSpec{}, bosherr.WrapErrorf(err, "Aligning %s partition start", role)
	}

	sizeSectors, err := sector.BytesToSectors(sizeInBytes)
	if err != nil {
		return PartitionSpec{}, bosherr.WrapErrorf(err, "Converting %s size to sectors", role)
	}

	end, err := sector.AlignUp(start + sizeSectors)
	if err != nil {
		return PartitionSpec{}, bosherr.WrapErrorf(err, "Aligning %s partition end", role)
	}

	return PartitionSpec{
		Role:        role,
		StartSector: start,
		EndSector:   end - 1,
		FileSystem:  fsType,
	}, nil
}
