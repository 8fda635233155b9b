package pipeline

import (
	"fmt"
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	boshsys "github.com/cloudfoundry/bosh-utils/system"

	"github.com/greenpdx/crpart/disk"
)

// FstabEntry is one mount-table line. Entries are keyed by filesystem
// UUID, never by device path, since device enumeration order is not
// stable across boots.
type FstabEntry struct {
	UUID       string
	MountPoint string
	FileSystem disk.FileSystemType
	Options    string
	DumpFlag   int
	PassFlag   int
}

func (e FstabEntry) Line() string {
	return fmt.Sprintf("UUID=%s %s %s %s %d %d",
		e.UUID, e.MountPoint, e.FileSystem, e.Options, e.DumpFlag, e.PassFlag)
}

type FstabWriter interface {
	Update(fstabPath string, entries []FstabEntry) error
}

type fstabWriter struct {
	fs     boshsys.FileSystem
	logger boshlog.Logger
	logTag string
}

func NewFstabWriter(fs boshsys.FileSystem, logger boshlog.Logger) FstabWriter {
	return fstabWriter{
		fs:     fs,
		logger: logger,
		logTag: "FstabWriter",
	}
}

// Update rewrites the mount table, replacing any existing entries for
// the mount points (or swap) being managed and appending the new
// UUID-keyed lines.
func (w fstabWriter) Update(fstabPath string, entries []FstabEntry) error {
	var existing string
	if w.fs.FileExists(fstabPath) {
		var err error
		existing, err = w.fs.ReadFileString(fstabPath)
		if err != nil {
			return bosherr.WrapErrorf(err, "Reading `%s'", fstabPath)
		}
	}

	managedMountPoints := map[string]bool{}
	managesSwap := false
	for _, entry := range entries {
		if entry.FileSystem == disk.FileSystemSwap {
			managesSwap = true
			continue
		}
		managedMountPoints[entry.MountPoint] = true
	}

	var kept []string
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			kept = append(kept, line)
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) >= 3 {
			if managedMountPoints[fields[1]] {
				continue
			}
			if managesSwap && fields[2] == "swap" {
				continue
			}
		}

		kept = append(kept, line)
	}

	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}

	for _, entry := range entries {
		kept = append(kept, entry.Line())
	}

	content := strings.Join(kept, "\n") + "\n"

	err := w.fs.WriteFileString(fstabPath, content)
	if err != nil {
		return bosherr.WrapErrorf(err, "Writing `%s'", fstabPath)
	}

	w.logger.Info(w.logTag, "Updated %s with %d entries", fstabPath, len(entries))
	return nil
}
