package disk

import (
	"strings"

	bosherr "github.com/cloudfoundry/bosh-utils/errors"
	boshsys "github.com/cloudfoundry/bosh-utils/system"
	"github.com/google/uuid"
)

type blkidIdentifierResolver struct {
	runner boshsys.CmdRunner
}

func NewBlkidIdentifierResolver(runner boshsys.CmdRunner) IdentifierResolver {
	return blkidIdentifierResolver{runner: runner}
}

func (r blkidIdentifierResolver) FileSystemUUID(partitionPath string) (string, error) {
	stdout, _, _, err := r.runner.RunCommand("blkid", "-s", "UUID", "-o", "value", partitionPath)
	if err != nil {
		return "", bosherr.WrapErrorf(err, "Reading filesystem UUID of `%s'", partitionPath)
	}

	fsUUID := strings.TrimSpace(stdout)
	if _, err := uuid.Parse(fsUUID); err != nil {
		return "", bosherr.WrapErrorf(err, "Unexpected blkid output `%s' for `%s'", fsUUID, partitionPath)
	}

	return fsUUID, nil
}
