package fakes

import (
	"github.com/greenpdx/crpart/disk"
)

type FakeMountsSearcher struct {
	SearchMountsMounts []disk.Mount
	SearchMountsErr    error
}

func (s *FakeMountsSearcher) SearchMounts() ([]disk.Mount, error) {
	return s.SearchMountsMounts, s.SearchMountsErr
}
