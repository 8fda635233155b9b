package fakes

type MigrateSubtreeCall struct {
	SourceDir string
	TargetDir string
}

type FakeMigrator struct {
	MigrateSubtreeCalls []MigrateSubtreeCall

	// MigrateSubtreeErrAtCall fails the nth migration (1-based); zero
	// never fails.
	MigrateSubtreeErrAtCall int
	MigrateSubtreeErr       error
}

func (m *FakeMigrator) MigrateSubtree(sourceDir, targetDir string) error {
	m.MigrateSubtreeCalls = append(m.MigrateSubtreeCalls, MigrateSubtreeCall{
		SourceDir: sourceDir,
		TargetDir: targetDir,
	})

	if m.MigrateSubtreeErrAtCall != 0 && len(m.MigrateSubtreeCalls) == m.MigrateSubtreeErrAtCall {
		return m.MigrateSubtreeErr
	}

	return nil
}
