package pipeline

// Migrator copies a subtree onto a freshly created filesystem. Sources
// are never deleted; cleanup is a separate operator decision.
type Migrator interface {
	MigrateSubtree(sourceDir, targetDir string) error
}
