package logging

// Field name constants for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldLine       = "line"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Fold fields.
	FieldLanguage = "language"
	FieldFolds    = "folds"
	FieldWarnings = "warnings"
	FieldRange    = "range"
	FieldEvent    = "event"
	FieldBackup   = "backup"

	// Run fields.
	FieldDryRun          = "dry_run"
	FieldJobs            = "jobs"
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
