package constants

import "time"

const (
	AppName            = "habitlit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitlit/habitlit.db"
	ConnectionEnvVar   = "HABITLIT_DB_CONNECTION"
	Version            = "v0.1.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlit-"
	BackupFileSuffix = ".db"

	// Export constants
	ExportVersion    = 2
	ExportFilePrefix = "habit-tracker-backup-"
	ExportFileSuffix = ".json"

	// MaxConcurrentFetches bounds the number of in-flight completion reads
	// when a report is assembled.
	MaxConcurrentFetches = 8

	// LoadTimeout caps a single report load issued by the TUI.
	LoadTimeout = 10 * time.Second
)
