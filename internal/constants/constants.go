// Package constants provides centralized constant values used throughout judotimer.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by judotimer for organizing data.
const (
	// AppHome is the hidden directory name where judotimer stores all its data.
	// This directory is created in the user's home directory.
	AppHome = ".judotimer"

	// DataDir is the directory name where persisted records are stored.
	DataDir = "data"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// HomeEnvVar overrides the location of AppHome when set.
	HomeEnvVar = "JUDOTIMER_HOME"

	// EnvPrefix is the prefix for configuration environment variables.
	EnvPrefix = "JUDOTIMER"
)

// File names used by judotimer.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.judotimer/logs/judotimer.log
	CLILogFileName = "judotimer.log"

	// ConfigFileName is the name of both the global and project config file.
	ConfigFileName = "config.yaml"

	// RecordFileExt is the extension of record files written by the file store.
	RecordFileExt = ".json"

	// LockFileExt is the extension of the lock file guarding a record file.
	LockFileExt = ".lock"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the number of days to keep rotated files.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Store timing.
const (
	// LockTimeout is the maximum duration to wait for acquiring a record lock.
	LockTimeout = 5 * time.Second

	// LockRetryInterval is the delay between lock attempts.
	LockRetryInterval = 50 * time.Millisecond

	// WriterFlushTimeout bounds how long shutdown waits for pending record writes.
	WriterFlushTimeout = 3 * time.Second
)

// Timer defaults.
const (
	// DefaultTickInterval is the nominal period between engine ticks.
	DefaultTickInterval = time.Second

	// MinTickInterval is the shortest tick interval accepted by the config.
	MinTickInterval = 10 * time.Millisecond

	// MaxTickInterval is the longest tick interval accepted by the config.
	MaxTickInterval = time.Minute

	// MaxPhaseSeconds is the longest work, rest or set rest phase accepted.
	MaxPhaseSeconds = 3600

	// MaxCyclesPerSet is the largest number of cycles in one set.
	MaxCyclesPerSet = 100

	// MaxTotalSets is the largest number of sets in one session.
	MaxTotalSets = 100

	// SequenceEntryNameFormat names sequence entries added without a name.
	SequenceEntryNameFormat = "Tabata %d"
)

// Schema version constants for data migration support.
const (
	// RecordSchemaVersion is the current version of persisted records.
	RecordSchemaVersion = 1
)
