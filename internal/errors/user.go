package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) keeps lookup order deterministic for errors.Is() traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Timer
	// ===================
	{
		err: ErrInvalidTabataConfig,
		info: ErrorInfo{
			Message: "The tabata settings are invalid; the previous settings are still in use.",
			Action:  "Use a work time above zero, at least one cycle and one set, and no negative rests.",
		},
	},
	{
		err: ErrInvalidCountdownConfig,
		info: ErrorInfo{
			Message: "The countdown settings are invalid; the previous settings are still in use.",
			Action:  "Use minutes and seconds between 0 and 59 with a total above zero.",
		},
	},
	{
		err: ErrInvalidMode,
		info: ErrorInfo{
			Message: "Unknown timer mode.",
			Action:  "Use one of: tabata, countdown, stopwatch.",
		},
	},
	{
		err: ErrModeChangeWhileRunning,
		info: ErrorInfo{
			Message: "The timer is running.",
			Action:  "Pause or reset the timer before switching modes.",
		},
	},
	{
		err: ErrSessionCompleted,
		info: ErrorInfo{
			Message: "This session is already complete.",
			Action:  "Reset the timer to start again.",
		},
	},

	// ===================
	// Sequence
	// ===================
	{
		err: ErrSequenceEmpty,
		info: ErrorInfo{
			Message: "The sequence has no entries.",
			Action:  "Add at least one entry with 'judotimer sequence add'.",
		},
	},
	{
		err: ErrSequenceIndexOutOfRange,
		info: ErrorInfo{
			Message: "No sequence entry exists at that position.",
			Action:  "Run 'judotimer sequence list' to see valid positions.",
		},
	},

	// ===================
	// Device link
	// ===================
	{
		err: ErrInvalidDeviceCode,
		info: ErrorInfo{
			Message: "The device code is not valid.",
			Action:  "Copy the code exactly as shown on the other device (letters and digits only).",
		},
	},
	{
		err: ErrDeviceNameRequired,
		info: ErrorInfo{
			Message: "A device name is required to link.",
			Action:  "Pass a name for the other device, e.g. 'Phone-2'.",
		},
	},
	{
		err: ErrNotLinked,
		info: ErrorInfo{
			Message: "No device is linked.",
			Action:  "Link a device with 'judotimer link connect <code> <name>'.",
		},
	},
	{
		err: ErrTransportNotAttached,
		info: ErrorInfo{
			Message: "No sync transport is configured.",
		},
	},

	// ===================
	// Store
	// ===================
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Another judotimer process is holding the data files.",
			Action:  "Wait for the other process to finish and try again.",
		},
	},
	{
		err: ErrRecordCorrupted,
		info: ErrorInfo{
			Message: "A saved record could not be read.",
			Action:  "Delete the broken file under ~/.judotimer/data; defaults will be used.",
		},
	},
	{
		err: ErrInvalidRecordKey,
		info: ErrorInfo{
			Message: "Invalid record name.",
		},
	},

	// ===================
	// Config & CLI
	// ===================
	{
		err: ErrConfigInvalidTimer,
		info: ErrorInfo{
			Message: "The timer section of the configuration is invalid.",
			Action:  "Run 'judotimer config show' and fix the timer values.",
		},
	},
	{
		err: ErrConfigInvalidSync,
		info: ErrorInfo{
			Message: "The sync section of the configuration is invalid.",
			Action:  "Run 'judotimer config show' and fix the sync values.",
		},
	},
	{
		err: ErrConfigInvalidStore,
		info: ErrorInfo{
			Message: "The store section of the configuration is invalid.",
			Action:  "Set store.backend to 'file' or 'redis' and provide store.redis_url for redis.",
		},
	},
	{
		err: ErrConfigExists,
		info: ErrorInfo{
			Message: "A config file already exists.",
			Action:  "Re-run 'judotimer config init --force' to replace it.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrNonInteractiveMode,
		info: ErrorInfo{
			Message: "Confirmation is required but no terminal is attached.",
			Action:  "Re-run with --force.",
		},
	},
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation canceled.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is().
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
