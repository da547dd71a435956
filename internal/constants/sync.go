package constants

// Record keys read at startup and written after each mutating command.
const (
	// RecordSyncStatus holds the last-known SyncStatus.
	RecordSyncStatus = "sync_status"

	// RecordSyncData holds the SyncDataBag mirrored across linked instances.
	RecordSyncData = "sync_data"

	// RecordTimerSettings holds the last-used timer configuration.
	RecordTimerSettings = "timer_settings"
)

// Device code settings.
const (
	// DeviceCodeAlphabet is the set of characters a device code is drawn from.
	DeviceCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultDeviceCodeLength is the length of generated device codes.
	DefaultDeviceCodeLength = 6

	// MinDeviceCodeLength is the shortest device code accepted.
	MinDeviceCodeLength = 4

	// MaxDeviceCodeLength is the longest device code accepted.
	MaxDeviceCodeLength = 12
)

// Store backends.
const (
	// StoreBackendFile persists records as JSON files.
	StoreBackendFile = "file"

	// StoreBackendRedis persists records in Redis.
	StoreBackendRedis = "redis"

	// RedisKeyPrefix namespaces every record key written to Redis.
	RedisKeyPrefix = "judotimer:"
)
