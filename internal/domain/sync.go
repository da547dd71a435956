package domain

import (
	"maps"
	"time"
)

// SyncStatus is the link state between this instance and another device.
//
// Example JSON representation:
//
//	{
//	    "is_linked": true,
//	    "device_code": "AB12CD",
//	    "linked_device_name": "Phone-2",
//	    "last_sync_timestamp": "2025-12-27T10:00:00Z"
//	}
type SyncStatus struct {
	IsLinked bool `json:"is_linked"`

	// DeviceCode is the shared code. While unlinked it holds the pending code
	// produced by GenerateDeviceCode, if any.
	DeviceCode string `json:"device_code,omitempty"`

	LinkedDeviceName string `json:"linked_device_name,omitempty"`

	LastSyncTimestamp *time.Time `json:"last_sync_timestamp,omitempty"`
}

// Clone returns a copy that shares no pointers with s.
func (s SyncStatus) Clone() SyncStatus {
	out := s
	if s.LastSyncTimestamp != nil {
		ts := *s.LastSyncTimestamp
		out.LastSyncTimestamp = &ts
	}
	return out
}

// SyncDataBag is the open key/value state mirrored across linked instances.
type SyncDataBag map[string]any

// Clone returns a shallow copy. A nil bag clones to an empty one.
func (b SyncDataBag) Clone() SyncDataBag {
	out := make(SyncDataBag, len(b))
	maps.Copy(out, b)
	return out
}

// Merge copies every key of partial into b, overwriting existing keys and
// leaving unrelated keys alone.
func (b SyncDataBag) Merge(partial SyncDataBag) {
	maps.Copy(b, partial)
}

// Snapshot is what a transport carries between linked instances.
type Snapshot struct {
	// Origin identifies the sending instance so it can drop its own echoes.
	Origin string `json:"origin"`

	// DeviceCode is the link code both sides share.
	DeviceCode string `json:"device_code"`

	Data   SyncDataBag `json:"data"`
	SentAt time.Time   `json:"sent_at"`
}
