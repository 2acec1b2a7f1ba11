package types

// ---- Bridge payloads published on the bus ----

// BridgeState is retained on "bridge/state".
type BridgeState struct {
	Level  string `json:"level"`  // "booting", "running", "resetting", "stopped"
	Status string `json:"status"` // freeform short code
	Boot   uint32 `json:"boot"`   // cold boot counter (host runner only)
	TS     int64  `json:"ts_ms"`
}

// BridgeStats is retained on "bridge/stats".
type BridgeStats struct {
	Queued     int    `json:"queued"`
	Pushed     uint32 `json:"pushed"`
	Overflows  uint32 `json:"overflows"`
	Repeats    uint32 `json:"repeats"`
	Pulses     uint32 `json:"pulses"`
	Reads      uint32 `json:"reads"`
	EmptyReads uint32 `json:"empty_reads"`
	Misuse     uint32 `json:"misuse"`
	IntEnabled bool   `json:"int_enabled"`
	IntSent    bool   `json:"int_sent"`
	Boot       uint32 `json:"boot"` // watchdog restarts since power-on
	TS         int64  `json:"ts_ms"`
}

// BridgeEvent is published (not retained) on "bridge/event" for each queued event.
type BridgeEvent struct {
	Event
	Protocol string `json:"protocol"`
	Repeat   bool   `json:"repeat,omitempty"`
	Dropped  bool   `json:"dropped,omitempty"`
	TS       int64  `json:"ts_ms"`
}
