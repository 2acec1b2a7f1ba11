package types

// Bridge configuration supplied on topic "config/bridge".
// Zero fields take the firmware defaults; see bridge.Config.Normalise.
type BridgeConfig struct {
	Address       uint16 `json:"address,omitempty"`
	QueueLen      int    `json:"queue_len,omitempty"` // ring slots; holds queue_len-1 events
	PulseMS       int    `json:"pulse_ms,omitempty"`
	WatchdogMS    int    `json:"watchdog_ms,omitempty"`
	ResetMS       int    `json:"reset_ms,omitempty"`
	LoopUS        int    `json:"loop_us,omitempty"`
	IRPin         int    `json:"ir_pin,omitempty"`
	IntPin        int    `json:"int_pin,omitempty"`
	Protocol      string `json:"protocol,omitempty"` // "nec" | "samsung"
	PublishEvents bool   `json:"publish_events,omitempty"`
}

// Heartbeat configuration supplied on topic "config/heartbeat".
type HeartbeatConfig struct {
	Interval float64 `json:"interval"` // seconds
}
