package config

// Embedded configuration, keyed by device ID (the value placed in the
// context under CtxDeviceKey).

// Pico: log UART on GP0/GP1, so the receiver moves to GP2.
const cfgPico = `{
  "bridge": {
    "address": 16,
    "queue_len": 10,
    "pulse_ms": 5,
    "watchdog_ms": 2000,
    "reset_ms": 15,
    "ir_pin": 2,
    "int_pin": 3,
    "protocol": "nec"
  },
  "heartbeat": {
    "interval": 10
  }
}`

// Host simulator.
const cfgHost = `{
  "bridge": {
    "ir_pin": 2,
    "int_pin": 3,
    "protocol": "nec",
    "publish_events": true
  },
  "heartbeat": {
    "interval": 2
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"host": []byte(cfgHost),
}
