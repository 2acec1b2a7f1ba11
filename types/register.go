package types

// DefaultAddress is the bridge's 7-bit I²C target address.
const DefaultAddress uint16 = 0x10

// Register selects what the next request returns or what a write does.
type Register uint8

// Register map exposed to the master.
const (
	RegBufLen Register = 0x01 // request: 1 byte queue length
	RegRead   Register = 0x02 // request: 5 byte event, pops one
	RegSetInt Register = 0x03 // receive: option 0 disables the line, nonzero enables
	RegIntFlg Register = 0x04 // receive: rearm notification
	RegReset  Register = 0x05 // receive: irreversible watchdog restart
)

func (r Register) String() string {
	switch r {
	case RegBufLen:
		return "BUFLEN"
	case RegRead:
		return "READ"
	case RegSetInt:
		return "SETINT"
	case RegIntFlg:
		return "INTFLG"
	case RegReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}
