package timex

import "time"

var boot = time.Now()

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Uptime returns the time since the process started, truncated to
// milliseconds. On boards without an RTC this is the only meaningful clock.
func Uptime() time.Duration { return time.Since(boot).Truncate(time.Millisecond) }
