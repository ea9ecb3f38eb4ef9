package utils

import (
	"math"
	"runtime"

	"github.com/rs/zerolog"
)

// LogMemUsage attaches the current heap statistics to a debug event.
func LogMemUsage(l zerolog.Logger, msg string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	l.Debug().
		Uint64("alloc_mib", bToMb(m.Alloc)).
		Uint64("total_alloc_mib", bToMb(m.TotalAlloc)).
		Uint64("sys_mib", bToMb(m.Sys)).
		Uint32("num_gc", m.NumGC).
		Msg(msg)
}

// IsFinite is false if any value is NaN or infinite.
func IsFinite(vals ...float64) bool {
	for _, f := range vals {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
