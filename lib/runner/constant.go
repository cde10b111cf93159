package runner

import (
	"time"
)

var (
	// DebugPProf exposes the pprof handlers on the debug router. Must
	// be set before `Ready`.
	DebugPProf bool

	// HTTPCacheExpire bounds how stale a cached read endpoint response
	// may get before the next request regenerates it.
	HTTPCacheExpire time.Duration = time.Second * 2
)
