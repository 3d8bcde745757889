package providers

import "time"

// shutdownTimeout bounds graceful shutdown of long-lived services. Badger
// compaction on close is the slow case.
const shutdownTimeout = 30 * time.Second
