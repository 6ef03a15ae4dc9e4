// Package lifecycle holds shared constants for service startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of every delivery and infra client.
const DefaultTimeout = 10 * time.Second
