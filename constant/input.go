package constant

import "time"

// KeyReleaseAfter is how long a key stays down without a repeat event
// Terminals report presses only, releases are synthesized from this timeout
const KeyReleaseAfter = 250 * time.Millisecond

// MinKeyReleaseAfter is the shortest accepted release timeout; the pump polls at a quarter of it
const MinKeyReleaseAfter = 10 * time.Millisecond
