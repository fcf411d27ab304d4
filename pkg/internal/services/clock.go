package services

import "time"

// nowFunc is swapped out in tests for deterministic timestamps.
var nowFunc = time.Now
