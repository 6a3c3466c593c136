package scheduler

import "errors"

// ErrAlreadyRunning is returned by Start if the scheduler has already
// been started.
var ErrAlreadyRunning = errors.New("scheduler: already running")
