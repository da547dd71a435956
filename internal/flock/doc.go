// Package flock provides cross-platform exclusive file locks.
//
// The record store uses one lock file per record so that two judotimer
// processes (for example `run` and `link set`) never interleave writes.
//
// Usage:
//
//	lock, err := flock.Acquire(ctx, path+".lock", constants.LockTimeout)
//	if err != nil {
//	    return err // errors.ErrLockTimeout when another process holds it
//	}
//	defer lock.Release()
package flock
