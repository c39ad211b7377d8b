package qsched

// Close shuts the scheduler down. In-flight Solve calls finish; new calls
// return ErrSchedulerClosed. Queued run records are drained to the archive
// store before Close returns. Close is idempotent.
func (s *Scheduler) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.archiver != nil {
		return s.archiver.Close()
	}
	return nil
}
