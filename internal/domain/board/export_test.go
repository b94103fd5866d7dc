package board

// Lock exposes the per-board lock to tests.
func (s *Service) Lock(id string) func() { return s.lock(id) }

// LockCount reports how many board locks are held or awaited.
func (s *Service) LockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
