package service

import "time"

// SetClock pins the date printed on downloaded shopping lists.
func (s *RelationService) SetClock(now func() time.Time) {
	s.now = now
}
