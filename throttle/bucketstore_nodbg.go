//go:build !debug

package throttle

import (
	"time"
)

// Cleanup removes buckets idle for longer than the store's cleanupOlderThan
func (s *BucketStore[K]) Cleanup(now time.Time) int {
	removed := 0
	for _, g := range s.snapshotGroups() {
		g.buckets.Range(func(id, value any) bool {
			if now.Sub(value.(*Bucket[K]).lastChecked()) > s.cleanupOlderThan {
				g.buckets.Delete(id)
				removed++
			}
			return true
		})
	}
	return removed
}
