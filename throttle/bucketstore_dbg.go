//go:build debug

package throttle

import (
	"log"
	"time"
)

func (s *BucketStore[K]) Cleanup(now time.Time) int {
	log.Printf("[DEBUG][Throttle] cleaning buckets idle for more than %v at %v", s.cleanupOlderThan, now)
	removed := 0
	for gid, g := range s.snapshotGroups() {
		g.buckets.Range(func(id, value any) bool {
			last := value.(*Bucket[K]).lastChecked()
			log.Printf("[DEBUG][Throttle] %s: bucket %v lastCheck = %v", gid, id, last)
			if now.Sub(last) > s.cleanupOlderThan {
				g.buckets.Delete(id)
				removed++
				log.Printf("[DEBUG][Throttle] %s: bucket %v removed", gid, id)
			}
			return true
		})
	}
	log.Printf("[DEBUG][Throttle] %d buckets cleaned up", removed)
	return removed
}
