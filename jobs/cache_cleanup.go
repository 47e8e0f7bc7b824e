package jobs

import (
	"github.com/sirupsen/logrus"
	"github.com/zvg-webapp/zvg-backend/services"
)

type CacheCleanupJob struct {
	Cache *services.EntryCache
}

func NewCacheCleanupJob(cache *services.EntryCache) *CacheCleanupJob {
	return &CacheCleanupJob{Cache: cache}
}

func (j *CacheCleanupJob) Run() {
	removed := j.Cache.CleanupExpired()
	logrus.WithFields(logrus.Fields{
		"component":     "CacheCleanupJob",
		"removed_slots": removed,
		"cached_slots":  j.Cache.Size(),
	}).Info("Cache cleanup completed")
}
