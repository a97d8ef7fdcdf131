package jobs

import (
	"context"

	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/sirupsen/logrus"
)

// CourseCacheWarmTask re-primes the published course cache before entries
// expire, so viewer reads stay off the database.
type CourseCacheWarmTask struct {
	courses *service.CourseService
	cache   *cache.CourseCache
	cron    string
}

func NewCourseCacheWarmTask(interval string, courses *service.CourseService, cache *cache.CourseCache) *CourseCacheWarmTask {
	return &CourseCacheWarmTask{
		courses: courses,
		cache:   cache,
		cron:    interval,
	}
}

func (c *CourseCacheWarmTask) Schedule() string {
	return c.cron
}

func (c *CourseCacheWarmTask) Run() {
	ctx := context.Background()

	published, err := c.courses.ListPublishedCourses(ctx)
	if err != nil {
		logrus.Errorf("cache warm: listing courses failed: %v", err)
		return
	}

	for _, course := range published {
		if _, err := c.courses.GetPublishedCourse(ctx, course.ID); err != nil {
			logrus.Warnf("cache warm: course %s failed: %v", course.ID, err)
		}
	}
}
