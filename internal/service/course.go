package service

import (
	"context"
	"strings"
	"time"

	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewCourseService creates a new CourseService.
func NewCourseService(store store.Store, cache *cache.CourseCache) *CourseService {
	return &CourseService{
		store: store,
		cache: cache,
	}
}

// CourseService manages the course lifecycle including the publish
// snapshot that the viewer reads.
type CourseService struct {
	store store.Store
	cache *cache.CourseCache
}

// CreateCourse creates a new course with no curriculums.
func (c *CourseService) CreateCourse(ctx context.Context, title string, description *string) (*model.Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	course := &model.Course{
		ID:          uuid.New().String(),
		Title:       title,
		Description: trimmed(description),
	}
	if err := c.store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// GetCourse returns a course with its curriculums and pages in order.
func (c *CourseService) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	return c.store.GetCourseTree(ctx, id)
}

// ListCourses returns all courses, most recently updated first.
func (c *CourseService) ListCourses(ctx context.Context) ([]*model.Course, error) {
	return c.store.ListCourses(ctx)
}

// UpdateCourse updates the title and description of a course.
func (c *CourseService) UpdateCourse(ctx context.Context, id, title string, description *string) (*model.Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	course, err := c.store.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = title
	course.Description = trimmed(description)
	if err := c.store.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}

	c.cache.Invalidate(ctx, id)

	return course, nil
}

// DeleteCourse deletes a course with all of its curriculums and pages.
func (c *CourseService) DeleteCourse(ctx context.Context, id string) error {
	if err := c.store.DeleteCourse(ctx, id); err != nil {
		return err
	}

	c.cache.Invalidate(ctx, id)

	return nil
}

// Publish snapshots every page's draft content into its published content
// and marks the course published. All rows change in one transaction so a
// half-published course is never visible.
func (c *CourseService) Publish(ctx context.Context, id string) (*time.Time, error) {
	now := time.Now()

	err := c.store.Transaction(ctx, func(tx store.Store) error {
		course, err := tx.GetCourseTree(ctx, id)
		if err != nil {
			return err
		}

		for ci := range course.Curriculums {
			for pi := range course.Curriculums[ci].Pages {
				page := course.Curriculums[ci].Pages[pi]
				page.PublishedContent = page.Content
				page.IsPublished = true
				page.PublishedAt = &now
				if err := tx.UpdatePage(ctx, &page); err != nil {
					return err
				}
			}
		}

		course.IsPublished = true
		course.PublishedAt = &now
		return tx.UpdateCourse(ctx, course)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("published course %s", id)
	c.cache.Invalidate(ctx, id)

	return &now, nil
}

// GetPublishedCourse returns the published view of a course for the
// viewer, served from cache when warm. Pages carry their published
// snapshot as content, falling back to the draft content for pages
// created since the last publish.
func (c *CourseService) GetPublishedCourse(ctx context.Context, id string) (*model.Course, error) {
	if cached := c.cache.GetPublishedCourse(ctx, id); cached != nil {
		return cached, nil
	}

	course, err := c.store.GetCourseTree(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, ErrCourseNotPublished
	}

	for ci := range course.Curriculums {
		for pi := range course.Curriculums[ci].Pages {
			page := &course.Curriculums[ci].Pages[pi]
			if len(page.PublishedContent) > 0 {
				page.Content = page.PublishedContent
			}
		}
	}

	c.cache.SetPublishedCourse(ctx, course)

	return course, nil
}

// ListPublishedCourses returns the published courses for the viewer's
// course index.
func (c *CourseService) ListPublishedCourses(ctx context.Context) ([]*model.Course, error) {
	courses, err := c.store.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]*model.Course, 0, len(courses))
	for _, course := range courses {
		if course.IsPublished {
			published = append(published, course)
		}
	}
	return published, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
