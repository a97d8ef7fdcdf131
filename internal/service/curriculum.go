package service

import (
	"context"
	"strings"

	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/google/uuid"
)

// NewCurriculumService creates a new CurriculumService.
func NewCurriculumService(store store.Store, cache *cache.CourseCache) *CurriculumService {
	return &CurriculumService{
		store: store,
		cache: cache,
	}
}

// CurriculumService manages the chapters of a course and their ordering.
type CurriculumService struct {
	store store.Store
	cache *cache.CourseCache
}

// CreateCurriculum appends a new curriculum at the end of the course.
func (c *CurriculumService) CreateCurriculum(ctx context.Context, courseID, title string) (*model.Curriculum, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if _, err := c.store.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	maxOrder, err := c.store.MaxCurriculumOrder(ctx, courseID)
	if err != nil {
		return nil, err
	}

	cur := &model.Curriculum{
		ID:       uuid.New().String(),
		CourseID: courseID,
		Title:    title,
		Order:    maxOrder + 1,
	}
	if err := c.store.CreateCurriculum(ctx, cur); err != nil {
		return nil, err
	}

	return cur, nil
}

// GetCurriculum returns a curriculum with its pages in order.
func (c *CurriculumService) GetCurriculum(ctx context.Context, id string) (*model.Curriculum, error) {
	return c.store.GetCurriculumWithPages(ctx, id)
}

// UpdateCurriculum renames a curriculum.
func (c *CurriculumService) UpdateCurriculum(ctx context.Context, id, title string) (*model.Curriculum, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	cur, err := c.store.GetCurriculum(ctx, id)
	if err != nil {
		return nil, err
	}

	cur.Title = title
	if err := c.store.UpdateCurriculum(ctx, cur); err != nil {
		return nil, err
	}

	c.cache.Invalidate(ctx, cur.CourseID)

	return cur, nil
}

// DeleteCurriculum deletes a curriculum and its pages.
func (c *CurriculumService) DeleteCurriculum(ctx context.Context, id string) error {
	cur, err := c.store.GetCurriculum(ctx, id)
	if err != nil {
		return err
	}

	if err := c.store.DeleteCurriculum(ctx, id); err != nil {
		return err
	}

	c.cache.Invalidate(ctx, cur.CourseID)

	return nil
}

// Reorder rewrites the sibling order of a course's curriculums to match
// ids. The list must be a permutation of the current curriculums; the
// whole rewrite happens in one transaction so a bad id leaves the order
// untouched.
func (c *CurriculumService) Reorder(ctx context.Context, courseID string, ids []string) error {
	count, err := c.store.CountCurriculums(ctx, courseID)
	if err != nil {
		return err
	}
	if int64(len(ids)) != count || hasDuplicates(ids) {
		return ErrOrderMismatch
	}

	err = c.store.Transaction(ctx, func(tx store.Store) error {
		for index, id := range ids {
			if err := tx.SetCurriculumOrder(ctx, courseID, id, index); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if store.NotFound(err) {
			return ErrOrderMismatch
		}
		return err
	}

	c.cache.Invalidate(ctx, courseID)

	return nil
}

// Duplicate copies a curriculum with all of its pages. The copy lands at
// the end of the course with " (copy)" appended to the title, and its
// pages start out unpublished.
func (c *CurriculumService) Duplicate(ctx context.Context, id string) (*model.Curriculum, error) {
	src, err := c.store.GetCurriculumWithPages(ctx, id)
	if err != nil {
		return nil, err
	}

	maxOrder, err := c.store.MaxCurriculumOrder(ctx, src.CourseID)
	if err != nil {
		return nil, err
	}

	dup := &model.Curriculum{
		ID:       uuid.New().String(),
		CourseID: src.CourseID,
		Title:    src.Title + " (copy)",
		Order:    maxOrder + 1,
	}

	err = c.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateCurriculum(ctx, dup); err != nil {
			return err
		}
		for _, page := range src.Pages {
			copy := &model.Page{
				ID:           uuid.New().String(),
				CurriculumID: dup.ID,
				Title:        page.Title,
				Order:        page.Order,
				Content:      page.Content,
			}
			if err := tx.CreatePage(ctx, copy); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.store.GetCurriculumWithPages(ctx, dup.ID)
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
