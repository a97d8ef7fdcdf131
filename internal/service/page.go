package service

import (
	"context"
	"strings"

	"github.com/courseforge/courseforge/internal/blocks"
	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NewPageService creates a new PageService.
func NewPageService(store store.Store, cache *cache.CourseCache, codec Codec) *PageService {
	return &PageService{
		store: store,
		cache: cache,
		codec: codec,
	}
}

// PageService manages pages, their ordering inside a curriculum, and the
// version snapshot taken on content updates.
type PageService struct {
	store store.Store
	cache *cache.CourseCache
	codec Codec
}

// CreatePage appends a new page at the end of a curriculum.
func (p *PageService) CreatePage(ctx context.Context, curriculumID, title string, content []byte) (*model.Page, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if _, err := p.store.GetCurriculum(ctx, curriculumID); err != nil {
		return nil, err
	}

	maxOrder, err := p.store.MaxPageOrder(ctx, curriculumID)
	if err != nil {
		return nil, err
	}

	page := &model.Page{
		ID:           uuid.New().String(),
		CurriculumID: curriculumID,
		Title:        title,
		Order:        maxOrder + 1,
		Content:      datatypes.JSON(content),
	}
	if err := p.store.CreatePage(ctx, page); err != nil {
		return nil, err
	}

	return page, nil
}

// GetPage returns a single page.
func (p *PageService) GetPage(ctx context.Context, id string) (*model.Page, error) {
	return p.store.GetPage(ctx, id)
}

// UpdatePageRequest carries the partial update of a page. Nil fields are
// left untouched. SaveVersion snapshots the content as it was before the
// update.
type UpdatePageRequest struct {
	Title       *string
	Content     []byte
	Order       *int
	SaveVersion bool
}

// UpdatePage applies a partial update. When SaveVersion is set and the
// content changes, the previous content is archived as a version inside
// the same transaction as the update.
func (p *PageService) UpdatePage(ctx context.Context, id string, req UpdatePageRequest) (*model.Page, error) {
	if req.Content != nil {
		if err := validateContent(req.Content); err != nil {
			return nil, err
		}
	}

	var updated *model.Page
	err := p.store.Transaction(ctx, func(tx store.Store) error {
		page, err := tx.GetPage(ctx, id)
		if err != nil {
			return err
		}

		if req.SaveVersion && req.Content != nil && len(page.Content) > 0 {
			version, err := p.snapshot(page)
			if err != nil {
				return err
			}
			if err := tx.CreatePageVersion(ctx, version); err != nil {
				return err
			}
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return ErrTitleRequired
			}
			page.Title = title
		}
		if req.Content != nil {
			page.Content = datatypes.JSON(req.Content)
		}
		if req.Order != nil {
			page.Order = *req.Order
		}

		if err := tx.UpdatePage(ctx, page); err != nil {
			return err
		}
		updated = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeletePage deletes a page with its versions, likes and comments.
func (p *PageService) DeletePage(ctx context.Context, id string) error {
	return p.store.DeletePage(ctx, id)
}

// Reorder rewrites the sibling order of a curriculum's pages to match
// ids, all in one transaction.
func (p *PageService) Reorder(ctx context.Context, curriculumID string, ids []string) error {
	pages, err := p.store.ListPages(ctx, curriculumID)
	if err != nil {
		return err
	}
	if len(ids) != len(pages) || hasDuplicates(ids) {
		return ErrOrderMismatch
	}

	err = p.store.Transaction(ctx, func(tx store.Store) error {
		for index, id := range ids {
			if err := tx.SetPageOrder(ctx, curriculumID, id, index); err != nil {
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

	return nil
}

// Move transfers a page to another curriculum, appending it at the end of
// the destination.
func (p *PageService) Move(ctx context.Context, id, toCurriculumID string) (*model.Page, error) {
	page, err := p.store.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := p.store.GetCurriculum(ctx, toCurriculumID); err != nil {
		return nil, err
	}

	maxOrder, err := p.store.MaxPageOrder(ctx, toCurriculumID)
	if err != nil {
		return nil, err
	}

	page.CurriculumID = toCurriculumID
	page.Order = maxOrder + 1
	if err := p.store.UpdatePage(ctx, page); err != nil {
		return nil, err
	}

	return page, nil
}

// Duplicate copies a page within its curriculum. The copy lands at the
// end with " (copy)" appended to the title and starts out unpublished.
func (p *PageService) Duplicate(ctx context.Context, id string) (*model.Page, error) {
	src, err := p.store.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}

	maxOrder, err := p.store.MaxPageOrder(ctx, src.CurriculumID)
	if err != nil {
		return nil, err
	}

	dup := &model.Page{
		ID:           uuid.New().String(),
		CurriculumID: src.CurriculumID,
		Title:        src.Title + " (copy)",
		Order:        maxOrder + 1,
		Content:      src.Content,
	}
	if err := p.store.CreatePage(ctx, dup); err != nil {
		return nil, err
	}

	return dup, nil
}

// snapshot encodes the page's current content as a version row.
func (p *PageService) snapshot(page *model.Page) (*model.PageVersion, error) {
	data, err := p.codec.Encode(page.Content)
	if err != nil {
		return nil, err
	}
	return &model.PageVersion{
		ID:          uuid.New().String(),
		PageID:      page.ID,
		Content:     data,
		Compression: p.codec.Name,
	}, nil
}

func validateContent(content []byte) error {
	if len(content) == 0 {
		return nil
	}
	if _, err := blocks.Decode(content); err != nil {
		return ErrInvalidContent
	}
	return nil
}
