package service

import (
	"context"
	"time"

	"github.com/courseforge/courseforge/internal/blocks"
	"github.com/courseforge/courseforge/internal/compress"
	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Codec pairs a compress implementation with the name written into the
// version rows it produces.
type Codec struct {
	Name string
	compress.Compress
}

// NewCodec resolves a codec by its configured name.
func NewCodec(name string) (Codec, error) {
	c, err := compress.ByName(name)
	if err != nil {
		return Codec{}, err
	}
	if name == "" {
		name = compress.NameNop
	}
	return Codec{Name: name, Compress: c}, nil
}

// NewVersionService creates a new VersionService.
func NewVersionService(store store.Store, codec Codec) *VersionService {
	return &VersionService{
		store: store,
		codec: codec,
	}
}

// VersionService manages the append-only content history of pages.
// Snapshots are compressed at rest; each row remembers the codec that
// wrote it so history survives a codec change.
type VersionService struct {
	store store.Store
	codec Codec
}

// Version is the listing view of a snapshot. Number counts from the
// oldest snapshot, so the first save of a page is version 1 forever.
type Version struct {
	ID        string    `json:"id"`
	PageID    string    `json:"pageId"`
	Number    int       `json:"versionNumber"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListVersions returns the snapshots of a page, newest first, with their
// stable numbers and text previews.
func (v *VersionService) ListVersions(ctx context.Context, pageID string) ([]*Version, error) {
	if _, err := v.store.GetPage(ctx, pageID); err != nil {
		return nil, err
	}

	rows, err := v.store.ListPageVersions(ctx, pageID)
	if err != nil {
		return nil, err
	}

	out := make([]*Version, 0, len(rows))
	for i, row := range rows {
		content, err := v.decode(row)
		if err != nil {
			logrus.Warnf("version %s is unreadable: %v", row.ID, err)
			content = nil
		}
		out = append(out, &Version{
			ID:        row.ID,
			PageID:    row.PageID,
			Number:    len(rows) - i,
			Preview:   blocks.Preview(content),
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

// GetVersionContent returns the full decoded content of one snapshot.
func (v *VersionService) GetVersionContent(ctx context.Context, pageID, versionID string) ([]byte, error) {
	row, err := v.store.GetPageVersion(ctx, pageID, versionID)
	if err != nil {
		return nil, err
	}
	return v.decode(row)
}

// SaveVersion snapshots the page's current content explicitly.
func (v *VersionService) SaveVersion(ctx context.Context, pageID string) (*model.PageVersion, error) {
	page, err := v.store.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	version, err := v.encode(page.ID, page.Content)
	if err != nil {
		return nil, err
	}
	if err := v.store.CreatePageVersion(ctx, version); err != nil {
		return nil, err
	}
	return version, nil
}

// Restore replaces the page's content with a snapshot. The content being
// replaced is archived first, inside the same transaction, so a restore
// is always reversible.
func (v *VersionService) Restore(ctx context.Context, pageID, versionID string) (*model.Page, error) {
	var restored *model.Page
	err := v.store.Transaction(ctx, func(tx store.Store) error {
		page, err := tx.GetPage(ctx, pageID)
		if err != nil {
			return err
		}
		row, err := tx.GetPageVersion(ctx, pageID, versionID)
		if err != nil {
			return err
		}
		content, err := v.decode(row)
		if err != nil {
			return err
		}

		if len(page.Content) > 0 {
			backup, err := v.encode(page.ID, page.Content)
			if err != nil {
				return err
			}
			if err := tx.CreatePageVersion(ctx, backup); err != nil {
				return err
			}
		}

		page.Content = datatypes.JSON(content)
		if err := tx.UpdatePage(ctx, page); err != nil {
			return err
		}
		restored = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("restored page %s to version %s", pageID, versionID)

	return restored, nil
}

// DeleteVersion removes one snapshot from the history.
func (v *VersionService) DeleteVersion(ctx context.Context, pageID, versionID string) error {
	return v.store.DeletePageVersion(ctx, pageID, versionID)
}

func (v *VersionService) encode(pageID string, content []byte) (*model.PageVersion, error) {
	data, err := v.codec.Encode(content)
	if err != nil {
		return nil, err
	}
	return &model.PageVersion{
		ID:          uuid.New().String(),
		PageID:      pageID,
		Content:     data,
		Compression: v.codec.Name,
	}, nil
}

func (v *VersionService) decode(row *model.PageVersion) ([]byte, error) {
	codec, err := compress.ByName(row.Compression)
	if err != nil {
		return nil, err
	}
	return codec.Decode(row.Content)
}
