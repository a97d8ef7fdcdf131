package service

import (
	"context"
	"errors"
	"strings"

	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/google/uuid"
)

// ErrCommentForbidden is returned when an account edits someone else's comment.
var ErrCommentForbidden = errors.New("only the author or an admin can modify a comment")

// NewCommentService creates a new CommentService.
func NewCommentService(store store.Store) *CommentService {
	return &CommentService{
		store: store,
	}
}

// CommentService manages in-page discussions. Admins comment under their
// account; anonymous viewers post through a shared guest account with a
// display name kept on the response only.
type CommentService struct {
	store store.Store
}

// ListComments returns the top-level comments of a page, newest first,
// with replies oldest first.
func (c *CommentService) ListComments(ctx context.Context, pageID string) ([]*model.Comment, error) {
	if _, err := c.store.GetPage(ctx, pageID); err != nil {
		return nil, err
	}
	return c.store.ListComments(ctx, pageID)
}

// CreateComment posts a comment or a reply as an authenticated user.
// Replies only nest one level deep.
func (c *CommentService) CreateComment(ctx context.Context, pageID, authorID, content string, parentID *string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	if _, err := c.store.GetPage(ctx, pageID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := c.store.GetComment(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentID != nil {
			return nil, ErrReplyDepth
		}
	}

	comment := &model.Comment{
		ID:       uuid.New().String(),
		PageID:   pageID,
		AuthorID: authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := c.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return c.store.GetComment(ctx, comment.ID)
}

// CreateGuestComment posts an anonymous top-level comment. All guest
// comments share one account, created on first use; the given display
// name replaces the account name on the returned comment.
func (c *CommentService) CreateGuestComment(ctx context.Context, pageID, guestName, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	guestName = strings.TrimSpace(guestName)
	if content == "" || guestName == "" {
		return nil, ErrContentRequired
	}

	if _, err := c.store.GetPage(ctx, pageID); err != nil {
		return nil, err
	}

	guest, err := c.guestUser(ctx)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:       uuid.New().String(),
		PageID:   pageID,
		AuthorID: guest.ID,
		Content:  content,
	}
	if err := c.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	created, err := c.store.GetComment(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	if created.Author != nil {
		author := *created.Author
		author.Name = guestName
		created.Author = &author
	}
	return created, nil
}

// UpdateComment edits the body or the resolved flag. Only the author or
// an admin may touch a comment.
func (c *CommentService) UpdateComment(ctx context.Context, id, actorID string, content *string, resolved *bool) (*model.Comment, error) {
	comment, err := c.store.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.authorize(ctx, comment, actorID); err != nil {
		return nil, err
	}

	if content != nil {
		body := strings.TrimSpace(*content)
		if body == "" {
			return nil, ErrContentRequired
		}
		comment.Content = body
	}
	if resolved != nil {
		comment.Resolved = *resolved
	}

	if err := c.store.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}

	return c.store.GetComment(ctx, id)
}

// DeleteComment removes a comment and its replies.
func (c *CommentService) DeleteComment(ctx context.Context, id, actorID string) error {
	comment, err := c.store.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if err := c.authorize(ctx, comment, actorID); err != nil {
		return err
	}

	return c.store.DeleteComment(ctx, id)
}

func (c *CommentService) authorize(ctx context.Context, comment *model.Comment, actorID string) error {
	if comment.AuthorID == actorID {
		return nil
	}
	actor, err := c.store.GetUser(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != model.RoleAdmin {
		return ErrCommentForbidden
	}
	return nil
}

func (c *CommentService) guestUser(ctx context.Context) (*model.User, error) {
	guest, err := c.store.GetUserByEmail(ctx, model.GuestEmail)
	if err == nil {
		return guest, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	guest = &model.User{
		ID:    uuid.New().String(),
		Email: model.GuestEmail,
		Name:  "Guest",
		Role:  model.RoleViewer,
	}
	if err := c.store.CreateUser(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}
