package store

import (
	"context"
	"errors"
	"time"

	"github.com/courseforge/courseforge/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// mapNotFound translates gorm's record-not-found into the entity sentinel.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (g *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	return g.db.WithContext(ctx).Create(user).Error
}

func (g *GormStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (g *GormStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (g *GormStore) CreateCourse(ctx context.Context, course *model.Course) error {
	return g.db.WithContext(ctx).Create(course).Error
}

func (g *GormStore) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, mapNotFound(err, ErrCourseNotFound)
	}
	return &course, nil
}

func (g *GormStore) GetCourseTree(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := g.db.WithContext(ctx).
		Preload("Curriculums", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Preload("Curriculums.Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, mapNotFound(err, ErrCourseNotFound)
	}
	return &course, nil
}

func (g *GormStore) ListCourses(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	err := g.db.WithContext(ctx).Order("updated_at desc").Find(&courses).Error
	return courses, err
}

func (g *GormStore) CountCurriculums(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Curriculum{}).
		Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (g *GormStore) UpdateCourse(ctx context.Context, course *model.Course) error {
	return g.db.WithContext(ctx).Save(course).Error
}

func (g *GormStore) DeleteCourse(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Select("Curriculums").Delete(&model.Course{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (g *GormStore) CreateCurriculum(ctx context.Context, cur *model.Curriculum) error {
	return g.db.WithContext(ctx).Create(cur).Error
}

func (g *GormStore) GetCurriculum(ctx context.Context, id string) (*model.Curriculum, error) {
	var cur model.Curriculum
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&cur).Error
	if err != nil {
		return nil, mapNotFound(err, ErrCurriculumNotFound)
	}
	return &cur, nil
}

func (g *GormStore) GetCurriculumWithPages(ctx context.Context, id string) (*model.Curriculum, error) {
	var cur model.Curriculum
	err := g.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc")
		}).
		Where("id = ?", id).First(&cur).Error
	if err != nil {
		return nil, mapNotFound(err, ErrCurriculumNotFound)
	}
	return &cur, nil
}

func (g *GormStore) ListCurriculums(ctx context.Context, courseID string) ([]*model.Curriculum, error) {
	var curs []*model.Curriculum
	err := g.db.WithContext(ctx).
		Where("course_id = ?", courseID).Order("sort_order asc").Find(&curs).Error
	return curs, err
}

func (g *GormStore) MaxCurriculumOrder(ctx context.Context, courseID string) (int, error) {
	var max *int
	err := g.db.WithContext(ctx).Model(&model.Curriculum{}).
		Where("course_id = ?", courseID).
		Select("max(sort_order)").Scan(&max).Error
	if err != nil {
		return -1, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (g *GormStore) UpdateCurriculum(ctx context.Context, cur *model.Curriculum) error {
	return g.db.WithContext(ctx).Save(cur).Error
}

func (g *GormStore) SetCurriculumOrder(ctx context.Context, courseID, id string, order int) error {
	res := g.db.WithContext(ctx).Model(&model.Curriculum{}).
		Where("id = ? AND course_id = ?", id, courseID).
		Update("sort_order", order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCurriculumNotFound
	}
	return nil
}

func (g *GormStore) DeleteCurriculum(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Select("Pages").Delete(&model.Curriculum{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCurriculumNotFound
	}
	return nil
}

func (g *GormStore) CreatePage(ctx context.Context, page *model.Page) error {
	return g.db.WithContext(ctx).Create(page).Error
}

func (g *GormStore) GetPage(ctx context.Context, id string) (*model.Page, error) {
	var page model.Page
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&page).Error
	if err != nil {
		return nil, mapNotFound(err, ErrPageNotFound)
	}
	return &page, nil
}

func (g *GormStore) ListPages(ctx context.Context, curriculumID string) ([]*model.Page, error) {
	var pages []*model.Page
	err := g.db.WithContext(ctx).
		Where("curriculum_id = ?", curriculumID).Order("sort_order asc").Find(&pages).Error
	return pages, err
}

func (g *GormStore) CountPages(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&model.Page{}).
		Joins("JOIN curriculums ON curriculums.id = pages.curriculum_id").
		Where("curriculums.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (g *GormStore) MaxPageOrder(ctx context.Context, curriculumID string) (int, error) {
	var max *int
	err := g.db.WithContext(ctx).Model(&model.Page{}).
		Where("curriculum_id = ?", curriculumID).
		Select("max(sort_order)").Scan(&max).Error
	if err != nil {
		return -1, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (g *GormStore) UpdatePage(ctx context.Context, page *model.Page) error {
	return g.db.WithContext(ctx).Save(page).Error
}

func (g *GormStore) SetPageOrder(ctx context.Context, curriculumID, id string, order int) error {
	res := g.db.WithContext(ctx).Model(&model.Page{}).
		Where("id = ? AND curriculum_id = ?", id, curriculumID).
		Update("sort_order", order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

func (g *GormStore) DeletePage(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Delete(&model.Page{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

func (g *GormStore) CreatePageVersion(ctx context.Context, version *model.PageVersion) error {
	return g.db.WithContext(ctx).Create(version).Error
}

func (g *GormStore) GetPageVersion(ctx context.Context, pageID, versionID string) (*model.PageVersion, error) {
	var version model.PageVersion
	err := g.db.WithContext(ctx).
		Where("id = ? AND page_id = ?", versionID, pageID).First(&version).Error
	if err != nil {
		return nil, mapNotFound(err, ErrVersionNotFound)
	}
	return &version, nil
}

func (g *GormStore) ListPageVersions(ctx context.Context, pageID string) ([]*model.PageVersion, error) {
	var versions []*model.PageVersion
	err := g.db.WithContext(ctx).
		Where("page_id = ?", pageID).Order("created_at desc").Find(&versions).Error
	return versions, err
}

func (g *GormStore) ListPageVersionsByCreatedRange(ctx context.Context, from, to time.Time) ([]*model.PageVersion, error) {
	var versions []*model.PageVersion
	err := g.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("page_id asc, created_at asc").Find(&versions).Error
	return versions, err
}

func (g *GormStore) DeletePageVersion(ctx context.Context, pageID, versionID string) error {
	res := g.db.WithContext(ctx).
		Where("id = ? AND page_id = ?", versionID, pageID).Delete(&model.PageVersion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionNotFound
	}
	return nil
}

func (g *GormStore) DeletePageVersions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Where("id in (?)", ids).Delete(&model.PageVersion{}).Error
}

func (g *GormStore) GetPageLike(ctx context.Context, pageID, userID string) (*model.PageLike, error) {
	var like model.PageLike
	err := g.db.WithContext(ctx).
		Where("page_id = ? AND user_id = ?", pageID, userID).First(&like).Error
	if err != nil {
		return nil, mapNotFound(err, ErrLikeNotFound)
	}
	return &like, nil
}

func (g *GormStore) CreatePageLike(ctx context.Context, like *model.PageLike) error {
	return g.db.WithContext(ctx).Create(like).Error
}

func (g *GormStore) DeletePageLike(ctx context.Context, pageID, userID string) error {
	res := g.db.WithContext(ctx).
		Where("page_id = ? AND user_id = ?", pageID, userID).Delete(&model.PageLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// AddLikeCount adjusts the counter atomically and clamps the result at zero.
// NOTE: should run in a transaction together with the like row change.
func (g *GormStore) AddLikeCount(ctx context.Context, pageID string, delta int) (int, error) {
	res := g.db.WithContext(ctx).Model(&model.Page{}).
		Where("id = ?", pageID).
		Update("like_count", gorm.Expr("CASE WHEN like_count + ? < 0 THEN 0 ELSE like_count + ? END", delta, delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrPageNotFound
	}
	var count int
	err := g.db.WithContext(ctx).Model(&model.Page{}).
		Where("id = ?", pageID).Select("like_count").Scan(&count).Error
	return count, err
}

func (g *GormStore) GetProgress(ctx context.Context, userID, courseID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		return nil, mapNotFound(err, ErrProgressNotFound)
	}
	return &progress, nil
}

func (g *GormStore) UpsertProgress(ctx context.Context, progress *model.UserProgress) error {
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			UpdateAll: true,
		}).
		Create(progress).Error
}

func (g *GormStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return g.db.WithContext(ctx).Create(comment).Error
}

func (g *GormStore) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := g.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, mapNotFound(err, ErrCommentNotFound)
	}
	return &comment, nil
}

func (g *GormStore) ListComments(ctx context.Context, pageID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := g.db.WithContext(ctx).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Replies.Author").
		Where("page_id = ? AND parent_id IS NULL", pageID).
		Order("created_at desc").Find(&comments).Error
	return comments, err
}

func (g *GormStore) UpdateComment(ctx context.Context, comment *model.Comment) error {
	return g.db.WithContext(ctx).Save(comment).Error
}

func (g *GormStore) DeleteComment(ctx context.Context, id string) error {
	if err := g.db.WithContext(ctx).
		Where("parent_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	res := g.db.WithContext(ctx).Delete(&model.Comment{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
