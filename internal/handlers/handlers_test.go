package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/handlers"
	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/server"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/session"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/courseforge/courseforge/internal/tester"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type fixture struct {
	router      *gin.Engine
	db          *store.GormStore
	courses     *service.CourseService
	curriculums *service.CurriculumService
	pages       *service.PageService
}

func setupRouter(t *testing.T, apiKey string) *fixture {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	courseCache := cache.NewCourseCache(nil)
	codec, err := service.NewCodec("gzip")
	assert.NoError(t, err)

	courses := service.NewCourseService(db, courseCache)
	curriculums := service.NewCurriculumService(db, courseCache)
	pages := service.NewPageService(db, courseCache, codec)
	cookies := session.NewStore("test-secret", false)

	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       handlers.NewAuthHandler(service.NewAuthService(db), cookies),
		CourseHandler:     handlers.NewCourseHandler(courses),
		CurriculumHandler: handlers.NewCurriculumHandler(curriculums),
		PageHandler:       handlers.NewPageHandler(pages),
		VersionHandler:    handlers.NewVersionHandler(service.NewVersionService(db, codec)),
		ViewerHandler:     handlers.NewViewerHandler(service.NewViewerService(db), false),
		CommentHandler:    handlers.NewCommentHandler(service.NewCommentService(db)),
		ExportHandler:     handlers.NewExportHandler(service.NewExportService(db)),
		ExternalHandler:   handlers.NewExternalHandler(courses, pages, db, apiKey),
	})

	return &fixture{
		router:      router,
		db:          db,
		courses:     courses,
		curriculums: curriculums,
		pages:       pages,
	}
}

func (f *fixture) seedAdmin(t *testing.T, password string) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	admin := &model.User{
		ID:       uuid.New().String(),
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	assert.NoError(t, f.db.CreateUser(context.TODO(), admin))
	return admin
}

func (f *fixture) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func onePage(text string) datatypes.JSON {
	return datatypes.JSON(`[{"id":"` + uuid.New().String() +
		`","type":"paragraph","props":{},"content":[{"type":"text","text":"` + text + `","styles":{}}],"children":[]}]`)
}

func TestAuthHandler_LoginGatesAuthoring(t *testing.T) {
	f := setupRouter(t, "")
	f.seedAdmin(t, "admin123")

	// authoring routes reject anonymous callers
	rec := f.do(http.MethodGet, "/api/courses", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "admin123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	adminCookie := cookieNamed(rec, session.AdminSession)
	assert.NotNil(t, adminCookie)

	rec = f.do(http.MethodGet, "/api/courses", nil, adminCookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/auth/me", nil, adminCookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.RoleAdmin)
}

func TestViewerHandler_CookieMintedOnFirstTouch(t *testing.T) {
	f := setupRouter(t, "")

	course, err := f.courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)
	cur, err := f.curriculums.CreateCurriculum(context.TODO(), course.ID, "Getting Started")
	assert.NoError(t, err)
	page, err := f.pages.CreatePage(context.TODO(), cur.ID, "Hello", onePage("hello"))
	assert.NoError(t, err)

	// the first touch mints the anonymous cookie alongside the response
	rec := f.do(http.MethodGet, "/api/pages/"+page.ID+"/like", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	viewer := cookieNamed(rec, session.ViewerCookie)
	assert.NotNil(t, viewer)
	assert.NotEmpty(t, viewer.Value)

	rec = f.do(http.MethodPost, "/api/pages/"+page.ID+"/like", nil, viewer)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"liked":true,"count":1}`, rec.Body.String())

	// a returning cookie is reused, so the repeat like stays a no-op
	rec = f.do(http.MethodPost, "/api/pages/"+page.ID+"/like", nil, viewer)
	assert.JSONEq(t, `{"liked":true,"count":1}`, rec.Body.String())
	assert.Nil(t, cookieNamed(rec, session.ViewerCookie))

	// a cookieless caller is a second session with its own like
	rec = f.do(http.MethodPost, "/api/pages/"+page.ID+"/like", nil)
	assert.JSONEq(t, `{"liked":true,"count":2}`, rec.Body.String())
	assert.NotNil(t, cookieNamed(rec, session.ViewerCookie))
}

func TestViewerHandler_Progress(t *testing.T) {
	f := setupRouter(t, "")

	course, err := f.courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)
	cur, err := f.curriculums.CreateCurriculum(context.TODO(), course.ID, "Getting Started")
	assert.NoError(t, err)
	page1, err := f.pages.CreatePage(context.TODO(), cur.ID, "One", onePage("one"))
	assert.NoError(t, err)
	_, err = f.pages.CreatePage(context.TODO(), cur.ID, "Two", onePage("two"))
	assert.NoError(t, err)

	rec := f.do(http.MethodGet, "/api/courses/"+course.ID+"/progress", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	viewer := cookieNamed(rec, session.ViewerCookie)
	assert.NotNil(t, viewer)

	rec = f.do(http.MethodPost, "/api/courses/"+course.ID+"/progress", gin.H{"pageId": page1.ID}, viewer)
	assert.Equal(t, http.StatusOK, rec.Code)

	var progress service.Progress
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, float64(50), progress.Progress)
	assert.Equal(t, []string{page1.ID}, progress.CompletedPages)
	assert.Equal(t, page1.ID, *progress.LastPageID)
}

func TestCourseHandler_ViewerGet(t *testing.T) {
	f := setupRouter(t, "")

	course, err := f.courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)
	cur, err := f.curriculums.CreateCurriculum(context.TODO(), course.ID, "Getting Started")
	assert.NoError(t, err)
	page1, err := f.pages.CreatePage(context.TODO(), cur.ID, "Hello", onePage("hello"))
	assert.NoError(t, err)

	rec := f.do(http.MethodGet, "/api/viewer/courses/"+course.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, err = f.courses.Publish(context.TODO(), course.ID)
	assert.NoError(t, err)

	// a draft edit after publish and a brand-new page both reach the viewer
	// correctly: the edit stays hidden, the new page serves its draft
	_, err = f.pages.UpdatePage(context.TODO(), page1.ID, service.UpdatePageRequest{Content: onePage("revised")})
	assert.NoError(t, err)
	page2, err := f.pages.CreatePage(context.TODO(), cur.ID, "Fresh", onePage("fresh"))
	assert.NoError(t, err)

	rec = f.do(http.MethodGet, "/api/viewer/courses/"+course.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Course
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Curriculums, 1)
	assert.Len(t, got.Curriculums[0].Pages, 2)
	assert.Contains(t, string(got.Curriculums[0].Pages[0].Content), "hello")
	assert.Equal(t, page2.ID, got.Curriculums[0].Pages[1].ID)
	assert.Contains(t, string(got.Curriculums[0].Pages[1].Content), "fresh")
}

func TestExternalHandler_KeyGate(t *testing.T) {
	// without a configured key the surface is disabled outright
	disabled := setupRouter(t, "")
	rec := disabled.do(http.MethodGet, "/api/external/courses", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "disabled")

	f := setupRouter(t, "secret-key")
	_, err := f.courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)

	rec = f.do(http.MethodGet, "/api/external/courses", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/external/courses", nil)
	req.Header.Set("X-API-Key", "wrong")
	out := httptest.NewRecorder()
	f.router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/external/courses", nil)
	req.Header.Set("X-API-Key", "secret-key")
	out = httptest.NewRecorder()
	f.router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    []struct {
			Title string `json:"title"`
		} `json:"data"`
		Meta struct {
			Total *int `json:"total"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(out.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, "Go Basics", envelope.Data[0].Title)
	assert.Equal(t, 1, *envelope.Meta.Total)
}
