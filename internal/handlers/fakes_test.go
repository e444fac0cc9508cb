package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blogapp/internal/app"
	"blogapp/internal/auth"
	dom "blogapp/internal/domain"
	"blogapp/internal/handlers"
	"blogapp/internal/service"
	"blogapp/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeUserRepo struct {
	users  map[int64]dom.User
	byName map[string]int64
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]dom.User{}, byName: map[string]int64{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	id, ok := r.byName[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return r.users[id], nil
}

func (r *fakeUserRepo) Create(_ context.Context, username, password, email string) (dom.User, error) {
	if _, ok := r.byName[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	}
	r.nextID++
	now := time.Now()
	u := dom.User{
		ID:           r.nextID,
		Username:     username,
		Password:     password,
		Email:        email,
		CreatedAt:    now,
		LastModified: now,
	}
	r.users[u.ID] = u
	r.byName[username] = u.ID
	return u, nil
}

type fakePostRepo struct {
	posts  []dom.Post
	nextID int64
	clock  time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *fakePostRepo) Create(_ context.Context, subject, content string) (dom.Post, error) {
	r.nextID++
	r.clock = r.clock.Add(time.Minute)
	p := dom.Post{
		ID:           r.nextID,
		Subject:      subject,
		Content:      content,
		CreatedAt:    r.clock,
		LastModified: r.clock,
	}
	r.posts = append(r.posts, p)
	return p, nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (dom.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return dom.Post{}, pgx.ErrNoRows
}

func (r *fakePostRepo) List(_ context.Context, limit int) ([]dom.Post, error) {
	var list []dom.Post
	for i := len(r.posts) - 1; i >= 0; i-- {
		list = append(list, r.posts[i])
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}

type fakeSessions struct {
	tokens map[string]int64
	n      int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]int64{}}
}

func (s *fakeSessions) Create(_ context.Context, userID int64) (string, error) {
	s.n++
	token := "tok" + strconv.Itoa(s.n)
	s.tokens[token] = userID
	return token, nil
}

func (s *fakeSessions) GetUserID(_ context.Context, token string) (int64, bool) {
	id, ok := s.tokens[token]
	return id, ok
}

func (s *fakeSessions) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

// fakeFreshness mirrors the Redis counter semantics on a manual clock.
type fakeFreshness struct {
	now       int64
	baselines map[string]int64
}

func newFakeFreshness() *fakeFreshness {
	return &fakeFreshness{now: 1000, baselines: map[string]int64{}}
}

func (f *fakeFreshness) Age(_ context.Context, scope string) int64 {
	base, ok := f.baselines[scope]
	if !ok {
		f.baselines[scope] = f.now
		return 0
	}
	return f.now - base
}

func (f *fakeFreshness) Flush(_ context.Context) error {
	f.baselines = map[string]int64{}
	return nil
}

type testEnv struct {
	router   *gin.Engine
	users    *fakeUserRepo
	posts    *fakePostRepo
	sessions *fakeSessions
	fresh    *fakeFreshness
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:    newFakeUserRepo(),
		posts:    newFakePostRepo(),
		sessions: newFakeSessions(),
		fresh:    newFakeFreshness(),
	}

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	userSvc := service.NewUserService(env.users)
	postSvc := service.NewPostService(env.posts, nil)
	authHandler := handlers.NewAuthHandler(env.sessions, userSvc)
	blogHandler := handlers.NewBlogHandler(postSvc, env.fresh)

	blog := r.Group("/blog", auth.WithUser(env.sessions, env.users))
	app.RegisterBlogRoutes(r, blog, blogHandler)
	app.RegisterAuthRoutes(blog, authHandler)

	env.router = r
	return env
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// login creates a user directly and returns its session cookie.
func (e *testEnv) login(username string) *http.Cookie {
	u, err := e.users.Create(context.Background(), username, "secret", "")
	if err != nil {
		// user already exists in this env; reuse it
		u, _ = e.users.GetByUsername(context.Background(), username)
	}
	token, _ := e.sessions.Create(context.Background(), u.ID)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == auth.CookieName && ck.Value != "" {
			return ck
		}
	}
	return nil
}
