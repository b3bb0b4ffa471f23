package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"pwdassist/internal/auth"
	"pwdassist/internal/model"
	"pwdassist/internal/repository"
	"pwdassist/internal/service"
)

// fakeUserRepo is an in-memory UserRepository with unique username/email,
// close enough to the real store for end-to-end handler flows.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  []*model.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id uint, fullName, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID != id && u.Email == email {
			return gorm.ErrDuplicatedKey
		}
	}
	for _, u := range r.users {
		if u.ID == id {
			u.FullName = fullName
			u.Email = email
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type authTestEnv struct {
	e     *echo.Echo
	repo  *fakeUserRepo
	store *auth.MemoryStore
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	repo := newFakeUserRepo()
	store := auth.NewMemoryStore(time.Hour)
	gate := auth.NewGate(store, false, time.Hour)
	authService := service.NewAuthService(repo, store)
	h := NewAuthHandler(authService, gate)

	e := echo.New()
	e.Use(gate.LoadSession)
	e.POST("/login", h.Login)
	e.POST("/signup", h.Signup)
	e.GET("/logout", h.Logout)
	e.GET("/home", func(c echo.Context) error { return c.String(http.StatusOK, "home") },
		gate.RequireRole(auth.RoleIndividual))

	return &authTestEnv{e: e, repo: repo, store: store}
}

func (env *authTestEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func signupForm() url.Values {
	return url.Values{
		"fullname":  {"Jane"},
		"username":  {"jane"},
		"email":     {"jane@x.com"},
		"password":  {"secret1"},
		"user_type": {"individual"},
	}
}

func TestSignup_IndividualRedirectsHome(t *testing.T) {
	env := newAuthTestEnv(t)

	rec := env.postForm("/signup", signupForm())

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie, "signup must establish a session")

	sess, err := env.store.Read(context.Background(), cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, auth.RoleIndividual, sess.Role)
	assert.Equal(t, "jane", sess.Username)
}

func TestSignup_NgoRedirectsDashboard(t *testing.T) {
	env := newAuthTestEnv(t)

	form := signupForm()
	form.Set("username", "helpinghands")
	form.Set("email", "contact@helpinghands.org")
	form.Set("user_type", "ngo")
	rec := env.postForm("/signup", form)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/ngo/dashboard", rec.Header().Get("Location"))
}

func TestSignup_DuplicateLeavesNoSecondRow(t *testing.T) {
	env := newAuthTestEnv(t)
	env.postForm("/signup", signupForm())

	rec := env.postForm("/signup", signupForm())

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookie(rec))
	assert.Len(t, env.repo.users, 1)
}

func TestSignup_ShortPasswordCreatesNoRow(t *testing.T) {
	env := newAuthTestEnv(t)

	form := signupForm()
	form.Set("password", "12345")
	rec := env.postForm("/signup", form)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Empty(t, env.repo.users)
}

func TestLogin_AfterSignupSucceeds(t *testing.T) {
	env := newAuthTestEnv(t)
	env.postForm("/signup", signupForm())

	rec := env.postForm("/login", url.Values{"username": {"jane"}, "password": {"secret1"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))

	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)
	sess, err := env.store.Read(context.Background(), cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, auth.RoleIndividual, sess.Role)
}

func TestLogin_WrongPasswordIsGeneric(t *testing.T) {
	env := newAuthTestEnv(t)
	env.postForm("/signup", signupForm())

	rec := env.postForm("/login", url.Values{"username": {"jane"}, "password": {"wrongpass"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookie(rec), "failed login must not create a session")

	// unknown user gets the exact same outcome
	rec2 := env.postForm("/login", url.Values{"username": {"nobody"}, "password": {"secret1"}})
	assert.Equal(t, rec.Header().Get("Location"), rec2.Header().Get("Location"))
}

func TestLogout_InvalidatesSession(t *testing.T) {
	env := newAuthTestEnv(t)
	rec := env.postForm("/signup", signupForm())
	cookie := sessionCookie(rec)
	assert.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	out := httptest.NewRecorder()
	env.e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusFound, out.Code)
	assert.Equal(t, "/", out.Header().Get("Location"))

	// the old session id no longer authenticates
	req = httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(cookie)
	out = httptest.NewRecorder()
	env.e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusFound, out.Code)
	assert.Equal(t, "/login", out.Header().Get("Location"))
}
