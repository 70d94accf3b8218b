package router

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appuser "usermgmt/internal/app/user"
	"usermgmt/internal/app/usersync"
	"usermgmt/internal/cache"
	"usermgmt/internal/clients/usersapi"
	"usermgmt/internal/db/repository"
	"usermgmt/internal/http/handlers/health"
	userhandler "usermgmt/internal/http/handlers/user"
	"usermgmt/internal/http/handlers/web"
	"usermgmt/internal/logging"
	"usermgmt/internal/validation"
)

// apiCounter counts requests per method reaching the users API.
type apiCounter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *apiCounter) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		c.calls[r.Method]++
		c.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (c *apiCounter) get(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

type webEnv struct {
	web    *httptest.Server
	api    *httptest.Server
	calls  *apiCounter
	client *http.Client
	repo   *repository.MemoryUserRepository
}

func newWebEnv(t *testing.T, opts web.Options) *webEnv {
	t.Helper()
	return newWebEnvWithLogger(t, opts, logging.NewNop())
}

func newWebEnvWithLogger(t *testing.T, opts web.Options, logger logging.Logger) *webEnv {
	t.Helper()

	repo := repository.NewMemoryUserRepository()
	svc := appuser.NewService(repo, cache.NoopUserCache{}, appuser.NoopEvents{}, logger)
	calls := &apiCounter{calls: map[string]int{}}
	api := httptest.NewServer(calls.wrap(NewRouter(logger, health.NewHandler(nil), userhandler.NewHandler(svc, logger))))
	t.Cleanup(api.Close)

	remote, err := usersapi.New(api.URL+"/api/v1/users", time.Second, logger)
	require.NoError(t, err)

	sessions := web.NewSessions(cache.NewMemorySessionCache(), "sid", time.Hour, logger)
	handler := web.NewHandler(
		usersync.NewController(remote, logger),
		validation.Default(),
		sessions,
		usersync.NewChangeFeed(),
		opts,
		logger,
	)
	srv := httptest.NewServer(NewWebRouter(logger, health.NewHandler(nil), handler))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &webEnv{web: srv, api: api, calls: calls, client: &http.Client{Jar: jar}, repo: repo}
}

func (e *webEnv) get(t *testing.T, path string) string {
	t.Helper()
	resp, err := e.client.Get(e.web.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func (e *webEnv) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.web.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func annForm() url.Values {
	return url.Values{
		"firstName": {"Ann"},
		"lastName":  {"Lee"},
		"phone":     {"5551234567"},
		"email":     {"a@b.com"},
	}
}

func TestWebCreateFlow(t *testing.T) {
	env := newWebEnv(t, web.Options{})

	page := env.get(t, "/")
	assert.Contains(t, page, `action="/form"`, "a new session starts on the form")
	assert.Equal(t, 1, env.calls.get(http.MethodGet), "initial load lists users")

	status, page := env.post(t, "/form", annForm())
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, "<td>Ann</td>")
	assert.Contains(t, page, "<td>5551234567</td>")
	assert.Contains(t, page, `class="contained">User List</button>`)
	assert.Equal(t, 1, env.calls.get(http.MethodPost))

	users, err := env.repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ann", users[0].FirstName)

	// only the initial load listed; the new row came from the create response
	assert.Equal(t, 1, env.calls.get(http.MethodGet))
}

func TestWebInvalidSubmitMakesNoRemoteCall(t *testing.T) {
	env := newWebEnv(t, web.Options{})
	env.get(t, "/")

	form := annForm()
	form.Set("phone", "555")
	_, page := env.post(t, "/form", form)

	assert.Contains(t, page, `<span id="err-phone" class="error">Phone must be exactly 10 digits</span>`)
	assert.Contains(t, page, `value="Ann"`, "entered values survive a rejected submit")
	assert.Zero(t, env.calls.get(http.MethodPost))
}

func TestWebEditDeleteFlow(t *testing.T) {
	env := newWebEnv(t, web.Options{})
	env.get(t, "/")
	env.post(t, "/form", annForm())

	users, err := env.repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	id := users[0].ID

	_, page := env.post(t, "/users/"+id+"/edit", nil)
	assert.Contains(t, page, ">Update</button>")
	assert.Contains(t, page, `value="Lee"`)

	// leaving the form drops the edit without touching the API
	_, page = env.post(t, "/view/list", nil)
	assert.Contains(t, page, "<table>")
	_, page = env.post(t, "/view/form", nil)
	assert.Contains(t, page, ">Submit</button>")
	assert.Zero(t, env.calls.get(http.MethodPut))

	env.post(t, "/users/"+id+"/edit", nil)
	form := annForm()
	form.Set("lastName", "Moss")
	_, page = env.post(t, "/form", form)
	assert.Contains(t, page, "<td>Moss</td>")
	assert.NotContains(t, page, "<td>Lee</td>")
	assert.Equal(t, 1, env.calls.get(http.MethodPut))
	assert.Equal(t, 1, env.calls.get(http.MethodPost))

	_, page = env.post(t, "/users/"+id+"/delete", nil)
	assert.NotContains(t, page, "<td>Moss</td>")
	assert.Equal(t, 1, env.calls.get(http.MethodDelete))

	// unknown id: nothing sent
	env.post(t, "/users/unknown/delete", nil)
	assert.Equal(t, 1, env.calls.get(http.MethodDelete))
}

func TestWebFieldEvents(t *testing.T) {
	env := newWebEnv(t, web.Options{})
	env.get(t, "/")

	status, body := env.post(t, "/form/fields/phone", url.Values{"phone": {"55x"}, "event": {"input"}})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, `<span id="err-phone" class="error"></span>`, strings.TrimSpace(body))

	_, body = env.post(t, "/form/fields/phone", url.Values{"phone": {"55x"}, "event": {"blur"}})
	assert.Contains(t, body, "Only digits are allowed")

	_, body = env.post(t, "/form/fields/phone", url.Values{"phone": {"555"}, "event": {"input"}})
	assert.Equal(t, `<span id="err-phone" class="error"></span>`, strings.TrimSpace(body), "length is only checked on submit")

	status, _ = env.post(t, "/form/fields/nickname", url.Values{"event": {"blur"}})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.post(t, "/view/grid", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWebRemoteFailureKeepsForm(t *testing.T) {
	for _, surface := range []bool{false, true} {
		env := newWebEnv(t, web.Options{SurfaceErrors: surface})
		env.get(t, "/")
		env.api.Close()

		_, page := env.post(t, "/form", annForm())
		assert.Contains(t, page, `action="/form"`, "view stays on the form")
		assert.Contains(t, page, `value="Ann"`)

		if surface {
			assert.Contains(t, page, "create failed")
		} else {
			assert.NotContains(t, page, `role="alert"`)
		}
	}
}

func TestWebLogsRemoteFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	env := newWebEnvWithLogger(t, web.Options{}, logging.NewWithCore(core, "test", "Test"))
	env.get(t, "/")
	env.post(t, "/form", annForm())

	users, err := env.repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	env.api.Close()

	_, page := env.post(t, "/users/"+users[0].ID+"/delete", nil)
	assert.Contains(t, page, "<td>Ann</td>", "row stays after a failed delete")
	removeLogs := logs.FilterMessage("remove failed").All()
	require.Len(t, removeLogs, 1)
	assert.Equal(t, users[0].ID, removeLogs[0].ContextMap()["id"])

	env.post(t, "/view/form", nil)
	env.post(t, "/form", annForm())
	assert.Equal(t, 1, logs.FilterMessage("submit failed").Len())
}
