package usersapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermgmt/internal/domain/common"
	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/logging"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/users", time.Second, logging.NewNop())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestList(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[
			{"id":"a1","firstName":"Ann","lastName":"Lee","phone":"5551234567","email":"a@b.com"},
			{"id":7,"firstName":"Bo","lastName":"Kim","phone":"5550000000","email":"bo@k.io"}
		]`)
	})

	users, err := newTestClient(t, r).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, dom.User{ID: "a1", FirstName: "Ann", LastName: "Lee", Phone: "5551234567", Email: "a@b.com"}, users[0])
	assert.Equal(t, "7", users[1].ID)
}

func TestCreateSendsBodyWithoutID(t *testing.T) {
	var body map[string]any
	r := chi.NewRouter()
	r.Post("/users", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, `{"id":"new-1","firstName":"Ann","lastName":"Lee","phone":"5551234567","email":"a@b.com"}`)
	})

	in := dom.User{ID: "ignored", FirstName: "Ann", LastName: "Lee", Phone: "5551234567", Email: "a@b.com"}
	got, err := newTestClient(t, r).Create(context.Background(), in)
	require.NoError(t, err)

	assert.NotContains(t, body, "id")
	assert.Equal(t, map[string]any{"firstName": "Ann", "lastName": "Lee", "phone": "5551234567", "email": "a@b.com"}, body)
	assert.Equal(t, "new-1", got.ID)
}

func TestUpdate(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "u1" {
			writeJSON(w, http.StatusNotFound, `{"error":"user not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"u1","firstName":"Ann","lastName":"Moss","phone":"5551234567","email":"a@b.com"}`)
	})
	c := newTestClient(t, r)

	got, err := c.Update(context.Background(), "u1", dom.User{FirstName: "Ann", LastName: "Moss"})
	require.NoError(t, err)
	assert.Equal(t, "Moss", got.LastName)

	_, err = c.Update(context.Background(), "missing", dom.User{})
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))
	assert.False(t, common.IsNetwork(err))
}

func TestDelete(t *testing.T) {
	var deleted string
	r := chi.NewRouter()
	r.Delete("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = chi.URLParam(r, "id")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, newTestClient(t, r).Delete(context.Background(), "u9"))
	assert.Equal(t, "u9", deleted)
}

func TestFailuresAreNetworkErrors(t *testing.T) {
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error":"boom"}`)
	})
	c := newTestClient(t, failing)
	ctx := context.Background()

	_, err := c.List(ctx)
	assert.True(t, common.IsNetwork(err))

	_, err = c.Create(ctx, dom.User{})
	assert.True(t, common.IsNetwork(err))

	_, err = c.Update(ctx, "u1", dom.User{})
	assert.True(t, common.IsNetwork(err))

	err = c.Delete(ctx, "u1")
	require.True(t, common.IsNetwork(err))
	assert.Contains(t, err.Error(), "http 500")
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url+"/users", time.Second, logging.NewNop())
	require.NoError(t, err)

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.True(t, common.IsNetwork(err))
}

func TestUnacknowledgedAnswersAreNetworkErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"empty body", http.StatusOK, ""},
		{"whitespace body", http.StatusOK, "  \n"},
		{"created without body", http.StatusCreated, ""},
		{"object without id", http.StatusOK, `{}`},
		{"null", http.StatusOK, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			ctx := context.Background()

			users, err := c.List(ctx)
			assert.True(t, common.IsNetwork(err), "list: %v", err)
			assert.Nil(t, users)

			created, err := c.Create(ctx, dom.User{FirstName: "Ann"})
			assert.True(t, common.IsNetwork(err), "create: %v", err)
			assert.Equal(t, dom.User{}, created)

			updated, err := c.Update(ctx, "u1", dom.User{FirstName: "Ann"})
			assert.True(t, common.IsNetwork(err), "update: %v", err)
			assert.Equal(t, dom.User{}, updated)
		})
	}
}

func TestDeleteAcceptsEmptyBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	require.NoError(t, c.Delete(context.Background(), "u1"))
}
