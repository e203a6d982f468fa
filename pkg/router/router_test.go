package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/pkg/errorx"
)

type echoRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "forbidden" {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return &echoResponse{Name: req.Name, Limit: req.Limit}, nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func Test_router_GET_bindsQuery(t *testing.T) {
	r := New(context.Background())
	GET(r, "/echo", echo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo?name=abc&limit=7", nil)
	r.mux.ServeHTTP(w, req)

	body := decodeBody(t, w)
	require.EqualValues(t, 0, body["code"])
	data := body["data"].(map[string]any)
	require.Equal(t, "abc", data["name"])
	require.EqualValues(t, 7, data["limit"])
}

func Test_router_POST_bindsBody(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"abc"}`))
	r.mux.ServeHTTP(w, req)

	body := decodeBody(t, w)
	require.EqualValues(t, 0, body["code"])
	require.Equal(t, "abc", body["data"].(map[string]any)["name"])
}

func Test_router_errorResponse(t *testing.T) {
	r := New(context.Background())
	GET(r, "/echo", echo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo?name=forbidden", nil)
	r.mux.ServeHTTP(w, req)

	body := decodeBody(t, w)
	require.EqualValues(t, errorx.PermissionDenied, body["code"])
	require.Equal(t, "Permission denied", body["error"])
}

func Test_router_invalidQueryValue(t *testing.T) {
	r := New(context.Background())
	GET(r, "/echo", echo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo?limit=abc", nil)
	r.mux.ServeHTTP(w, req)

	body := decodeBody(t, w)
	require.EqualValues(t, errorx.BadRequest, body["code"])
}

func Test_router_methodNotAllowed(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	r.mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func Test_router_middlewareStopsChain(t *testing.T) {
	r := New(context.Background())
	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	GET(branch, "/private", echo)
	GET(r, "/public", echo)

	w := httptest.NewRecorder()
	r.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	require.EqualValues(t, errorx.Unauthenticated, decodeBody(t, w)["code"])

	// The branch middleware must not leak into the parent router.
	w = httptest.NewRecorder()
	r.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public?name=abc", nil))
	require.EqualValues(t, 0, decodeBody(t, w)["code"])
}
