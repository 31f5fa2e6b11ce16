package repository

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadinstitute/methods-repo/internal/auth"
	"github.com/broadinstitute/methods-repo/internal/config"
	"github.com/broadinstitute/methods-repo/internal/repository/repotest"
)

func newTestClient(baseURL string, endpoint config.Endpoint, creds auth.Resolver) *Client {
	cfg := config.Config{BaseURL: baseURL, Endpoint: endpoint}
	return New(cfg, creds, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleEntity() Entity {
	return Entity{
		Namespace:     "broad",
		Name:          "hello",
		Synopsis:      "Say hello",
		Documentation: "",
		EntityType:    config.Task,
		Payload:       "task hello {}",
	}
}

func TestPush_Created(t *testing.T) {
	srv := repotest.NewServer(t)
	c := newTestClient(srv.BaseURL(), config.Methods, auth.Static("tok"))

	body, err := c.Push(context.Background(), sampleEntity())
	require.NoError(t, err)
	assert.Contains(t, body, `"snapshotId":1`)

	req := srv.Last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, repotest.APIPrefix+"/methods", req.Path)
	assert.Equal(t, "application/json", req.ContentType)
	assert.Equal(t, "Bearer tok", req.Auth)

	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(req.Body), &sent))
	assert.Equal(t, map[string]string{
		"namespace":     "broad",
		"name":          "hello",
		"synopsis":      "Say hello",
		"documentation": "",
		"entityType":    "Task",
		"payload":       "task hello {}",
	}, sent)
}

func TestPush_UnexpectedStatus(t *testing.T) {
	srv := repotest.NewServer(t)
	srv.Respond(http.StatusConflict, `{"message":"already exists"}`)
	c := newTestClient(srv.BaseURL(), config.Configurations, auth.Static("tok"))

	_, err := c.Push(context.Background(), sampleEntity())
	require.Error(t, err)
	assert.True(t, IsStatus(err))
	assert.Equal(t, errors.CodeConflict, errors.GetCode(err))

	msg := err.Error()
	assert.Contains(t, msg, "Request URL: /configurations")
	assert.Contains(t, msg, `"payload":"task hello {}"`)
	assert.Contains(t, msg, "409 Conflict")
	assert.Contains(t, msg, "already exists")
}

func TestPush_ValidationBeforeRequest(t *testing.T) {
	srv := repotest.NewServer(t)
	c := newTestClient(srv.BaseURL(), config.Methods, auth.Static("tok"))

	e := sampleEntity()
	e.Synopsis = strings.Repeat("s", 81)
	_, err := c.Push(context.Background(), e)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Empty(t, srv.Requests(), "no request should be sent for an invalid entity")
}

func TestPull(t *testing.T) {
	srv := repotest.NewServer(t)
	c := newTestClient(srv.BaseURL(), config.Methods, auth.Static("tok"))

	body, err := c.Pull(context.Background(), "NAMESPACE", "NAME", 3, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"namespace":"NAMESPACE","name":"NAME","snapshotId":3}`, body)

	req := srv.Last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, repotest.APIPrefix+"/methods/NAMESPACE/NAME/3", req.Path)
	assert.Empty(t, req.RawQuery)
	assert.Equal(t, "application/json", req.ContentType, "content type is sent on bodyless requests too")

	body, err = c.Pull(context.Background(), "NAMESPACE", "NAME", 3, true)
	require.NoError(t, err)
	assert.Equal(t, "task hello {}", body)
	assert.Equal(t, "onlyPayload=true", srv.Last(t).RawQuery)
}

func TestPullPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/methods/NAMESPACE/NAME/3?onlyPayload=true", PullPath(config.Methods, "NAMESPACE", "NAME", 3, true))
	assert.Equal(t, "/configurations/NAMESPACE/NAME/3", PullPath(config.Configurations, "NAMESPACE", "NAME", 3, false))
}

func TestPull_NotFound(t *testing.T) {
	srv := repotest.NewServer(t)
	srv.Respond(http.StatusNotFound, "no such snapshot")
	c := newTestClient(srv.BaseURL(), config.Methods, auth.Static("tok"))

	_, err := c.Pull(context.Background(), "ns", "n", 9, false)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Request URL: /methods/ns/n/9")
}

func TestList(t *testing.T) {
	srv := repotest.NewServer(t)
	c := newTestClient(srv.BaseURL(), config.Configurations, auth.Static("tok"))

	body, err := c.List(context.Background(), Filter{IncludedFields: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "[]", body)

	req := srv.Last(t)
	assert.Equal(t, repotest.APIPrefix+"/configurations", req.Path)
	assert.Equal(t, "includedField=a&includedField=b", req.RawQuery)

	_, err = c.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, srv.Last(t).RawQuery)
}

func TestRedact(t *testing.T) {
	srv := repotest.NewServer(t)
	c := newTestClient(srv.BaseURL(), config.Methods, auth.Static("tok"))

	_, err := c.Redact(context.Background(), "NAMESPACE", "NAME", 3)
	require.NoError(t, err)

	req := srv.Last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, repotest.APIPrefix+"/methods/NAMESPACE/NAME/3", req.Path)
}

func TestRedact_RequiresOK(t *testing.T) {
	srv := repotest.NewServer(t)
	srv.Respond(http.StatusNoContent, "")
	c := newTestClient(srv.BaseURL(), config.Methods, auth.Static("tok"))

	_, err := c.Redact(context.Background(), "NAMESPACE", "NAME", 3)
	require.Error(t, err)
	assert.Equal(t, CodeUnexpectedStatus, errors.GetCode(err))
}

func TestExecute_CredentialsUnavailable(t *testing.T) {
	srv := repotest.NewServer(t)
	creds := auth.ResolverFunc(func(context.Context) (auth.Decorator, error) {
		return nil, auth.Unavailable(nil)
	})
	c := newTestClient(srv.BaseURL(), config.Methods, creds)

	_, err := c.Pull(context.Background(), "ns", "n", 1, false)
	require.Error(t, err)
	assert.True(t, auth.IsUnavailable(err))
	assert.Empty(t, srv.Requests())
}

func TestExecute_ResolvesCredentialsPerRequest(t *testing.T) {
	srv := repotest.NewServer(t)
	calls := 0
	creds := auth.ResolverFunc(func(ctx context.Context) (auth.Decorator, error) {
		calls++
		return auth.Static("tok").Resolve(ctx)
	})
	c := newTestClient(srv.BaseURL(), config.Methods, creds)

	for i := 0; i < 2; i++ {
		_, err := c.List(context.Background(), Filter{})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestExecute_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := newTestClient(baseURL, config.Methods, auth.Static("tok"))
	_, err := c.Redact(context.Background(), "ns", "n", 1)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNetwork, errors.GetCode(err))
	assert.Contains(t, err.Error(), baseURL+"/methods/ns/n/1")
	assert.Contains(t, err.Error(), "DELETE")
}

func TestExecute_URLIsConcatenatedVerbatim(t *testing.T) {
	srv := repotest.NewServer(t)
	c := newTestClient(srv.BaseURL()+"/", config.Methods, auth.Static("tok"))

	_, err := c.List(context.Background(), Filter{})
	require.Error(t, err, "the doubled slash is not normalised away")
	assert.Equal(t, repotest.APIPrefix+"//methods", srv.Last(t).Path)
}

func TestExecute_InsecureTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "secure enough")
	}))
	defer srv.Close()

	strict := newTestClient(srv.URL, config.Methods, auth.Static("tok"))
	_, err := strict.List(context.Background(), Filter{})
	require.Error(t, err, "self-signed certificate must be rejected by default")
	assert.Equal(t, errors.CodeNetwork, errors.GetCode(err))

	cfg := config.Config{BaseURL: srv.URL, Endpoint: config.Methods, Insecure: true}
	insecure := New(cfg, auth.Static("tok"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	body, err := insecure.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, "secure enough", body)
}

func TestCodeForStatus(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   errors.ErrorCode
	}{
		{http.StatusNotFound, errors.CodeNotFound},
		{http.StatusConflict, errors.CodeConflict},
		{http.StatusBadRequest, errors.CodeInvalidInput},
		{http.StatusUnprocessableEntity, errors.CodeInvalidInput},
		{http.StatusUnauthorized, errors.CodeUnauthorized},
		{http.StatusForbidden, errors.CodeForbidden},
		{http.StatusInternalServerError, errors.CodeUnavailable},
		{http.StatusBadGateway, errors.CodeUnavailable},
		{http.StatusOK, CodeUnexpectedStatus},
		{http.StatusNoContent, CodeUnexpectedStatus},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, codeForStatus(tc.status), "codeForStatus(%d)", tc.status)
	}
}
