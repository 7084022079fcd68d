package clients_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// fakeSession records calls made by InstagramClient
type fakeSession struct {
	loginErr     error
	publishErr   error
	loggedInAs   string
	publishedImg string
	imageExisted bool
	caption      string
	closed       bool
}

func (f *fakeSession) Login(_ context.Context, creds models.Credentials) error {
	f.loggedInAs = creds.Username
	return f.loginErr
}

func (f *fakeSession) Publish(_ context.Context, imagePath, caption string) error {
	f.publishedImg = imagePath
	_, err := os.Stat(imagePath)
	f.imageExisted = err == nil
	f.caption = caption
	return f.publishErr
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func factoryFor(s *fakeSession) clients.SessionFactory {
	return func(context.Context) (clients.BrowserSession, error) { return s, nil }
}

func failingFactory(context.Context) (clients.BrowserSession, error) {
	return nil, errors.New("chrome not found")
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG fake image"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

var testCreds = models.Credentials{Username: "sunny", Password: "hunter2"}

func TestInstagramClient_LoginSuccess(t *testing.T) {
	session := &fakeSession{}
	client := clients.NewInstagramClientWithSessions(factoryFor(session), nil, t.TempDir())

	result := client.Login(context.Background(), testCreds)

	assert.True(t, result.Success)
	assert.Equal(t, "sunny", result.Username)
	assert.Empty(t, result.Error)
	assert.Equal(t, "sunny", session.loggedInAs)
	assert.True(t, session.closed)
}

func TestInstagramClient_LoginRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "reason shown by instagram", err: &clients.LoginError{Reason: "Sorry, your password was incorrect."}, want: "Sorry, your password was incorrect."},
		{name: "no reason", err: &clients.LoginError{}, want: "Login failed."},
		{name: "ui failure", err: errors.New("element not found"), want: "Login failed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeSession{loginErr: tt.err}
			client := clients.NewInstagramClientWithSessions(factoryFor(session), nil, t.TempDir())

			result := client.Login(context.Background(), testCreds)

			assert.False(t, result.Success)
			assert.Equal(t, tt.want, result.Error)
			assert.True(t, session.closed)
		})
	}
}

func TestInstagramClient_LoginBrowserUnavailable(t *testing.T) {
	client := clients.NewInstagramClientWithSessions(failingFactory, nil, t.TempDir())

	result := client.Login(context.Background(), testCreds)

	assert.False(t, result.Success)
	assert.Equal(t, "Automation browser is unavailable.", result.Error)
}

func TestInstagramClient_PostSuccessRemovesImage(t *testing.T) {
	srv := imageServer(t)
	dir := t.TempDir()
	session := &fakeSession{}
	client := clients.NewInstagramClientWithSessions(factoryFor(session), srv.Client(), dir)

	result, err := client.Post(context.Background(), testCreds, models.PostPayload{
		ImageURL: srv.URL + "/images/sunset?size=large",
		Caption:  "Golden hour",
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, session.imageExisted)
	assert.Equal(t, ".png", filepath.Ext(session.publishedImg))
	assert.Equal(t, "Golden hour", session.caption)
	assert.True(t, session.closed)

	_, statErr := os.Stat(session.publishedImg)
	assert.True(t, os.IsNotExist(statErr), "temp image should be removed")
}

func TestInstagramClient_PostPublishFailure(t *testing.T) {
	srv := imageServer(t)
	session := &fakeSession{publishErr: errors.New("button ^Share$ not found")}
	client := clients.NewInstagramClientWithSessions(factoryFor(session), srv.Client(), t.TempDir())

	result, err := client.Post(context.Background(), testCreds, models.PostPayload{ImageURL: srv.URL + "/a.jpg", Caption: "c"})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Share")

	_, statErr := os.Stat(session.publishedImg)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstagramClient_PostLoginFailure(t *testing.T) {
	srv := imageServer(t)
	session := &fakeSession{loginErr: &clients.LoginError{Reason: "Wrong password"}}
	client := clients.NewInstagramClientWithSessions(factoryFor(session), srv.Client(), t.TempDir())

	result, err := client.Post(context.Background(), testCreds, models.PostPayload{ImageURL: srv.URL + "/a.jpg", Caption: "c"})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Wrong password", result.Error)
	assert.Empty(t, session.publishedImg)
}

func TestInstagramClient_PostImageUnavailable(t *testing.T) {
	srv := imageServer(t)
	dir := t.TempDir()
	session := &fakeSession{}
	client := clients.NewInstagramClientWithSessions(factoryFor(session), srv.Client(), dir)

	_, err := client.Post(context.Background(), testCreds, models.PostPayload{ImageURL: srv.URL + "/missing.jpg", Caption: "c"})

	assert.Error(t, err)
	assert.Empty(t, session.loggedInAs, "browser should not be used")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestInstagramClient_PostBrowserUnavailable(t *testing.T) {
	srv := imageServer(t)
	dir := t.TempDir()
	client := clients.NewInstagramClientWithSessions(failingFactory, srv.Client(), dir)

	result, err := client.Post(context.Background(), testCreds, models.PostPayload{ImageURL: srv.URL + "/a.jpg", Caption: "c"})

	require.NoError(t, err)
	assert.False(t, result.Success)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
