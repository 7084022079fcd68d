package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// LoginResult is the outcome of an Instagram login.
type LoginResult struct {
	Success  bool
	Username string
	Error    string
}

// PostResult is the outcome of an Instagram post.
type PostResult struct {
	Success bool
	Error   string
}

// Automator logs in to Instagram and publishes posts.
type Automator interface {
	Login(ctx context.Context, creds models.Credentials) LoginResult
	Post(ctx context.Context, creds models.Credentials, payload models.PostPayload) (PostResult, error)
}

// BrowserSession is a single isolated browser context.
type BrowserSession interface {
	Login(ctx context.Context, creds models.Credentials) error
	Publish(ctx context.Context, imagePath, caption string) error
	Close() error
}

// SessionFactory opens a fresh BrowserSession.
type SessionFactory func(ctx context.Context) (BrowserSession, error)

// LoginError means Instagram rejected the credentials.
// Reason carries the text Instagram displayed, when it could be read.
type LoginError struct {
	Reason string
}

func (e *LoginError) Error() string {
	if e.Reason == "" {
		return "login rejected"
	}
	return "login rejected: " + e.Reason
}

// InstagramClient drives the Instagram web UI. Every call gets its own
// browser session, so concurrent calls never share cookies.
type InstagramClient struct {
	newSession  SessionFactory
	httpClient  *http.Client
	tempDir     string
	maxImageLen int64
}

// NewInstagramClient creates a client that launches Chromium through go-rod.
func NewInstagramClient(cfg *config.AutomationSettings, tempDir string) *InstagramClient {
	return NewInstagramClientWithSessions(
		NewRodSessionFactory(cfg),
		&http.Client{Timeout: cfg.ImageFetchTimeout},
		tempDir,
	)
}

// NewInstagramClientWithSessions creates a client with a custom session factory.
func NewInstagramClientWithSessions(factory SessionFactory, httpClient *http.Client, tempDir string) *InstagramClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultImageFetchTimeout}
	}
	return &InstagramClient{
		newSession:  factory,
		httpClient:  httpClient,
		tempDir:     tempDir,
		maxImageLen: constants.MaxUploadSize,
	}
}

// Login signs in with the given credentials. Rejected credentials and
// browser failures are reported in the result, never as an error.
func (c *InstagramClient) Login(ctx context.Context, creds models.Credentials) LoginResult {
	session, err := c.newSession(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start automation browser")
		utils.LogAutomation(constants.LogEventLogin, creds.Username, false, err.Error())
		return LoginResult{Username: creds.Username, Error: constants.MsgAutomationUnavailable}
	}
	defer closeSession(session)

	if err := session.Login(ctx, creds); err != nil {
		reason := loginFailureReason(err)
		utils.LogAutomation(constants.LogEventLogin, creds.Username, false, err.Error())
		return LoginResult{Username: creds.Username, Error: reason}
	}

	utils.LogAutomation(constants.LogEventLogin, creds.Username, true, "")
	return LoginResult{Success: true, Username: creds.Username}
}

// Post downloads the image, signs in within a fresh session and publishes
// the image with the caption. Automation failures are reported in the result;
// the error is reserved for failures before the browser is involved, such as
// an image that cannot be fetched.
func (c *InstagramClient) Post(ctx context.Context, creds models.Credentials, payload models.PostPayload) (PostResult, error) {
	imagePath, err := c.downloadImage(ctx, payload.ImageURL)
	if err != nil {
		utils.LogAutomation(constants.LogEventPost, creds.Username, false, err.Error())
		return PostResult{}, fmt.Errorf("failed to fetch post image: %w", err)
	}
	defer func() {
		if err := os.Remove(imagePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", imagePath).Msg("Failed to remove post image")
		}
	}()

	session, err := c.newSession(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to start automation browser")
		utils.LogAutomation(constants.LogEventPost, creds.Username, false, err.Error())
		return PostResult{Error: constants.MsgAutomationUnavailable}, nil
	}
	defer closeSession(session)

	if err := session.Login(ctx, creds); err != nil {
		utils.LogAutomation(constants.LogEventPost, creds.Username, false, err.Error())
		return PostResult{Error: loginFailureReason(err)}, nil
	}

	if err := session.Publish(ctx, imagePath, payload.Caption); err != nil {
		utils.LogAutomation(constants.LogEventPost, creds.Username, false, err.Error())
		return PostResult{Error: err.Error()}, nil
	}

	utils.LogAutomation(constants.LogEventPost, creds.Username, true, "")
	return PostResult{Success: true}, nil
}

// downloadImage stores the image at imageURL in a temp file and returns its path.
func (c *InstagramClient) downloadImage(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if c.tempDir != "" {
		if err := os.MkdirAll(c.tempDir, 0o755); err != nil {
			return "", err
		}
	}

	f, err := os.CreateTemp(c.tempDir, "post-*"+imageExtension(imageURL, resp.Header.Get(constants.HeaderContentType)))
	if err != nil {
		return "", err
	}

	n, copyErr := io.Copy(f, io.LimitReader(resp.Body, c.maxImageLen+1))
	closeErr := f.Close()
	if copyErr == nil && n > c.maxImageLen {
		copyErr = fmt.Errorf("image exceeds %d bytes", c.maxImageLen)
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(f.Name())
		return "", copyErr
	}

	return f.Name(), nil
}

// imageExtension picks the file extension Instagram's file picker expects.
func imageExtension(imageURL, contentType string) string {
	if i := strings.IndexAny(imageURL, "?#"); i >= 0 {
		imageURL = imageURL[:i]
	}
	switch ext := strings.ToLower(path.Ext(imageURL)); ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "image/png":
			return ".png"
		case "image/webp":
			return ".webp"
		}
	}
	return ".jpg"
}

func loginFailureReason(err error) string {
	var loginErr *LoginError
	if errors.As(err, &loginErr) && loginErr.Reason != "" {
		return loginErr.Reason
	}
	return constants.MsgLoginFailedFallback
}

func closeSession(s BrowserSession) {
	done := make(chan error, 1)
	go func() { done <- s.Close() }()

	select {
	case err := <-done:
		if err != nil {
			log.Warn().Err(err).Msg("Failed to close automation browser")
		}
	case <-time.After(10 * time.Second):
		log.Warn().Msg("Timed out closing automation browser")
	}
}
