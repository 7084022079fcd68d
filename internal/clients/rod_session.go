package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// InstagramSelectors locate the elements of the Instagram web UI.
// Button texts are matched as JavaScript regular expressions.
type InstagramSelectors struct {
	UsernameInput string
	PasswordInput string
	SubmitButton  string
	LoginError    string
	LoggedIn      string
	NewPost       string
	FileInput     string
	DialogButton  string
	NextText      string
	ShareText     string
	CaptionInput  string
	SharedNotice  string
	SharedText    string
}

// DefaultInstagramSelectors match the Instagram web UI.
func DefaultInstagramSelectors() InstagramSelectors {
	return InstagramSelectors{
		UsernameInput: `input[name="username"]`,
		PasswordInput: `input[name="password"]`,
		SubmitButton:  `button[type="submit"]`,
		LoginError:    `#slfErrorAlert, div[role="alert"]`,
		LoggedIn:      `svg[aria-label="Home"]`,
		NewPost:       `svg[aria-label="New post"]`,
		FileInput:     `input[type="file"]`,
		DialogButton:  `div[role="dialog"] div[role="button"], div[role="dialog"] button`,
		NextText:      `^Next$`,
		ShareText:     `^Share$`,
		CaptionInput:  `div[role="dialog"] div[contenteditable="true"], div[role="dialog"] textarea`,
		SharedNotice:  `div[role="dialog"] span, div[role="dialog"] h3`,
		SharedText:    `(?i)post has been shared`,
	}
}

// NewRodSessionFactory returns a factory that launches a Chromium per session.
func NewRodSessionFactory(cfg *config.AutomationSettings) SessionFactory {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultInstagramBaseURL
	}
	navTimeout := cfg.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = constants.DefaultNavigationTimeout
	}

	return func(ctx context.Context) (BrowserSession, error) {
		l := launcher.New().Headless(!cfg.ShowBrowser)
		if cfg.BrowserBin != "" {
			l = l.Bin(cfg.BrowserBin)
		}

		controlURL, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}

		browser := rod.New().ControlURL(controlURL).Context(ctx)
		if err := browser.Connect(); err != nil {
			l.Kill()
			return nil, fmt.Errorf("connect to chrome: %w", err)
		}

		incognito, err := browser.Incognito()
		if err != nil {
			_ = browser.Close()
			l.Kill()
			return nil, fmt.Errorf("incognito context: %w", err)
		}

		return &rodSession{
			launcher:   l,
			browser:    browser,
			incognito:  incognito,
			baseURL:    baseURL,
			navTimeout: navTimeout,
			sel:        DefaultInstagramSelectors(),
		}, nil
	}
}

// rodSession is a BrowserSession backed by an incognito Chromium context.
type rodSession struct {
	launcher   *launcher.Launcher
	browser    *rod.Browser
	incognito  *rod.Browser
	page       *rod.Page
	baseURL    string
	navTimeout time.Duration
	sel        InstagramSelectors
}

func (s *rodSession) Login(ctx context.Context, creds models.Credentials) error {
	page, err := s.incognito.Page(proto.TargetCreateTarget{URL: s.baseURL + "/accounts/login/"})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	s.page = page

	p := page.Context(ctx).Timeout(s.navTimeout)
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("load login page: %w", err)
	}

	if err := s.input(p, s.sel.UsernameInput, creds.Username); err != nil {
		return err
	}
	if err := s.input(p, s.sel.PasswordInput, creds.Password); err != nil {
		return err
	}
	if err := s.click(p, s.sel.SubmitButton); err != nil {
		return err
	}

	var loginErr error
	race := p.Race()
	race.Element(s.sel.LoggedIn)
	race.Element(s.sel.LoginError).Handle(func(e *rod.Element) error {
		text, _ := e.Text()
		loginErr = &LoginError{Reason: strings.TrimSpace(text)}
		return nil
	})
	_, err = race.Do()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &LoginError{}
		}
		return fmt.Errorf("wait for login: %w", err)
	}
	if loginErr != nil {
		return loginErr
	}

	log.Debug().Str("username", creds.Username).Msg("Instagram session signed in")
	return nil
}

func (s *rodSession) Publish(ctx context.Context, imagePath, caption string) error {
	if s.page == nil {
		return errors.New("publish before login")
	}
	p := s.page.Context(ctx).Timeout(s.navTimeout)

	if err := s.click(p, s.sel.NewPost); err != nil {
		return err
	}

	fileInput, err := p.Element(s.sel.FileInput)
	if err != nil {
		return fmt.Errorf("file input not found: %w", err)
	}
	if err := fileInput.SetFiles([]string{imagePath}); err != nil {
		return fmt.Errorf("attach image: %w", err)
	}

	// Crop and filter steps each need a Next.
	for i := 0; i < 2; i++ {
		if err := s.clickText(p, s.sel.DialogButton, s.sel.NextText); err != nil {
			return err
		}
	}

	if err := s.input(p, s.sel.CaptionInput, caption); err != nil {
		return err
	}
	if err := s.clickText(p, s.sel.DialogButton, s.sel.ShareText); err != nil {
		return err
	}

	if _, err := p.ElementR(s.sel.SharedNotice, s.sel.SharedText); err != nil {
		return fmt.Errorf("post was not confirmed: %w", err)
	}
	return nil
}

func (s *rodSession) Close() error {
	var errs []error
	if s.incognito != nil {
		if err := s.incognito.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.launcher != nil {
		s.launcher.Kill()
	}
	return errors.Join(errs...)
}

func (s *rodSession) input(p *rod.Page, selector, text string) error {
	el, err := p.Element(selector)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", selector, err)
	}
	if err := el.Input(text); err != nil {
		return fmt.Errorf("type into %s: %w", selector, err)
	}
	return nil
}

func (s *rodSession) click(p *rod.Page, selector string) error {
	el, err := p.Element(selector)
	if err != nil {
		return fmt.Errorf("element %s not found: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (s *rodSession) clickText(p *rod.Page, selector, text string) error {
	el, err := p.ElementR(selector, text)
	if err != nil {
		return fmt.Errorf("button %s not found: %w", text, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", text, err)
	}
	return nil
}
