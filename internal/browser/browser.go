// Playwright lifecycle wrapper. A Session is exclusive to one scrape run:
// opened at run start, closed on every exit path.

package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
}

// Launch starts playwright, a chromium instance and a browser context with a
// desktop viewport. Callers must Close the session.
func Launch(headless bool) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
		UserAgent: playwright.String(userAgent),
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	return &Session{pw: pw, browser: b, context: ctx}, nil
}

func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return page, nil
}

// Close tears the whole stack down. Safe to call after a partial failure.
func (s *Session) Close() error {
	var firstErr error
	if s.context != nil {
		if err := s.context.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
