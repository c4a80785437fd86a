package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Pace waits for a random duration between min and max milliseconds, keeping
// request cadence irregular while lazy-loaded content renders.
func Pace(min, max int) {
	duration := rand.Intn(max-min+1) + min
	time.Sleep(time.Duration(duration) * time.Millisecond)
}

// ScrollBy scrolls the page down by the given number of pixels.
func ScrollBy(page playwright.Page, pixels int) error {
	_, err := page.Evaluate("px => window.scrollBy(0, px)", pixels)
	return err
}

// SmoothScroll scrolls down in viewport-sized steps so infinite-scroll pages
// get a chance to load each band of content.
func SmoothScroll(page playwright.Page) error {
	for i := 0; i < 5; i++ {
		if _, err := page.Evaluate("window.scrollBy(0, window.innerHeight / 2)"); err != nil {
			return err
		}
		Pace(300, 800)
	}
	return nil
}
