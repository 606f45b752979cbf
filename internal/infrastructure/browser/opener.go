// Package browser opens item links with the platform URL handler.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnsupportedLink is returned for links that are not absolute http(s) URLs.
var ErrUnsupportedLink = errors.New("unsupported link")

// Opener launches the system browser.
type Opener struct {
	goos string
	run  func(name string, args ...string) error
}

// NewOpener returns an opener for the running platform.
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, run: start}
}

// Open hands link to the platform opener without waiting for it to exit.
// Only absolute http and https links are accepted.
func (o *Opener) Open(link string) error {
	if err := validate(link); err != nil {
		return err
	}
	name, args := command(o.goos, link)
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", link, err)
	}
	return nil
}

func validate(link string) error {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrUnsupportedLink, link, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedLink, link)
	}
	if u.Host == "" {
		return fmt.Errorf("%w %q: missing host", ErrUnsupportedLink, link)
	}
	return nil
}

func command(goos, link string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}

func start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
