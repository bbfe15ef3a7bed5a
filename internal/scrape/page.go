package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/claimsift/claimsift/internal/browser"
)

// opTimeout bounds the quick DOM queries; navigation and content waits
// carry their own timeouts.
const opTimeout = 10 * time.Second

// page abstracts the browser operations the retriever needs, so the state
// machine and the extraction strategies can be exercised against a fake.
type page interface {
	Navigate(url string, timeout time.Duration) error
	Location() (string, error)
	HTML() (string, error)
	// Click clicks the first element matching the selector, or errors if
	// nothing matches.
	Click(selector string) error
	WaitVisible(selector string, timeout time.Duration) error
	// Text returns the inner text of the first match, or "" if none.
	Text(selector string) (string, error)
	// Attributes returns the named attribute of every match, in document
	// order, skipping elements without it.
	Attributes(selector, attr string) ([]string, error)
	Exists(selector string) (bool, error)
	Close() error
}

// pageFactory opens a browser page bound to a persistent profile directory.
type pageFactory func(ctx context.Context, profileDir string) (page, error)

// chromePage drives a headful Chrome via chromedp.
type chromePage struct {
	browserCtx context.Context
	cancels    []context.CancelFunc // invoked in order on Close
}

// newChromePage launches Chrome against the given profile so cookies from a
// previous login are reused, and the window is visible for interactive
// logins.
func newChromePage(ctx context.Context, profileDir string) (page, error) {
	opts := browser.Options(false, profileDir)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so launch failures surface here instead of on
	// the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	return &chromePage{
		browserCtx: browserCtx,
		cancels:    []context.CancelFunc{browserCancel, allocCancel},
	}, nil
}

func (p *chromePage) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx := p.browserCtx
	cancel := func() {}
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (p *chromePage) Navigate(url string, timeout time.Duration) error {
	return p.run(timeout, chromedp.Navigate(url))
}

func (p *chromePage) Location() (string, error) {
	var loc string
	err := p.run(opTimeout, chromedp.Location(&loc))
	return loc, err
}

func (p *chromePage) HTML() (string, error) {
	var html string
	err := p.run(opTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (p *chromePage) Click(selector string) error {
	nodes, err := p.nodes(selector)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("no element matches %q", selector)
	}
	return p.run(opTimeout, chromedp.MouseClickNode(nodes[0]))
}

func (p *chromePage) WaitVisible(selector string, timeout time.Duration) error {
	return p.run(timeout, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (p *chromePage) Text(selector string) (string, error) {
	nodes, err := p.nodes(selector)
	if err != nil || len(nodes) == 0 {
		return "", err
	}
	var text string
	err = p.run(opTimeout, chromedp.Text(selector, &text, chromedp.ByQuery))
	return text, err
}

func (p *chromePage) Attributes(selector, attr string) ([]string, error) {
	nodes, err := p.nodes(selector)
	if err != nil {
		return nil, err
	}
	var values []string
	for _, n := range nodes {
		if v := n.AttributeValue(attr); v != "" {
			values = append(values, v)
		}
	}
	return values, nil
}

func (p *chromePage) Exists(selector string) (bool, error) {
	nodes, err := p.nodes(selector)
	return len(nodes) > 0, err
}

func (p *chromePage) nodes(selector string) ([]*cdp.Node, error) {
	var nodes []*cdp.Node
	err := p.run(opTimeout, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	return nodes, err
}

func (p *chromePage) Close() error {
	for _, cancel := range p.cancels {
		cancel()
	}
	return nil
}
