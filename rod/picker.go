package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/lessonfetch/lessonfetch"
	"github.com/lessonfetch/lessonfetch/goquery"
	"golang.org/x/net/html"
)

const (
	// pickPollInterval is how often the overlay is polled for new clicks.
	pickPollInterval = 250 * time.Millisecond

	// maxPollFailures is how many consecutive poll errors are tolerated
	// before the browser window is considered closed. Navigations destroy
	// the page's JavaScript context for a moment, so a single failure is
	// not conclusive.
	maxPollFailures = 12
)

// Ensure Picker implements lessonfetch.Picker at compile time.
var _ lessonfetch.Picker = (*Picker)(nil)

// Picker opens pages in a visible Chrome window and turns the operator's
// clicks into CSS selectors. An overlay panel injected into the page shows
// the selectors chosen so far and every element they match is outlined;
// clicking a selected element again (or its list entry) removes it, and a
// save button ends the session.
type Picker struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	cfg      lessonfetch.ExtractConfig
	closed   atomic.Bool
}

// NewPicker launches a visible Chrome window for interactive selector
// picking. Close must be called when the Picker is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewPicker(cfg lessonfetch.ExtractConfig) (*Picker, error) {
	l := launcher.New().Leakless(true).Headless(false)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Picker{browser: browser, launcher: l, cfg: cfg}, nil
}

// Pick opens url, seeds the overlay with any previously chosen selectors
// and collects the operator's picks until the save button is clicked.
// Closing the browser window before saving aborts the session.
func (p *Picker) Pick(ctx context.Context, url string, initial []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.closed.Load() {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "picker is closed")
	}

	page, err := p.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	selectors := append([]string(nil), initial...)
	if err := installOverlay(page, selectors); err != nil {
		return nil, err
	}

	ticker := time.NewTicker(pickPollInterval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		state, err := pollOverlay(page)
		if err != nil {
			failures++
			if failures >= maxPollFailures {
				return nil, lessonfetch.Errorf(lessonfetch.ECONFLICT, "picker window closed before selectors were saved")
			}
			continue
		}
		failures = 0

		if !state.Ready {
			// The operator navigated; the overlay died with the old page.
			if err := installOverlay(page, selectors); err != nil {
				return nil, err
			}
			continue
		}

		changed := false
		for _, ev := range state.Events {
			switch ev.Type {
			case "pick":
				sel, err := p.selectorForPath(page, ev.Path)
				if err != nil || sel == "" {
					continue
				}
				selectors = toggleSelector(selectors, sel)
				changed = true
			case "remove":
				if ev.Index >= 0 && ev.Index < len(selectors) {
					selectors = append(selectors[:ev.Index], selectors[ev.Index+1:]...)
					changed = true
				}
			}
		}

		if changed {
			if err := renderSelectorList(page, selectors); err != nil {
				return nil, lessonfetch.Errorf(lessonfetch.ECONFLICT, "picker window closed before selectors were saved")
			}
		}
		if state.Done {
			return selectors, nil
		}
	}
}

// Close releases browser resources. Close is safe to call multiple times.
func (p *Picker) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.browser.Close()
	p.launcher.Kill()
	return err
}

// selectorForPath resolves a clicked element's index path against a fresh
// snapshot of the page and synthesizes a selector for it. The path walks
// element children from the document root, so it survives the round trip
// through serialization.
func (p *Picker) selectorForPath(page *rod.Page, path []int) (string, error) {
	rawHTML, err := page.HTML()
	if err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}
	node := elementByPath(doc, path)
	if node == nil {
		return "", lessonfetch.Errorf(lessonfetch.ENOMATCH, "picked element not found in page snapshot")
	}
	return goquery.SynthesizeSelector(node, p.cfg), nil
}

// elementByPath walks child-element indices from the document's root
// element down to a node, or nil when the path leads nowhere.
func elementByPath(doc *html.Node, path []int) *html.Node {
	node := documentElement(doc)
	for _, idx := range path {
		node = nthElementChild(node, idx)
		if node == nil {
			return nil
		}
	}
	return node
}

// documentElement returns the root <html> element of a parsed document.
func documentElement(doc *html.Node) *html.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

// nthElementChild returns the idx-th element child of n, counting from 0.
func nthElementChild(n *html.Node, idx int) *html.Node {
	if n == nil {
		return nil
	}
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if i == idx {
			return c
		}
		i++
	}
	return nil
}

// toggleSelector adds sel to the list, or removes it when already present,
// so a second click on a selected element deselects it.
func toggleSelector(selectors []string, sel string) []string {
	for i, s := range selectors {
		if s == sel {
			return append(selectors[:i], selectors[i+1:]...)
		}
	}
	return append(selectors, sel)
}

// overlayState is the picker-side view of the injected overlay: clicks
// recorded since the last poll and whether the save button was pressed.
type overlayState struct {
	Events []overlayEvent `json:"events"`
	Done   bool           `json:"done"`
	Ready  bool           `json:"ready"`
}

// overlayEvent is one operator interaction. Type "pick" carries the index
// path of the clicked element; type "remove" carries the list position of
// the selector to drop.
type overlayEvent struct {
	Type  string `json:"type"`
	Path  []int  `json:"path"`
	Index int    `json:"index"`
}

// installOverlay injects the click-capture panel and renders the current
// selector list into it. Safe to call again after a navigation.
func installOverlay(page *rod.Page, selectors []string) error {
	if _, err := page.Eval(overlayJS); err != nil {
		return err
	}
	return renderSelectorList(page, selectors)
}

// renderSelectorList pushes the authoritative selector list into the panel.
func renderSelectorList(page *rod.Page, selectors []string) error {
	_, err := page.Eval(`(list) => window.__lfRender && window.__lfRender(list)`, selectors)
	return err
}

// pollOverlay drains the overlay's event queue.
func pollOverlay(page *rod.Page) (*overlayState, error) {
	res, err := page.Eval(pollJS)
	if err != nil {
		return nil, err
	}
	var state overlayState
	if err := json.Unmarshal([]byte(res.Value.Str()), &state); err != nil {
		return nil, fmt.Errorf("decoding overlay state: %w", err)
	}
	return &state, nil
}

// pollJS reports queued events without assuming the overlay is installed,
// so it is safe to run right after a navigation.
const pollJS = `() => {
	const events = window.__lfEvents || [];
	window.__lfEvents = [];
	return JSON.stringify({
		events: events,
		done: !!window.__lfDone,
		ready: !!window.__lfReady,
	});
}`

// overlayJS installs the picker panel and a capture-phase click handler.
// Clicks outside the panel are swallowed (so links do not navigate away)
// and recorded as index paths from the document root; clicks on listed
// selectors queue removals. The handler runs in the page, the selector
// synthesis runs on the Go side.
const overlayJS = `() => {
	if (window.__lfReady) {
		return;
	}
	window.__lfReady = true;
	window.__lfEvents = [];
	window.__lfDone = false;

	// Data attributes, not classes: selector synthesis reads the page's
	// class attributes and must not see picker leftovers.
	const style = document.createElement('style');
	style.textContent = '[data-lf-mark] { outline: 2px solid #22c55e !important; }\n' +
		'[data-lf-hover] { outline: 2px dashed #f59e0b !important; }';
	document.documentElement.appendChild(style);

	const panel = document.createElement('div');
	panel.id = '__lf_panel';
	panel.style.cssText = 'position:fixed;top:12px;right:12px;z-index:2147483647;' +
		'background:#1e293b;color:#e2e8f0;font:13px/1.5 sans-serif;padding:12px;' +
		'border-radius:8px;max-width:320px;box-shadow:0 4px 24px rgba(0,0,0,0.4)';
	panel.innerHTML = '<b>Content picker</b>' +
		'<div style="margin:6px 0">Click the elements that hold the lesson text. ' +
		'Click again, or click a listed selector, to remove it.</div>' +
		'<ol id="__lf_list" style="margin:6px 0;padding-left:18px"></ol>' +
		'<button id="__lf_done" style="width:100%;padding:6px;border:0;border-radius:4px;' +
		'background:#22c55e;color:#052e16;font-weight:bold;cursor:pointer">Save selectors</button>';
	document.documentElement.appendChild(panel);

	document.getElementById('__lf_done').addEventListener('click', (e) => {
		e.preventDefault();
		e.stopPropagation();
		window.__lfDone = true;
	});

	window.__lfRender = (selectors) => {
		const list = document.getElementById('__lf_list');
		if (!list) {
			return;
		}
		list.textContent = '';
		selectors.forEach((sel, i) => {
			const item = document.createElement('li');
			item.textContent = sel;
			item.title = 'Click to remove';
			item.style.cssText = 'cursor:pointer;word-break:break-all';
			item.addEventListener('click', (e) => {
				e.preventDefault();
				e.stopPropagation();
				window.__lfEvents.push({type: 'remove', index: i});
			});
			list.appendChild(item);
		});
		document.querySelectorAll('[data-lf-mark]').forEach((el) => {
			el.removeAttribute('data-lf-mark');
		});
		selectors.forEach((sel) => {
			let matches;
			try {
				matches = document.querySelectorAll(sel);
			} catch (err) {
				return;
			}
			matches.forEach((el) => el.setAttribute('data-lf-mark', ''));
		});
	};

	const indexPath = (el) => {
		const path = [];
		while (el && el !== document.documentElement) {
			let i = 0;
			let sib = el;
			while ((sib = sib.previousElementSibling) !== null) {
				i++;
			}
			path.unshift(i);
			el = el.parentElement;
		}
		return path;
	};

	let hovered = null;
	document.addEventListener('mouseover', (e) => {
		if (hovered) {
			hovered.removeAttribute('data-lf-hover');
			hovered = null;
		}
		if (panel.contains(e.target)) {
			return;
		}
		hovered = e.target;
		hovered.setAttribute('data-lf-hover', '');
	}, true);

	document.addEventListener('click', (e) => {
		if (panel.contains(e.target)) {
			return;
		}
		e.preventDefault();
		e.stopPropagation();
		window.__lfEvents.push({type: 'pick', path: indexPath(e.target)});
	}, true);
}`
