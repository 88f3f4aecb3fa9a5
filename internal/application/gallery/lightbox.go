// Package gallery holds the image viewer cursor used by the property detail
// gallery endpoint.
package gallery

import "errors"

// Keyboard triggers recognized while the lightbox is open.
const (
	KeyEscape     = "Escape"
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
)

var ErrIndexOutOfRange = errors.New("lightbox index out of range")

// Lightbox is a cursor over an image list of fixed size. The cursor is either
// absent (closed) or an index in [0, count). Next and Prev wrap cyclically
// and never error on a boundary; while closed they are no-ops. The component
// tracks a scroll lock that follows the open state, mirroring the page
// background freeze.
type Lightbox struct {
	count        int
	index        int
	open         bool
	scrollLocked bool
}

// New returns a closed lightbox over count images.
func New(count int) *Lightbox {
	if count < 0 {
		count = 0
	}
	return &Lightbox{count: count}
}

// Open moves the cursor to i and locks background scroll.
func (l *Lightbox) Open(i int) error {
	if i < 0 || i >= l.count {
		return ErrIndexOutOfRange
	}
	l.index = i
	l.open = true
	l.scrollLocked = true
	return nil
}

// Close returns to the absent state and restores background scroll.
func (l *Lightbox) Close() {
	l.open = false
	l.scrollLocked = false
}

// Next advances the cursor, wrapping past the last image.
func (l *Lightbox) Next() {
	if !l.open || l.count == 0 {
		return
	}
	l.index = (l.index + 1) % l.count
}

// Prev moves the cursor back, wrapping past the first image.
func (l *Lightbox) Prev() {
	if !l.open || l.count == 0 {
		return
	}
	l.index = (l.index - 1 + l.count) % l.count
}

// Index returns the cursor and whether the lightbox is open.
func (l *Lightbox) Index() (int, bool) {
	return l.index, l.open
}

// ScrollLocked reports whether background scroll is frozen.
func (l *Lightbox) ScrollLocked() bool {
	return l.scrollLocked
}

// HandleKey applies a keyboard trigger. Keys are inert while closed; unknown
// keys are ignored.
func (l *Lightbox) HandleKey(key string) {
	if !l.open {
		return
	}
	switch key {
	case KeyEscape:
		l.Close()
	case KeyArrowRight:
		l.Next()
	case KeyArrowLeft:
		l.Prev()
	}
}
