package output

import (
	"bytes"
	"strings"
	"sync"
)

// CaptureBuffer is a concurrency-safe writer that records printer output.
type CaptureBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCaptureBuffer creates an empty buffer.
func NewCaptureBuffer() *CaptureBuffer {
	return &CaptureBuffer{}
}

func (c *CaptureBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *CaptureBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Lines returns the captured output split on newlines, without the trailing
// empty line.
func (c *CaptureBuffer) Lines() []string {
	content := c.String()
	if content == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// Reset discards captured output.
func (c *CaptureBuffer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Reset()
}

// CaptureResults runs fn against a printer in mode writing to a buffer and
// returns what it wrote.
func CaptureResults(mode Mode, fn func(*Printer) error) (string, error) {
	buffer := NewCaptureBuffer()
	err := fn(NewPrinter(WithWriter(buffer), WithMode(mode), WithMarkdownStyle("notty")))
	return buffer.String(), err
}
