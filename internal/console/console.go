package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Sink is the display shared by all invocations. Writes are line-atomic.
type Sink interface {
	Println(line string)
	Printf(format string, args ...any)
	// Block writes lines without letting other writers interleave.
	Block(lines []string)
	// Clear pushes previous output out of view.
	Clear()
}

type Console struct {
	mu         sync.Mutex
	out        io.Writer
	clearLines int
}

func NewConsole(out io.Writer, clearLines int) *Console {
	return &Console{out: out, clearLines: clearLines}
}

func (c *Console) Println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(line)
}

func (c *Console) Printf(format string, args ...any) {
	c.Println(fmt.Sprintf(format, args...))
}

func (c *Console) Block(lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range lines {
		c.write(line)
	}
}

func (c *Console) Clear() {
	if c.clearLines <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, strings.Repeat("\n", c.clearLines))
}

// write expects c.mu to be held.
func (c *Console) write(line string) {
	_, _ = io.WriteString(c.out, line+"\n")
}
