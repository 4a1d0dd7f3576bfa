package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type Spinner struct {
	frames  []string
	message string
	out     io.Writer

	mu      sync.Mutex
	running bool

	stop   sync.Once
	ticker *time.Ticker
	done   chan struct{}
}

func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		out:    out,
		ticker: time.NewTicker(time.Millisecond * 90),
		done:   make(chan struct{}),
	}
}

func (s *Spinner) SetMessage(msg string) {
	msg = strings.TrimSpace(msg)
	msg = strings.TrimRight(msg, ".")
	s.message = msg
}

func (s *Spinner) Run(fn func()) {
	s.Start()
	defer s.Stop()
	fn()
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	go s.run()
}

func (s *Spinner) Stop() {
	s.stop.Do(func() {
		close(s.done)
		s.ticker.Stop()
		s.clearLine()
	})
}

func (s *Spinner) run() {
	for i := 0; ; i++ {
		select {
		case <-s.ticker.C:
			f := s.frames[i%len(s.frames)]
			io.WriteString(s.out, fmt.Sprintf("\r%s", f))
			if s.message != "" && i == 0 {
				io.WriteString(s.out, " ")
				io.WriteString(s.out, s.message)
				io.WriteString(s.out, "...")
			}
		case <-s.done:
			return
		}
	}
}

func (s *Spinner) clearLine() {
	io.WriteString(s.out, "\x1b[0G\x1b[2K\x1b[0G")
}
