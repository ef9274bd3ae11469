package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// progress 표준 에러가 터미널일 때만 스피너로 진행 상태를 보여줍니다.
type progress struct {
	s *spinner.Spinner
}

func newProgress(stderr io.Writer) *progress {
	f, ok := stderr.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return &progress{}
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " 측정 준비 중..."
	return &progress{s: s}
}

func (p *progress) start() {
	if p.s != nil {
		p.s.Start()
	}
}

func (p *progress) stop() {
	if p.s != nil {
		p.s.Stop()
	}
}

// update strbench.ProgressFunc 입니다.
func (p *progress) update(done, total int, name string) {
	if p.s == nil {
		return
	}

	p.s.Lock()
	if name == "" {
		p.s.Suffix = fmt.Sprintf(" [%d/%d] 완료", done, total)
	} else {
		p.s.Suffix = fmt.Sprintf(" [%d/%d] %s", done+1, total, name)
	}
	p.s.Unlock()
}
