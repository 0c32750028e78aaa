package logrelay_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/logrelay"
)

func TestBuffer_KeepsLastLinesInOrder(t *testing.T) {
	b := logrelay.NewBuffer(0)

	for i := range 105 {
		b.Push(fmt.Sprintf("line %d", i))
	}

	lines := b.Lines()
	if len(lines) != 100 {
		t.Fatalf("expected 100 lines, got %d", len(lines))
	}

	for i, line := range lines {
		want := fmt.Sprintf("line %d", i+5)
		if line != want {
			t.Fatalf("lines[%d] = %q, want %q", i, line, want)
		}
	}

	if b.Len() != 100 || b.Cap() != logrelay.DefaultCapacity {
		t.Errorf("Len/Cap = %d/%d", b.Len(), b.Cap())
	}
}

func TestBuffer_PartiallyFilled(t *testing.T) {
	b := logrelay.NewBuffer(3)

	if got := b.Lines(); len(got) != 0 {
		t.Fatalf("expected empty buffer, got %v", got)
	}

	b.Push("a")
	b.Push("b")

	got := b.Lines()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("lines = %v", got)
	}

	b.Push("c")
	b.Push("d")

	got = b.Lines()
	if strings.Join(got, ",") != "b,c,d" {
		t.Errorf("lines = %v, want b,c,d", got)
	}
}

func TestBuffer_LinesIsACopy(t *testing.T) {
	b := logrelay.NewBuffer(2)
	b.Push("a")

	got := b.Lines()
	got[0] = "mutated"

	if b.Lines()[0] != "a" {
		t.Error("Lines must return a copy")
	}
}

func TestBuffer_ConcurrentPush(t *testing.T) {
	b := logrelay.NewBuffer(50)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 20 {
				b.Push(fmt.Sprintf("%d-%d", i, j))
			}
		}()
	}

	wg.Wait()

	if b.Len() != 50 {
		t.Errorf("Len = %d, want 50", b.Len())
	}
}

type recordingPublisher struct {
	mu    sync.Mutex
	lines []string
}

func (p *recordingPublisher) Publish(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = append(p.lines, line)
}

func TestHook_RelaysEntries(t *testing.T) {
	buf := logrelay.NewBuffer(10)
	pub := &recordingPublisher{}

	log := logrus.New()
	log.SetOutput(new(strings.Builder))
	log.SetLevel(logrus.DebugLevel)
	log.AddHook(logrelay.NewHook(buf, pub, logrus.InfoLevel))

	log.WithField("username", "alice").Info("fetched follow list")
	log.Debug("not relayed")
	log.Warn("second")

	lines := buf.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}

	if !strings.Contains(lines[0], "fetched follow list") || !strings.Contains(lines[0], "username=alice") {
		t.Errorf("line = %q", lines[0])
	}

	if strings.HasSuffix(lines[0], "\n") {
		t.Error("line should not end with a newline")
	}

	if len(pub.lines) != 2 || pub.lines[1] != lines[1] {
		t.Errorf("published = %v", pub.lines)
	}
}

func TestHook_NilPublisher(t *testing.T) {
	buf := logrelay.NewBuffer(10)

	log := logrus.New()
	log.SetOutput(new(strings.Builder))
	log.AddHook(logrelay.NewHook(buf, nil, logrus.InfoLevel))

	log.Info("hello")

	if buf.Len() != 1 {
		t.Errorf("Len = %d, want 1", buf.Len())
	}
}
