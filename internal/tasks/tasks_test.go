package tasks

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pulsehq/pulse/internal/dates"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAddRejectsEmptyText(t *testing.T) {
	var l List
	if _, err := l.Add("   ", at(2025, time.January, 1)); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(l) != 0 {
		t.Fatalf("list should be unchanged, has %d items", len(l))
	}
}

func TestCompleteAndUncomplete(t *testing.T) {
	var l List
	task, err := l.Add("water plants", at(2025, time.January, 1))
	if err != nil {
		t.Fatal(err)
	}

	got, err := l.Find(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	got.Complete(at(2025, time.January, 3))
	if !l[0].Done || l[0].CompletedAt == nil {
		t.Fatal("task should be done with a completion time")
	}

	got.Uncomplete()
	if l[0].Done || l[0].CompletedAt != nil {
		t.Fatal("reopened task should have no completion time")
	}
}

func TestRemove(t *testing.T) {
	var l List
	a, _ := l.Add("first", at(2025, time.January, 1))
	b, _ := l.Add("second", at(2025, time.January, 1))

	if err := l.Remove(a.ID); err != nil {
		t.Fatal(err)
	}
	if len(l) != 1 || l[0].ID != b.ID {
		t.Fatalf("unexpected list after remove: %+v", l)
	}
	if err := l.Remove("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// A task created in one period but completed in a later one belongs to the
// completion period once done; open tasks stay anchored to creation.
func TestFilterAnchorAsymmetry(t *testing.T) {
	var l List
	carried, _ := l.Add("carried over", at(2025, time.January, 1))
	open, _ := l.Add("still open", at(2025, time.January, 1))

	ptr, _ := l.Find(carried.ID)
	ptr.Complete(at(2025, time.January, 10))

	early := dates.PeriodWindow(dates.Weekly, at(2025, time.January, 1))
	late := dates.PeriodWindow(dates.Weekly, at(2025, time.January, 10))

	got := l.Filter(early)
	if len(got) != 1 || got[0].ID != open.ID {
		t.Fatalf("creation week should hold only the open task, got %+v", got)
	}
	got = l.Filter(late)
	if len(got) != 1 || got[0].ID != carried.ID {
		t.Fatalf("completion week should hold the done task, got %+v", got)
	}
}

func TestCompletionLogGroupsByDateDescending(t *testing.T) {
	var l List
	a, _ := l.Add("alpha", at(2025, time.January, 1))
	b, _ := l.Add("beta", at(2025, time.January, 1))
	c, _ := l.Add("gamma", at(2025, time.January, 1))
	l.Add("open task", at(2025, time.January, 1))

	pa, _ := l.Find(a.ID)
	pa.Complete(at(2025, time.January, 2))
	pb, _ := l.Find(b.ID)
	pb.Complete(at(2025, time.January, 2))
	pc, _ := l.Find(c.ID)
	pc.Complete(at(2025, time.January, 5))

	log := l.CompletionLog()
	lines := strings.Split(log, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), log)
	}
	if lines[0] != "Tasks completed on 2025-01-05: gamma" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "Tasks completed on 2025-01-02: alpha, beta" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestCompletionLogEmpty(t *testing.T) {
	var l List
	l.Add("nothing done yet", at(2025, time.January, 1))
	if got := l.CompletionLog(); got != "" {
		t.Errorf("expected empty log, got %q", got)
	}
}
