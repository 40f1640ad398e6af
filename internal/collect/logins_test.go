package collect

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/doughall/hostaudit/internal/runner"
)

// fakeHistory builds n fake last(1) records, one per line.
func fakeHistory(n int) string {
	var lines []string
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("user%d  pts/0  10.0.0.%d  Sat Aug 30 10:%02d", i, i, i))
	}
	return strings.Join(lines, "\n")
}

func TestLoginHistory_Collect_Bounds(t *testing.T) {
	const limit = 10

	tests := []struct {
		lines int
		want  int
	}{
		{0, 0},
		{5, 5},
		{10, 10},
		{15, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d lines", tt.lines), func(t *testing.T) {
			fake := &fakeRunner{result: okResult(fakeHistory(tt.lines))}
			c := NewLoginHistory(fake, time.Second, limit, nopLogger())

			s := c.Collect(context.Background())

			if tt.lines == 0 {
				if s.Body != "No login history found." {
					t.Errorf("unexpected empty-history body: %q", s.Body)
				}
				return
			}

			got := strings.Split(s.Body, "\n")
			if len(got) != tt.want {
				t.Fatalf("expected %d lines, got %d:\n%s", tt.want, len(got), s.Body)
			}
			// Order preserved: line i belongs to user i.
			for i, line := range got {
				if !strings.HasPrefix(line, fmt.Sprintf("user%d ", i)) {
					t.Errorf("line %d out of order: %q", i, line)
				}
			}
		})
	}
}

func TestLoginHistory_Collect_PassesLimitToTool(t *testing.T) {
	fake := &fakeRunner{result: okResult(fakeHistory(3))}
	c := NewLoginHistory(fake, time.Second, 10, nopLogger())

	c.Collect(context.Background())

	if fake.lastSpec.Name != "last" {
		t.Errorf("expected last to be invoked, got %q", fake.lastSpec.Name)
	}
	if len(fake.lastSpec.Args) != 2 || fake.lastSpec.Args[0] != "-n" || fake.lastSpec.Args[1] != "10" {
		t.Errorf("expected args [-n 10], got %v", fake.lastSpec.Args)
	}
}

func TestLoginHistory_Collect_Failure(t *testing.T) {
	fake := &fakeRunner{result: failResult(runner.ReasonNotFound)}
	c := NewLoginHistory(fake, time.Second, 10, nopLogger())

	s := c.Collect(context.Background())
	if s.Title != "Login History" {
		t.Errorf("title must survive failure, got %q", s.Title)
	}
	if !strings.Contains(s.Body, string(runner.ReasonNotFound)) {
		t.Errorf("placeholder should name the reason, got %q", s.Body)
	}
}
