package collect

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/doughall/hostaudit/internal/runner"
)

func TestActiveUsers_Collect(t *testing.T) {
	t.Run("sessions present", func(t *testing.T) {
		fake := &fakeRunner{result: okResult(
			"alice    pts/0        2026-08-30 09:12 (10.0.0.5)\n" +
				"bob      pts/1        2026-08-30 10:01 (10.0.0.9)")}
		c := NewActiveUsers(fake, time.Second, nopLogger())

		s := c.Collect(context.Background())

		if s.Title != "Active Users" {
			t.Errorf("unexpected title %q", s.Title)
		}
		if !strings.Contains(s.Body, "alice") || !strings.Contains(s.Body, "bob") {
			t.Errorf("expected both sessions in body, got:\n%s", s.Body)
		}
		if fake.lastSpec.Name != "who" {
			t.Errorf("expected who to be invoked, got %q", fake.lastSpec.Name)
		}
	})

	t.Run("no sessions", func(t *testing.T) {
		fake := &fakeRunner{result: okResult("")}
		c := NewActiveUsers(fake, time.Second, nopLogger())

		s := c.Collect(context.Background())
		if s.Body != "No active users detected." {
			t.Errorf("unexpected empty-listing body: %q", s.Body)
		}
	})

	t.Run("command failure degrades to placeholder", func(t *testing.T) {
		for _, reason := range []runner.FailureReason{
			runner.ReasonNotFound,
			runner.ReasonTimeout,
			runner.ReasonExitError,
			runner.ReasonExecFailure,
		} {
			fake := &fakeRunner{result: failResult(reason)}
			c := NewActiveUsers(fake, time.Second, nopLogger())

			s := c.Collect(context.Background())
			if s.Title != "Active Users" {
				t.Errorf("title must survive failure, got %q", s.Title)
			}
			if !strings.Contains(s.Body, string(reason)) {
				t.Errorf("placeholder for %q should name the reason, got %q", reason, s.Body)
			}
		}
	})
}
