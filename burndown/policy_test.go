package burndown_test

import (
	"testing"

	"jira-burndown/burndown"
)

func remainingByDay(p burndown.Policy, points float64, tl burndown.Timeline) []float64 {
	var out []float64
	for n := 20; n <= 24; n++ {
		_, remaining := p.Evaluate(points, tl, day(n))
		out = append(out, remaining)
	}
	return out
}

func assertSeries(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day %d: got %v, want %v (series %v)", i+1, got[i], want[i], got)
		}
	}
}

func TestEvaluateUATReachedOnDayThree(t *testing.T) {
	tl := burndown.NewTimeline("UAT", []burndown.StatusChange{change(22, "In Progress", "UAT")})

	t.Run("permanent", func(t *testing.T) {
		assertSeries(t, remainingByDay(defaultPolicy(true), 5, tl), []float64{5, 5, 0, 0, 0})
	})
	t.Run("transient", func(t *testing.T) {
		assertSeries(t, remainingByDay(defaultPolicy(false), 5, tl), []float64{5, 5, 0, 0, 0})
	})
}

func TestEvaluateUATReopenedOnDayFour(t *testing.T) {
	tl := burndown.NewTimeline("In Progress", []burndown.StatusChange{
		change(22, "In Progress", "UAT"),
		change(23, "UAT", "In Progress"),
	})

	t.Run("permanent", func(t *testing.T) {
		assertSeries(t, remainingByDay(defaultPolicy(true), 3, tl), []float64{3, 3, 0, 0, 0})
	})
	t.Run("transient", func(t *testing.T) {
		assertSeries(t, remainingByDay(defaultPolicy(false), 3, tl), []float64{3, 3, 0, 3, 3})
	})
}

func TestEvaluateReportsStatusEvenWhenPermanentlyDone(t *testing.T) {
	tl := burndown.NewTimeline("In Progress", []burndown.StatusChange{
		change(21, "In Progress", "UAT"),
		change(23, "UAT", "In Progress"),
	})
	status, remaining := defaultPolicy(true).Evaluate(8, tl, day(23))
	if status != "In Progress" || remaining != 0 {
		t.Fatalf("got %q %v", status, remaining)
	}
}

func TestEvaluateUntrackedStatusesContributeNothing(t *testing.T) {
	tl := burndown.NewTimeline("Backlog", []burndown.StatusChange{
		change(21, "Backlog", "To Do"),
		change(23, "To Do", "Done"),
	})
	assertSeries(t, remainingByDay(defaultPolicy(true), 2, tl), []float64{0, 2, 2, 0, 0})
}

func TestEvaluateWithoutHistory(t *testing.T) {
	tracked := burndown.NewTimeline("Code Review", nil)
	assertSeries(t, remainingByDay(defaultPolicy(true), 1.5, tracked), []float64{1.5, 1.5, 1.5, 1.5, 1.5})

	done := burndown.NewTimeline("Done", nil)
	assertSeries(t, remainingByDay(defaultPolicy(true), 1.5, done), []float64{0, 0, 0, 0, 0})
}

func TestEvaluateTrackedUATStillZeroWhileInUAT(t *testing.T) {
	p := burndown.NewPolicy([]string{"In Progress", "UAT"}, "UAT", false)
	tl := burndown.NewTimeline("In Progress", []burndown.StatusChange{change(22, "In Progress", "UAT")})
	assertSeries(t, remainingByDay(p, 4, tl), []float64{4, 4, 0, 0, 0})
}

func TestNewPolicyTrimsNames(t *testing.T) {
	p := burndown.NewPolicy([]string{" To Do", "In Progress ", ""}, " UAT ", false)
	if !p.IsTracked("To Do") || !p.IsTracked("In Progress") || p.IsTracked("") {
		t.Fatalf("unexpected tracked set %v", p.Tracked)
	}
	if p.UATStatus != "UAT" || p.UAT != burndown.UATTransient {
		t.Fatalf("unexpected policy %+v", p)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	tl := burndown.NewTimeline("To Do", []burndown.StatusChange{
		change(21, "To Do", "In Progress"),
		change(22, "In Progress", "UAT"),
	})
	p := defaultPolicy(false)
	first := remainingByDay(p, 5, tl)
	for i := 0; i < 10; i++ {
		assertSeries(t, remainingByDay(p, 5, tl), first)
	}
}
