package moderation

import (
	"errors"
	"sync"
	"testing"
)

func TestVoteSequentialPresses(t *testing.T) {
	m := NewVoteManager()
	sess := m.Begin("initiator-1", 7)

	// six presses stay below quorum
	for i := 1; i <= 6; i++ {
		var rendered PressResult
		res, err := sess.Press("presser", func(r PressResult) error {
			rendered = r
			return nil
		})
		if err != nil {
			t.Fatalf("press %d returned error: %v", i, err)
		}
		if res.Tally != i {
			t.Errorf("press %d: tally = %d, want %d", i, res.Tally, i)
		}
		if res.Reached || res.Crossed {
			t.Errorf("press %d: reached quorum early", i)
		}
		if rendered != res {
			t.Errorf("press %d: render saw %+v, want %+v", i, rendered, res)
		}
	}

	// seventh press crosses
	res, err := sess.Press("seventh", func(r PressResult) error { return nil })
	if err != nil {
		t.Fatalf("crossing press returned error: %v", err)
	}
	if res.Tally != 7 || !res.Reached || !res.Crossed {
		t.Errorf("crossing press = %+v, want tally 7, reached, crossed", res)
	}

	// further presses are rejected and not counted
	_, err = sess.Press("late", nil)
	if !errors.Is(err, ErrVoteClosed) {
		t.Errorf("press after quorum: err = %v, want ErrVoteClosed", err)
	}
	if sess.Tally() != 7 {
		t.Errorf("tally after closed press = %d, want 7", sess.Tally())
	}
}

func TestVoteConcurrentCrossing(t *testing.T) {
	m := NewVoteManager()
	sess := m.Begin("initiator-1", 7)

	// bring the tally to 6
	for i := 0; i < 6; i++ {
		if _, err := sess.Press("warmup", nil); err != nil {
			t.Fatalf("warmup press returned error: %v", err)
		}
	}

	// two simultaneous presses race for the last slot
	var mu sync.Mutex
	crossedRenders := 0
	disableRenders := 0

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := sess.Press("racer", func(r PressResult) error {
				mu.Lock()
				defer mu.Unlock()
				if r.Crossed {
					crossedRenders++
				}
				if r.Reached {
					disableRenders++
				}
				return nil
			})
			if err == nil && !res.Crossed {
				t.Errorf("successful racing press did not cross: %+v", res)
			}
			if err != nil && !errors.Is(err, ErrVoteClosed) {
				t.Errorf("racing press err = %v, want nil or ErrVoteClosed", err)
			}
		}()
	}
	wg.Wait()

	if crossedRenders != 1 {
		t.Errorf("crossed renders = %d, want exactly 1", crossedRenders)
	}
	if disableRenders != 1 {
		t.Errorf("disable renders = %d, want exactly 1", disableRenders)
	}
	if sess.Tally() != 7 {
		t.Errorf("final tally = %d, want 7", sess.Tally())
	}
}

func TestVoteRenderErrorPropagates(t *testing.T) {
	m := NewVoteManager()
	sess := m.Begin("initiator-1", 3)

	wantErr := errors.New("edit failed")
	_, err := sess.Press("presser", func(PressResult) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want render error", err)
	}

	// the press itself still counted: the counter mutation precedes rendering
	if sess.Tally() != 1 {
		t.Errorf("tally = %d, want 1", sess.Tally())
	}
}

func TestVotePressersRecorded(t *testing.T) {
	m := NewVoteManager()
	sess := m.Begin("initiator-1", 5)

	// repeated presses from one member all count (no deduplication)
	for i := 0; i < 3; i++ {
		if _, err := sess.Press("same-user", nil); err != nil {
			t.Fatalf("press returned error: %v", err)
		}
	}

	if sess.Tally() != 3 {
		t.Errorf("tally = %d, want 3 (presses are not deduplicated)", sess.Tally())
	}

	pressers := sess.Pressers()
	if len(pressers) != 3 {
		t.Fatalf("pressers = %d, want 3", len(pressers))
	}
	for _, p := range pressers {
		if p != "same-user" {
			t.Errorf("presser = %q, want %q", p, "same-user")
		}
	}
}

func TestVoteManagerSupersedesSessions(t *testing.T) {
	m := NewVoteManager()

	first := m.Begin("initiator-1", 7)
	if _, err := first.Press("presser", nil); err != nil {
		t.Fatalf("press returned error: %v", err)
	}

	second := m.Begin("initiator-2", 7)
	if second.ID == first.ID {
		t.Error("new session reused the previous session ID")
	}
	if second.Tally() != 0 {
		t.Errorf("new session tally = %d, want 0", second.Tally())
	}

	// the superseded session is no longer reachable
	if _, ok := m.Get(first.ID); ok {
		t.Error("superseded session should not resolve")
	}
	if got, ok := m.Get(second.ID); !ok || got != second {
		t.Error("active session should resolve to itself")
	}
}

func TestVoteManagerGetUnknownID(t *testing.T) {
	m := NewVoteManager()
	if _, ok := m.Get("nope"); ok {
		t.Error("empty manager resolved a session")
	}

	m.Begin("initiator-1", 7)
	if _, ok := m.Get("nope"); ok {
		t.Error("unknown ID resolved a session")
	}
}
