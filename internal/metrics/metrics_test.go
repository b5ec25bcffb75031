package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestRecordAdmission(t *testing.T) {
	m := New()

	m.RecordAdd()
	m.RecordAdd()
	m.RecordBlocked()
	m.RecordDuplicate()
	m.RecordDuplicate()

	snap := m.Snapshot()

	if snap["songs_added"].(uint64) != 2 {
		t.Errorf("expected 2 adds, got %v", snap["songs_added"])
	}
	if snap["rejected_blocked"].(uint64) != 1 {
		t.Errorf("expected 1 blocked, got %v", snap["rejected_blocked"])
	}
	if snap["rejected_duplicate"].(uint64) != 2 {
		t.Errorf("expected 2 duplicates, got %v", snap["rejected_duplicate"])
	}
}

func TestRecordShuffle(t *testing.T) {
	m := New()

	m.RecordShuffle(false)
	m.RecordShuffle(true)
	m.RecordUndo(3)

	snap := m.Snapshot()

	if snap["shuffles_total"].(uint64) != 2 {
		t.Errorf("expected 2 shuffles, got %v", snap["shuffles_total"])
	}
	if snap["shuffle_fallbacks"].(uint64) != 1 {
		t.Errorf("expected 1 fallback, got %v", snap["shuffle_fallbacks"])
	}
	if snap["undos_total"].(uint64) != 3 {
		t.Errorf("expected 3 undos, got %v", snap["undos_total"])
	}
}

func TestRecommendAverage(t *testing.T) {
	m := New()

	m.RecordRecommend(5, 100*time.Millisecond)
	m.RecordRecommend(3, 200*time.Millisecond)
	m.RecordRecommend(0, 300*time.Millisecond)

	snap := m.Snapshot()

	if snap["recommend_calls"].(uint64) != 3 {
		t.Errorf("expected 3 calls, got %v", snap["recommend_calls"])
	}
	if snap["recommended_total"].(uint64) != 8 {
		t.Errorf("expected 8 recommended, got %v", snap["recommended_total"])
	}

	// Average should be 200ms
	avg := snap["avg_recommend_ms"].(float64)
	if avg < 199 || avg > 201 {
		t.Errorf("expected ~200ms average, got %v", avg)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.RecordRecommend(1, time.Millisecond)
		}()
		go func() {
			defer wg.Done()
			m.RecordPlay()
		}()
	}
	wg.Wait()

	snap := m.Snapshot()

	if snap["recommend_calls"].(uint64) != 100 {
		t.Errorf("expected 100 calls, got %v", snap["recommend_calls"])
	}
	if snap["plays_total"].(uint64) != 100 {
		t.Errorf("expected 100 plays, got %v", snap["plays_total"])
	}
}

func TestGetReturnsGlobal(t *testing.T) {
	if Get() != Get() {
		t.Error("Get should return the same instance")
	}
}
