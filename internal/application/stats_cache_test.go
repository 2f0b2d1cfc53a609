package application

import (
	"fmt"
	"testing"
	"time"
)

func TestStatsCacheStoreAndGet(t *testing.T) {
	cache := NewStatsCache(time.Minute, 8, fixedNow)
	want := DashboardStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1}

	cache.Store("k", want)
	got, ok := cache.Get("k")
	if !ok || got != want {
		t.Fatalf("expected %+v, got %+v (ok=%v)", want, got, ok)
	}

	if _, ok := cache.Get("missing"); ok {
		t.Error("unexpected hit for missing key")
	}
}

func TestStatsCacheExpiresEntries(t *testing.T) {
	current := testNow
	cache := NewStatsCache(30*time.Second, 8, func() time.Time { return current })

	cache.Store("k", DashboardStats{Total: 1})
	current = current.Add(31 * time.Second)
	if _, ok := cache.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestStatsCacheEvictsWhenFull(t *testing.T) {
	cache := NewStatsCache(time.Minute, 2, fixedNow)
	for i := 0; i < 3; i++ {
		cache.Store(fmt.Sprintf("k%d", i), DashboardStats{Total: i})
	}

	hits := 0
	for i := 0; i < 3; i++ {
		if _, ok := cache.Get(fmt.Sprintf("k%d", i)); ok {
			hits++
		}
	}
	if hits > 2 {
		t.Errorf("expected at most 2 retained entries, got %d", hits)
	}
}

func TestStatsCacheInvalidate(t *testing.T) {
	cache := NewStatsCache(time.Minute, 8, fixedNow)
	cache.Store("a", DashboardStats{Total: 1})
	cache.Store("b", DashboardStats{Total: 2})

	cache.Invalidate()
	if _, ok := cache.Get("a"); ok {
		t.Error("entry a survived invalidation")
	}
	if _, ok := cache.Get("b"); ok {
		t.Error("entry b survived invalidation")
	}
}

func TestStatsCacheNilReceiverIsSafe(t *testing.T) {
	var cache *StatsCache
	cache.Store("k", DashboardStats{})
	cache.Invalidate()
	if _, ok := cache.Get("k"); ok {
		t.Error("nil cache reported a hit")
	}
}

func TestBuildStatsCacheKeyDistinguishesScopes(t *testing.T) {
	student := buildStatsCacheKey(StatsScope{Kind: StatsScopeStudent, RegNo: "REG001"})
	dept := buildStatsCacheKey(StatsScope{Kind: StatsScopeDepartment, Dept: "CSE"})
	otherDept := buildStatsCacheKey(StatsScope{Kind: StatsScopeDepartment, Dept: "ECE"})

	if student == dept || dept == otherDept {
		t.Errorf("scope keys collide: %q %q %q", student, dept, otherDept)
	}
}
