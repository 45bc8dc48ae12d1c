// Package record 提供记录存储单元测试
package record

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/drdeuce/health-agent/internal/model"
)

func scoreRecord(score int) *model.HealthRecord {
	return &model.HealthRecord{
		Kind:      model.KindHealthScore,
		Input:     map[string]any{"Glucose": 90.0},
		Result:    &model.HealthScoreResult{TotalScore: score, Status: "Good"},
		Timestamp: time.Now(),
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	store := NewStore()

	store.Put("u1", scoreRecord(70))
	store.Put("u1", scoreRecord(85))

	records := store.Get("u1")
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	result, ok := records[model.KindHealthScore].Result.(*model.HealthScoreResult)
	if !ok {
		t.Fatalf("unexpected result type %T", records[model.KindHealthScore].Result)
	}
	if result.TotalScore != 85 {
		t.Errorf("TotalScore = %d, want 85 (latest submission wins)", result.TotalScore)
	}
}

func TestStore_AppendOnlyKinds(t *testing.T) {
	store := NewStore()

	for i := 0; i < 3; i++ {
		store.Put("u1", &model.HealthRecord{
			Kind:   model.KindProgress,
			Result: &model.ProgressSnapshot{Readings: map[string]float64{"Heart_Rate": float64(60 + i)}},
		})
	}

	history := store.History("u1", model.KindProgress)
	if len(history) != 3 {
		t.Fatalf("len(history) = %d, want 3", len(history))
	}

	// 最新条目仍可通过 Get 读取
	records := store.Get("u1")
	snap, ok := records[model.KindProgress].Result.(*model.ProgressSnapshot)
	if !ok {
		t.Fatalf("unexpected result type %T", records[model.KindProgress].Result)
	}
	if snap.Readings["Heart_Rate"] != 62 {
		t.Errorf("latest Heart_Rate = %v, want 62", snap.Readings["Heart_Rate"])
	}
}

func TestStore_GetUnknownUser(t *testing.T) {
	store := NewStore()

	records := store.Get("nobody")
	if records == nil {
		t.Fatal("Get() returned nil, want empty map")
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
	if store.Has("nobody") {
		t.Error("Has() = true for unknown user")
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	store := NewStore()
	store.Put("u1", scoreRecord(70))

	snapshot := store.Get("u1")
	store.Put("u1", scoreRecord(90))

	result := snapshot[model.KindHealthScore].Result.(*model.HealthScoreResult)
	if result.TotalScore != 70 {
		t.Errorf("snapshot TotalScore = %d, want 70 (snapshot must not see later writes)", result.TotalScore)
	}
}

// 并发读写同一用户不触发竞态，读取结果始终是完整记录
func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		userID := fmt.Sprintf("user-%d", i%2)
		go func(id string, n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Put(id, scoreRecord(n*100+j))
			}
		}(userID, i)
		go func(id string) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				records := store.Get(id)
				if rec, ok := records[model.KindHealthScore]; ok {
					if rec.Result == nil {
						t.Error("observed partially written record")
						return
					}
				}
			}
		}(userID)
	}
	wg.Wait()
}
