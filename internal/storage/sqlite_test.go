package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"quickcalories/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quickcalories.db")
	s, err := NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entryAt(id string, ts time.Time, calories int) *models.FoodEntry {
	return &models.FoodEntry{
		ID:        id,
		FoodName:  "Food " + id,
		Calories:  calories,
		Protein:   10,
		Carbs:     20,
		Fat:       5,
		Servings:  1,
		Source:    models.SourceManual,
		Timestamp: ts,
	}
}

func TestEntryRoundTripAndRange(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.Local)

	for _, e := range []*models.FoodEntry{
		entryAt("a", day.Add(8*time.Hour), 300),
		entryAt("b", day.Add(13*time.Hour), 600),
		entryAt("c", day.Add(-2*time.Hour), 900),
		entryAt("d", day.Add(26*time.Hour), 100),
	} {
		if err := s.SaveEntry(e); err != nil {
			t.Fatalf("save %s: %v", e.ID, err)
		}
	}

	got, err := s.GetEntries(models.EntryQuery{From: day, To: day.AddDate(0, 0, 1)})
	if err != nil {
		t.Fatalf("get entries: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("expected [b a] newest first, got %+v", got)
	}
	if !got[1].Timestamp.Equal(day.Add(8*time.Hour)) || got[1].Source != models.SourceManual {
		t.Fatalf("unexpected round trip %+v", got[1])
	}

	all, err := s.GetEntries(models.EntryQuery{Limit: 3})
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 || all[0].ID != "d" {
		t.Fatalf("expected 3 newest entries, got %d", len(all))
	}
}

func TestEntryDefaultLimit(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)
	base := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultLimit+5; i++ {
		e := entryAt(string(rune('A'+i)), base.Add(time.Duration(i)*time.Minute), 100)
		if err := s.SaveEntry(e); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, err := s.GetEntries(models.EntryQuery{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != DefaultLimit {
		t.Fatalf("expected %d entries, got %d", DefaultLimit, len(got))
	}
}

func TestEntryUpdateAndDelete(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)
	e := entryAt("x", time.Now(), 200)
	if err := s.SaveEntry(e); err != nil {
		t.Fatalf("save: %v", err)
	}

	e.Calories = 400
	e.Servings = 2
	if err := s.UpdateEntry(e); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetEntry("x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Calories != 400 || got.Servings != 2 {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := s.DeleteEntry("x"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteEntry("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetEntry("x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateEntry(e); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestWorkouts(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.Local)
	w := &models.WorkoutEntry{ID: "w1", WorkoutName: "Run", CaloriesBurned: 350, Timestamp: day.Add(7 * time.Hour)}
	if err := s.SaveWorkout(w); err != nil {
		t.Fatalf("save workout: %v", err)
	}
	got, err := s.GetWorkouts(models.EntryQuery{From: day, To: day.AddDate(0, 0, 1)})
	if err != nil {
		t.Fatalf("get workouts: %v", err)
	}
	if len(got) != 1 || got[0].CaloriesBurned != 350 || got[0].WorkoutName != "Run" {
		t.Fatalf("unexpected workouts %+v", got)
	}

	w.CaloriesBurned = 400
	if err := s.UpdateWorkout(w); err != nil {
		t.Fatalf("update workout: %v", err)
	}
	stored, err := s.GetWorkout("w1")
	if err != nil || stored.CaloriesBurned != 400 {
		t.Fatalf("get workout: %+v %v", stored, err)
	}
	if err := s.DeleteWorkout("w1"); err != nil {
		t.Fatalf("delete workout: %v", err)
	}
	if err := s.DeleteWorkout("w1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetWorkout("w1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSavedFoods(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)
	now := time.Now()
	for _, f := range []*models.SavedFood{
		{ID: "1", FoodName: "oatmeal", ServingSize: 40, Unit: "g", Calories: 150, Protein: 5, Carbs: 27, Fat: 3, CreatedAt: now},
		{ID: "2", FoodName: "Banana", ServingSize: 1, Unit: "medium", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4, CreatedAt: now},
	} {
		if err := s.SaveFood(f); err != nil {
			t.Fatalf("save food: %v", err)
		}
	}

	foods, err := s.ListSavedFoods()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(foods) != 2 || foods[0].FoodName != "Banana" {
		t.Fatalf("expected case-insensitive alphabetical order, got %+v", foods)
	}

	foods[1].Calories = 160
	if err := s.UpdateSavedFood(foods[1]); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetSavedFood("1")
	if err != nil || got.Calories != 160 {
		t.Fatalf("expected updated calories, got %+v err %v", got, err)
	}

	if err := s.DeleteSavedFood("2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetSavedFood("2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsKeyValue(t *testing.T) {
	t.Parallel()
	s := newTestStorage(t)

	if _, ok, err := s.GetSetting("daily_calorie_target"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.SetSetting(" Daily_Calorie_Target ", "2200"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetSetting("daily_calorie_target", "2300"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.GetSetting("daily_calorie_target")
	if err != nil || !ok || v != "2300" {
		t.Fatalf("expected 2300, got %q ok=%v err=%v", v, ok, err)
	}

	if err := s.SetSetting("", "x"); err == nil {
		t.Fatalf("expected error for empty key")
	}

	all, err := s.ListSettings()
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one setting, got %v err %v", all, err)
	}
	if err := s.DeleteSetting("daily_calorie_target"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.GetSetting("daily_calorie_target"); ok {
		t.Fatalf("expected key removed")
	}
}
