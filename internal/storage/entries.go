// internal/storage/entries.go
package storage

import (
	"fmt"

	"quickcalories/internal/models"
)

func (s *SQLiteStorage) SaveEntry(entry *models.FoodEntry) error {
	query := `
        INSERT INTO food_entries (id, food_name, calories, protein, carbs, fat, servings, source, timestamp)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		entry.ID, entry.FoodName, entry.Calories, entry.Protein, entry.Carbs,
		entry.Fat, entry.Servings, string(entry.Source), formatTime(entry.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateEntry(entry *models.FoodEntry) error {
	query := `
        UPDATE food_entries
        SET food_name = ?, calories = ?, protein = ?, carbs = ?, fat = ?, servings = ?, source = ?, timestamp = ?
        WHERE id = ?
    `
	result, err := s.db.Exec(query,
		entry.FoodName, entry.Calories, entry.Protein, entry.Carbs, entry.Fat,
		entry.Servings, string(entry.Source), formatTime(entry.Timestamp), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return affectedOne(result, "entry "+entry.ID)
}

func (s *SQLiteStorage) DeleteEntry(id string) error {
	result, err := s.db.Exec(`DELETE FROM food_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return affectedOne(result, "entry "+id)
}

func (s *SQLiteStorage) GetEntry(id string) (*models.FoodEntry, error) {
	entries, err := s.queryEntries(`
        SELECT id, food_name, calories, protein, carbs, fat, servings, source, timestamp
        FROM food_entries WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return entries[0], nil
}

// GetEntries returns entries in [q.From, q.To), newest first.
func (s *SQLiteStorage) GetEntries(q models.EntryQuery) ([]*models.FoodEntry, error) {
	query, args := rangeClause(`
        SELECT id, food_name, calories, protein, carbs, fat, servings, source, timestamp
        FROM food_entries`, q)
	return s.queryEntries(query, args...)
}

func (s *SQLiteStorage) queryEntries(query string, args ...interface{}) ([]*models.FoodEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.FoodEntry
	for rows.Next() {
		entry := &models.FoodEntry{}
		var source, timestampStr string

		err := rows.Scan(
			&entry.ID, &entry.FoodName, &entry.Calories, &entry.Protein,
			&entry.Carbs, &entry.Fat, &entry.Servings, &source, &timestampStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if entry.Timestamp, err = parseTime(timestampStr); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		entry.Source = models.EntrySource(source)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *SQLiteStorage) SaveWorkout(workout *models.WorkoutEntry) error {
	query := `
        INSERT INTO workout_entries (id, workout_name, calories_burned, timestamp)
        VALUES (?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		workout.ID, workout.WorkoutName, workout.CaloriesBurned, formatTime(workout.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to insert workout: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateWorkout(workout *models.WorkoutEntry) error {
	result, err := s.db.Exec(`
        UPDATE workout_entries SET workout_name = ?, calories_burned = ?, timestamp = ?
        WHERE id = ?`,
		workout.WorkoutName, workout.CaloriesBurned, formatTime(workout.Timestamp), workout.ID)
	if err != nil {
		return fmt.Errorf("failed to update workout: %w", err)
	}
	return affectedOne(result, "workout "+workout.ID)
}

func (s *SQLiteStorage) DeleteWorkout(id string) error {
	result, err := s.db.Exec(`DELETE FROM workout_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	return affectedOne(result, "workout "+id)
}

// GetWorkouts returns workouts in [q.From, q.To), newest first.
func (s *SQLiteStorage) GetWorkouts(q models.EntryQuery) ([]*models.WorkoutEntry, error) {
	query, args := rangeClause(`
        SELECT id, workout_name, calories_burned, timestamp
        FROM workout_entries`, q)
	return s.queryWorkouts(query, args...)
}

func (s *SQLiteStorage) GetWorkout(id string) (*models.WorkoutEntry, error) {
	workouts, err := s.queryWorkouts(`
        SELECT id, workout_name, calories_burned, timestamp
        FROM workout_entries WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	return workouts[0], nil
}

func (s *SQLiteStorage) queryWorkouts(query string, args ...interface{}) ([]*models.WorkoutEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.WorkoutEntry
	for rows.Next() {
		workout := &models.WorkoutEntry{}
		var timestampStr string
		if err := rows.Scan(&workout.ID, &workout.WorkoutName, &workout.CaloriesBurned, &timestampStr); err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		if workout.Timestamp, err = parseTime(timestampStr); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		workouts = append(workouts, workout)
	}

	return workouts, rows.Err()
}
