// internal/storage/saved_foods.go
package storage

import (
	"fmt"

	"quickcalories/internal/models"
)

func (s *SQLiteStorage) SaveFood(food *models.SavedFood) error {
	query := `
        INSERT INTO saved_foods (id, food_name, serving_size, unit, calories, protein, carbs, fat, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		food.ID, food.FoodName, food.ServingSize, food.Unit, food.Calories,
		food.Protein, food.Carbs, food.Fat, formatTime(food.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert saved food: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateSavedFood(food *models.SavedFood) error {
	query := `
        UPDATE saved_foods
        SET food_name = ?, serving_size = ?, unit = ?, calories = ?, protein = ?, carbs = ?, fat = ?
        WHERE id = ?
    `
	result, err := s.db.Exec(query,
		food.FoodName, food.ServingSize, food.Unit, food.Calories,
		food.Protein, food.Carbs, food.Fat, food.ID)
	if err != nil {
		return fmt.Errorf("failed to update saved food: %w", err)
	}
	return affectedOne(result, "saved food "+food.ID)
}

func (s *SQLiteStorage) DeleteSavedFood(id string) error {
	result, err := s.db.Exec(`DELETE FROM saved_foods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved food: %w", err)
	}
	return affectedOne(result, "saved food "+id)
}

func (s *SQLiteStorage) GetSavedFood(id string) (*models.SavedFood, error) {
	foods, err := s.querySavedFoods(`
        SELECT id, food_name, serving_size, unit, calories, protein, carbs, fat, created_at
        FROM saved_foods WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("saved food %s: %w", id, ErrNotFound)
	}
	return foods[0], nil
}

// ListSavedFoods returns saved foods alphabetically.
func (s *SQLiteStorage) ListSavedFoods() ([]*models.SavedFood, error) {
	return s.querySavedFoods(`
        SELECT id, food_name, serving_size, unit, calories, protein, carbs, fat, created_at
        FROM saved_foods ORDER BY food_name COLLATE NOCASE ASC, created_at ASC`)
}

func (s *SQLiteStorage) querySavedFoods(query string, args ...interface{}) ([]*models.SavedFood, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved foods: %w", err)
	}
	defer rows.Close()

	var foods []*models.SavedFood
	for rows.Next() {
		food := &models.SavedFood{}
		var createdAtStr string
		err := rows.Scan(
			&food.ID, &food.FoodName, &food.ServingSize, &food.Unit, &food.Calories,
			&food.Protein, &food.Carbs, &food.Fat, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved food: %w", err)
		}
		if food.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		foods = append(foods, food)
	}

	return foods, rows.Err()
}
