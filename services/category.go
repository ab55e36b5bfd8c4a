package services

import (
	"errors"
	"fmt"

	"views-prediction-api/models"
)

var ErrUnknownCategory = errors.New("unknown video category")

var ErrInvalidDay = errors.New("day of week must be between 0 (Monday) and 6 (Sunday)")

// YouTube's official category taxonomy, in the order the form lists it.
var categories = []models.Category{
	{ID: 1, Name: "Film & Animation"},
	{ID: 2, Name: "Autos & Vehicles"},
	{ID: 10, Name: "Music"},
	{ID: 15, Name: "Pets & Animals"},
	{ID: 17, Name: "Sports"},
	{ID: 18, Name: "Short Movies"},
	{ID: 19, Name: "Travel & Events"},
	{ID: 20, Name: "Gaming"},
	{ID: 22, Name: "People & Blogs"},
	{ID: 23, Name: "Comedy"},
	{ID: 24, Name: "Entertainment"},
	{ID: 25, Name: "News & Politics"},
	{ID: 26, Name: "Howto & Style"},
	{ID: 27, Name: "Education"},
	{ID: 28, Name: "Science & Technology"},
	{ID: 29, Name: "Nonprofits & Activism"},
}

var categoryIDs = func() map[string]int {
	m := make(map[string]int, len(categories))
	for _, c := range categories {
		m[c.Name] = c.ID
	}
	return m
}()

// Monday is 0.
var days = []models.Day{
	{Index: 0, Name: "Monday", Short: "Mon"},
	{Index: 1, Name: "Tuesday", Short: "Tue"},
	{Index: 2, Name: "Wednesday", Short: "Wed"},
	{Index: 3, Name: "Thursday", Short: "Thu"},
	{Index: 4, Name: "Friday", Short: "Fri"},
	{Index: 5, Name: "Saturday", Short: "Sat"},
	{Index: 6, Name: "Sunday", Short: "Sun"},
}

func Categories() []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	return out
}

func ResolveCategory(label string) (int, error) {
	id, ok := categoryIDs[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, label)
	}
	return id, nil
}

func CategoryLabel(id int) (string, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

func Days() []models.Day {
	out := make([]models.Day, len(days))
	copy(out, days)
	return out
}

func DayOf(index int) (models.Day, error) {
	if index < 0 || index >= len(days) {
		return models.Day{}, fmt.Errorf("%w: got %d", ErrInvalidDay, index)
	}
	return days[index], nil
}
