// Package parser decodes corpus JSON documents and checks the minimum
// contract each document type must satisfy.
package parser

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/credenda/internal/models"
)

// ParseIndex decodes articles/index. Numbers must be positive and unique.
func ParseIndex(data []byte) ([]models.ArticleIndexEntry, error) {
	var entries []models.ArticleIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parser: decode index: %w", err)
	}
	seen := make(map[int]struct{}, len(entries))
	for i := range entries {
		e := &entries[i]
		if err := validation.ValidateStruct(e,
			validation.Field(&e.Number, validation.Required, validation.Min(1)),
		); err != nil {
			return nil, fmt.Errorf("parser: index entry %d: %w", i, err)
		}
		if _, dup := seen[e.Number]; dup {
			return nil, fmt.Errorf("parser: index entry %d: duplicate number %d", i, e.Number)
		}
		seen[e.Number] = struct{}{}
	}
	return entries, nil
}

// ParseArticle decodes a single article document.
func ParseArticle(data []byte) (*models.Article, error) {
	var a models.Article
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parser: decode article: %w", err)
	}
	if err := validation.ValidateStruct(&a,
		validation.Field(&a.Number, validation.Required, validation.Min(1)),
		validation.Field(&a.Title, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("parser: article: %w", err)
	}
	return &a, nil
}

// ParseService decodes a daily office service document.
func ParseService(data []byte) (*models.DailyService, error) {
	var s models.DailyService
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parser: decode service: %w", err)
	}
	if err := validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("parser: service: %w", err)
	}
	return &s, nil
}
