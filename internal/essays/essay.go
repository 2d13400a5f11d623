// Package essays implements the essay domain for Laurel. It provides
// types, data access, and business logic for persisted evaluation
// results, content-addressed caching by essay fingerprint, and source
// document archival in blob storage.
package essays

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/laurel/internal/grading"
)

// Essay represents a persisted essay evaluation. The fingerprint is the
// SHA-256 hex digest of the exact essay text and is unique: an essay is
// evaluated at most once, with later submissions served from this record.
type Essay struct {
	ID                uuid.UUID                 `json:"id"`
	Fingerprint       string                    `json:"fingerprint"`
	EssayText         string                    `json:"essay_text"`
	DisclosureText    *string                   `json:"disclosure_text"`
	Filename          *string                   `json:"filename"`
	SourceKey         *string                   `json:"source_key,omitempty"`
	SourceContentType *string                   `json:"source_content_type,omitempty"`
	PageCount         *int                      `json:"page_count"`
	OverallScore      float64                   `json:"overall_score"`
	Criteria          []grading.CriterionResult `json:"criteria"`
	Summary           string                    `json:"summary"`
	ModelName         string                    `json:"model_name"`
	ProviderName      string                    `json:"provider_name"`
	EvaluatedAt       time.Time                 `json:"evaluated_at"`
}

// SaveCommand carries a completed evaluation for persistence.
// Source fields are optional and populated only when the submission
// included an archived source document.
type SaveCommand struct {
	EssayText         string
	DisclosureText    *string
	Filename          *string
	SourceKey         *string
	SourceContentType *string
	PageCount         *int
	OverallScore      float64
	Criteria          []grading.CriterionResult
	Summary           string
	ModelName         string
	ProviderName      string
	EvaluatedAt       time.Time
}

// ArchivedSource describes a source document stored in blob storage.
type ArchivedSource struct {
	Key         string
	ContentType string
	PageCount   *int
}
