package essays

import (
	"encoding/json"
	"net/url"

	"github.com/JaimeStill/laurel/pkg/query"
	"github.com/JaimeStill/laurel/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "essays", "e").
	Project("id", "ID").
	Project("fingerprint", "Fingerprint").
	Project("essay_text", "EssayText").
	Project("disclosure_text", "DisclosureText").
	Project("filename", "Filename").
	Project("source_key", "SourceKey").
	Project("source_content_type", "SourceContentType").
	Project("page_count", "PageCount").
	Project("overall_score", "OverallScore").
	Project("criteria", "Criteria").
	Project("summary", "Summary").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("evaluated_at", "EvaluatedAt")

var defaultSort = query.SortField{
	Field:      "EvaluatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for essay queries.
// Nil fields are ignored. Fingerprint, ModelName, and ProviderName use
// exact matching. Filename uses case-insensitive contains matching.
type Filters struct {
	Fingerprint  *string `json:"fingerprint,omitempty"`
	Filename     *string `json:"filename,omitempty"`
	ModelName    *string `json:"model_name,omitempty"`
	ProviderName *string `json:"provider_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Fingerprint", f.Fingerprint).
		WhereContains("Filename", f.Filename).
		WhereEquals("ModelName", f.ModelName).
		WhereEquals("ProviderName", f.ProviderName)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if fp := values.Get("fingerprint"); fp != "" {
		f.Fingerprint = &fp
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if m := values.Get("model_name"); m != "" {
		f.ModelName = &m
	}

	if p := values.Get("provider_name"); p != "" {
		f.ProviderName = &p
	}

	return f
}

func scanEssay(s repository.Scanner) (Essay, error) {
	var (
		e            Essay
		criteriaJSON []byte
	)

	err := s.Scan(
		&e.ID,
		&e.Fingerprint,
		&e.EssayText,
		&e.DisclosureText,
		&e.Filename,
		&e.SourceKey,
		&e.SourceContentType,
		&e.PageCount,
		&e.OverallScore,
		&criteriaJSON,
		&e.Summary,
		&e.ModelName,
		&e.ProviderName,
		&e.EvaluatedAt,
	)
	if err != nil {
		return e, err
	}

	if len(criteriaJSON) > 0 {
		if err := json.Unmarshal(criteriaJSON, &e.Criteria); err != nil {
			return e, err
		}
	}

	return e, nil
}
