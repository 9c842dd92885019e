package catalog

import (
	"strings"

	"servicehub/models"
	"servicehub/observability"
	"servicehub/services/search"
)

func (s *Store) Categories() []models.ServiceCategory {
	return append([]models.ServiceCategory{}, s.Snapshot().Categories...)
}

func (s *Store) Services() []models.ServiceItem {
	return append([]models.ServiceItem{}, s.Snapshot().Services...)
}

// GetByID returns the first service with the given id.
func (s *Store) GetByID(id string) (models.ServiceItem, bool) {
	for _, svc := range s.Snapshot().Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return models.ServiceItem{}, false
}

func (s *Store) GetCategoryByID(id string) (models.ServiceCategory, bool) {
	for _, c := range s.Snapshot().Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.ServiceCategory{}, false
}

func (s *Store) GetSubcategoriesByCategory(categoryID string) []models.SubCategory {
	out := []models.SubCategory{}
	for _, sub := range s.Snapshot().Subcategories {
		if sub.CategoryID == categoryID {
			out = append(out, sub)
		}
	}
	return out
}

func (s *Store) GetServicesByCategory(categoryID string) []models.ServiceItem {
	out := []models.ServiceItem{}
	for _, svc := range s.Snapshot().Services {
		if svc.CategoryID == categoryID {
			out = append(out, svc)
		}
	}
	return out
}

// Filter keeps services whose title or description contains query
// (case-insensitive) and whose category is in categories. An empty query or
// an empty category set does not restrict.
func (s *Store) Filter(query string, categories []string) []models.ServiceItem {
	observability.SearchQueriesTotal.WithLabelValues("filter").Inc()

	q := strings.ToLower(query)
	allowed := categorySet(categories)
	out := []models.ServiceItem{}
	for _, svc := range s.Snapshot().Services {
		if !inCategories(svc, allowed) {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(svc.Title), q) ||
			strings.Contains(strings.ToLower(svc.Description), q) {
			out = append(out, svc)
		}
	}
	return out
}

// Explore matches services where any searchable field contains any query
// token, restricted to categories, then ranks them by the first token.
func (s *Store) Explore(query string, categories []string) []models.ServiceItem {
	observability.SearchQueriesTotal.WithLabelValues("explore").Inc()

	tokens := strings.Fields(strings.ToLower(query))
	allowed := categorySet(categories)
	out := []models.ServiceItem{}
	for _, svc := range s.Snapshot().Services {
		if !inCategories(svc, allowed) {
			continue
		}
		if len(tokens) == 0 || matchesAny(svc, tokens) {
			out = append(out, svc)
		}
	}
	return search.Rank(out, query)
}

func matchesAny(svc models.ServiceItem, tokens []string) bool {
	for _, tok := range tokens {
		if search.Matches(svc, tok) {
			return true
		}
	}
	return false
}

func categorySet(categories []string) map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

func inCategories(svc models.ServiceItem, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[svc.CategoryID]
	return ok
}
