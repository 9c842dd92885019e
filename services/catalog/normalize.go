package catalog

import "servicehub/models"

// NormalizeRecord converts a stored record into the canonical ServiceItem.
// Legacy records carry fixedPrice or price instead of once_price or hourly_price.
func NormalizeRecord(rec models.ServiceRecord) models.ServiceItem {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.ServiceItem{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		CategoryID:    rec.CategoryID,
		SubcategoryID: rec.SubcategoryID,
		Image:         rec.Image,
		OncePrice:     firstPrice(rec.OncePrice, rec.FixedPrice),
		HourlyPrice:   firstPrice(rec.HourlyPrice, rec.Price),
		Location:      rec.Location,
		Rating:        rec.Rating,
		Tags:          tags,
		Provider:      rec.Provider,
		Availability:  rec.Availability,
	}
}

func firstPrice(candidates ...*float64) float64 {
	for _, p := range candidates {
		if p != nil {
			return *p
		}
	}
	return 0
}

// denormalize fills category and subcategory names from the taxonomy.
func denormalize(items []models.ServiceItem, categories []models.ServiceCategory, subcategories []models.SubCategory) {
	catNames := make(map[string]string, len(categories))
	for _, c := range categories {
		catNames[c.ID] = c.Name
	}
	subNames := make(map[string]string, len(subcategories))
	for _, s := range subcategories {
		subNames[s.ID] = s.Name
	}
	for i := range items {
		if name, ok := catNames[items[i].CategoryID]; ok {
			items[i].CategoryName = name
		}
		if name, ok := subNames[items[i].SubcategoryID]; ok {
			items[i].SubcategoryName = name
		}
	}
}
