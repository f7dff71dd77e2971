package properties

import "strings"

// FilterProperties applies the active criteria to an in-memory slice. Filters
// apply in a fixed order: keyword, city, type, bedrooms, price range,
// amenities. Pagination fields on the criteria are ignored here.
func FilterProperties(list []Property, c SearchCriteria) []Property {
	out := make([]Property, 0, len(list))
	for _, p := range list {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Property, c SearchCriteria) bool {
	if c.Keyword != "" && !keywordMatch(p, c.Keyword) {
		return false
	}
	// city compares case-insensitively, matching the server's city query
	if c.City != "" && c.City != "all" && !strings.EqualFold(p.City, c.City) {
		return false
	}
	if c.PropertyType != "" && c.PropertyType != "all" && p.PropertyType != c.PropertyType {
		return false
	}
	if c.Bedrooms != nil && p.Bedrooms < *c.Bedrooms {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	for _, want := range c.Amenities {
		if !hasAmenity(p.Amenities, want) {
			return false
		}
	}
	return true
}

// keywordMatch is a case-insensitive substring match against title, area and
// city. A hit in any one field is enough.
func keywordMatch(p Property, keyword string) bool {
	kw := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(p.Title), kw) ||
		strings.Contains(strings.ToLower(p.Area), kw) ||
		strings.Contains(strings.ToLower(p.City), kw)
}

func hasAmenity(have []string, want string) bool {
	for _, a := range have {
		if strings.EqualFold(a, want) {
			return true
		}
	}
	return false
}
