package services

import (
	"math"
	"sort"
	"strings"

	"moonhem/models"
)

// Property-type labels produced by LabelType.
const (
	LabelHouse     = "House"
	LabelApartment = "Apartment"
	LabelTownhouse = "Townhouse"
	LabelPlot      = "Plot"
	LabelHome      = "Home"
)

// LabelType maps a free-form property-type tag onto the closed label
// set via case-insensitive substring rules. Unrecognized tags are
// labelled Home. Rule order matters: house/villa is checked first.
func LabelType(tag string) string {
	if tag == "" {
		return LabelHome
	}
	s := strings.ToLower(tag)
	switch {
	case strings.Contains(s, "house") || strings.Contains(s, "villa"):
		return LabelHouse
	case strings.Contains(s, "apartment") || strings.Contains(s, "lägenhet"):
		return LabelApartment
	case strings.Contains(s, "town"):
		return LabelTownhouse
	case strings.Contains(s, "plot") || strings.Contains(s, "tomt"):
		return LabelPlot
	}
	return LabelHome
}

// Search runs the full filter → sort → paginate pipeline over a
// normalized listing set. The input slice is never mutated and the
// result is deterministic for identical inputs. Total counts the
// filtered set before pagination.
func Search(listings []*models.Listing, f models.FilterState, page, pageSize int) models.ResultPage {
	list := listings

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		list = filterListings(list, func(l *models.Listing) bool {
			return strings.Contains(searchText(l), q)
		})
	}

	if f.Type != "" && f.Type != models.TypeAll {
		list = filterListings(list, func(l *models.Listing) bool {
			label := strings.ToLower(LabelType(l.PropertyType))
			switch f.Type {
			case models.TypeApartment, models.TypeHouse, models.TypeTownhouse, models.TypePlot:
				return label == f.Type
			}
			// Unknown selector values bypass the filter.
			return true
		})
	}

	if min, ok := models.NumericBound(f.RoomsMin); ok {
		list = filterListings(list, func(l *models.Listing) bool { return l.Rooms >= min })
	}
	if max, ok := models.NumericBound(f.RoomsMax); ok {
		list = filterListings(list, func(l *models.Listing) bool { return l.Rooms <= max })
	}
	if min, ok := models.NumericBound(f.PriceMin); ok {
		list = filterListings(list, func(l *models.Listing) bool { return l.Price >= min })
	}
	if max, ok := models.NumericBound(f.PriceMax); ok {
		list = filterListings(list, func(l *models.Listing) bool { return l.Price <= max })
	}

	list = sortListings(list, f.Sort)

	total := len(list)
	if pageSize < 1 {
		pageSize = 1
	}
	pageCount := int(math.Ceil(float64(total) / float64(pageSize)))
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return models.ResultPage{
		Items:     list[start:end],
		Total:     total,
		Page:      page,
		PageCount: pageCount,
	}
}

// searchText is the haystack for the free-text filter: address, city,
// type label, and description of one listing.
func searchText(l *models.Listing) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{l.Address, l.City, LabelType(l.PropertyType), l.Description} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func filterListings(list []*models.Listing, keep func(*models.Listing) bool) []*models.Listing {
	out := make([]*models.Listing, 0, len(list))
	for _, l := range list {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// sortListings orders a copy of the list by the given mode. "newest"
// keeps the server's incoming order; there is no date field to compare.
func sortListings(list []*models.Listing, mode string) []*models.Listing {
	sorted := make([]*models.Listing, len(list))
	copy(sorted, list)

	switch mode {
	case models.SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case models.SortAreaDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LivingArea > sorted[j].LivingArea })
	}
	return sorted
}
