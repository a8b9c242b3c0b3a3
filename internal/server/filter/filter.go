// Package filter parses business listing query parameters.
package filter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/constants"
	"github.com/agentstation/locallift/pkg/errors"
)

// BusinessFilter is a catalog filter plus pagination.
type BusinessFilter struct {
	catalogs.Filter
	Limit  int
	Offset int
}

// ParseBusinessFilter extracts business filter parameters from an HTTP request.
//
//	min_rating=4&category=coffee&name=blue&favorites=true&deals=true&sort=rating&limit=20&offset=40
func ParseBusinessFilter(r *http.Request) (BusinessFilter, error) {
	q := r.URL.Query()

	f := BusinessFilter{
		Filter: catalogs.Filter{
			Category: strings.TrimSpace(q.Get("category")),
			Name:     strings.TrimSpace(q.Get("name")),
		},
		Limit: constants.DefaultPageSize,
	}

	if v := q.Get("min_rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil || rating < 0 || rating > 5 {
			return f, errors.NewValidationError("min_rating", v, "must be a number between 0 and 5")
		}
		f.MinRating = rating
	}

	var err error
	if f.FavoritesOnly, err = parseBool(q.Get("favorites"), "favorites"); err != nil {
		return f, err
	}
	if f.DealsOnly, err = parseBool(q.Get("deals"), "deals"); err != nil {
		return f, err
	}

	switch sort := q.Get("sort"); sort {
	case "", "id":
	case "rating":
		f.SortByRating = true
	default:
		return f, errors.NewValidationError("sort", sort, "must be 'id' or 'rating'")
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, errors.NewValidationError("limit", v, "must be a positive integer")
		}
		f.Limit = min(n, constants.MaxPageSize)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.NewValidationError("offset", v, "must be a non-negative integer")
		}
		f.Offset = n
	}

	return f, nil
}

// Page returns the window of businesses selected by Limit and Offset.
func (f BusinessFilter) Page(businesses []catalogs.Business) []catalogs.Business {
	if f.Offset >= len(businesses) {
		return []catalogs.Business{}
	}
	end := len(businesses)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return businesses[f.Offset:end]
}

// CacheKey identifies the filtered, paginated listing.
func (f BusinessFilter) CacheKey() string {
	var b strings.Builder
	b.WriteString("businesses")
	b.WriteString("|r=" + strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	b.WriteString("|c=" + strings.ToLower(f.Category))
	b.WriteString("|n=" + strings.ToLower(f.Name))
	b.WriteString("|f=" + strconv.FormatBool(f.FavoritesOnly))
	b.WriteString("|d=" + strconv.FormatBool(f.DealsOnly))
	b.WriteString("|s=" + strconv.FormatBool(f.SortByRating))
	b.WriteString("|l=" + strconv.Itoa(f.Limit))
	b.WriteString("|o=" + strconv.Itoa(f.Offset))
	return b.String()
}

func parseBool(v, field string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.NewValidationError(field, v, "must be true or false")
	}
	return b, nil
}
