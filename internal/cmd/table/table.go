// Package table converts catalog data into rows for table output.
package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/locallift"
	"github.com/agentstation/locallift/internal/cmd/emoji"
	"github.com/agentstation/locallift/pkg/catalogs"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxCell is the widest a free-text cell gets in the narrow table.
const maxCell = 40

// BusinessesToTableData converts businesses to table format. isFavorite
// marks favorite rows; wide adds the deal and external id columns.
func BusinessesToTableData(businesses []catalogs.Business, isFavorite func(*catalogs.Business) bool, wide bool) Data {
	headers := []string{"", "ID", "Name", "Category", "Rating", "Reviews", "Address"}
	align := []Align{AlignCenter, AlignRight, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Deal", "Source")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(businesses))
	for i := range businesses {
		b := &businesses[i]
		mark := ""
		if isFavorite != nil && isFavorite(b) {
			mark = emoji.Favorite
		}
		row := []string{
			mark,
			strconv.Itoa(b.ID),
			cell(b.Name, wide),
			cell(b.Category, wide),
			FormatRating(b.AverageRating(), b.ReviewCount()),
			strconv.Itoa(b.ReviewCount()),
			cell(b.Address, wide),
		}
		if wide {
			row = append(row, dash(b.Deal), dash(b.ExternalID))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// BusinessToTableData converts one business to a property table.
func BusinessToTableData(b *catalogs.Business, favorite bool) Data {
	fav := "no"
	if favorite {
		fav = emoji.Favorite + " yes"
	}
	rows := [][]string{
		{"ID", strconv.Itoa(b.ID)},
		{"Name", b.Name},
		{"Category", dash(b.Category)},
		{"Address", dash(b.Address)},
		{"Deal", dash(b.Deal)},
		{"Rating", FormatRating(b.AverageRating(), b.ReviewCount())},
		{"Reviews", strconv.Itoa(b.ReviewCount())},
		{"Favorite", fav},
		{"Source", dash(b.ExternalID)},
		{"Key", b.Key()},
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// ReviewsToTableData converts reviews to table format, oldest first.
func ReviewsToTableData(reviews []catalogs.Review) Data {
	rows := make([][]string, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, []string{
			Stars(r.Rating),
			r.Time().Local().Format(time.DateTime),
			r.Text,
		})
	}
	return Data{
		Headers:         []string{"Rating", "Date", "Review"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft},
	}
}

// StatsToTableData converts catalog statistics to a property table.
func StatsToTableData(s catalogs.Stats) Data {
	top := make([]string, 0, len(s.TopCategories))
	for _, c := range s.TopCategories {
		top = append(top, fmt.Sprintf("%s (%d)", c.Category, c.Count))
	}

	mostReviewed := "-"
	if s.MostReviewed != nil {
		mostReviewed = fmt.Sprintf("%s (%d reviews)", s.MostReviewed.Name, s.MostReviewed.ReviewCount())
	}

	ratings := make([]int, 0, len(s.RatingDistribution))
	for r := range s.RatingDistribution {
		ratings = append(ratings, r)
	}
	sort.Ints(ratings)
	dist := make([]string, 0, len(ratings))
	for _, r := range ratings {
		dist = append(dist, fmt.Sprintf("%d%s: %d", r, emoji.Star, s.RatingDistribution[r]))
	}

	return Data{
		Headers: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Total businesses", strconv.Itoa(s.Total)},
			{"Average rating", strconv.FormatFloat(s.AverageRating, 'f', 2, 64)},
			{"Top categories", dash(strings.Join(top, ", "))},
			{"Most reviewed", mostReviewed},
			{"Rating distribution", dash(strings.Join(dist, ", "))},
			{"Favorites", strconv.Itoa(s.Favorites)},
			{"Deals", strconv.Itoa(s.Deals)},
		},
	}
}

// CategoriesToTableData lists categories one per row.
func CategoriesToTableData(categories []string) Data {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c})
	}
	return Data{Headers: []string{"Category"}, Rows: rows}
}

// FormatRating renders an average rating with one decimal, or "-" when unreviewed.
func FormatRating(avg float64, count int) string {
	if count == 0 {
		return "-"
	}
	return strconv.FormatFloat(avg, 'f', 1, 64)
}

// Stars renders a 1-5 rating as filled and empty stars.
func Stars(rating int) string {
	rating = max(0, min(rating, catalogs.MaxRating))
	return strings.Repeat(emoji.Star, rating) + strings.Repeat(emoji.EmptyStar, catalogs.MaxRating-rating)
}

// Truncate shortens s to n runes, ending with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}

func cell(s string, wide bool) string {
	if wide {
		return dash(s)
	}
	return dash(Truncate(s, maxCell))
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// ImportResultToTableData summarizes an import, one row per source.
func ImportResultToTableData(r *locallift.ImportResult) Data {
	rows := make([][]string, 0, len(r.Sources)+1)
	for _, s := range r.Sources {
		status := emoji.Success
		if s.Error != "" {
			status = emoji.Error + " " + Truncate(s.Error, maxCell)
		}
		rows = append(rows, []string{
			s.Source.String(),
			strconv.Itoa(s.Candidates),
			s.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	rows = append(rows, []string{
		"total",
		strconv.Itoa(r.Candidates),
		fmt.Sprintf("%d kept, %d duplicates, %d chains", r.Businesses, r.Duplicates, r.Chains),
		fmt.Sprintf("%d favorites", r.Favorites),
	})
	return Data{
		Headers:         []string{"Source", "Candidates", "Time", "Status"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
}
