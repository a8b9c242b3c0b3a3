package osm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/locallift/pkg/constants"
)

// poiKeys are the tag keys matched against the tag alternation.
var poiKeys = []string{"amenity", "shop", "craft"}

// elementTypes are the element kinds queried for every key.
var elementTypes = []string{"node", "way", "relation"}

// SearchRadius returns the search radius in meters for location. Large,
// dense cities get a smaller radius so the query stays within the
// server-side timeout.
func SearchRadius(location string) int {
	l := strings.ToLower(location)
	for _, city := range constants.DenseCities {
		if strings.Contains(l, city) {
			return constants.DenseCitySearchRadius
		}
	}
	return constants.DefaultSearchRadius
}

// RadiusQuery builds the query for POIs matching tags within radius meters of center.
func RadiusQuery(tags string, radius int, center Point) string {
	filter := fmt.Sprintf("(around:%d,%s,%s)", radius, formatCoord(center.Lat), formatCoord(center.Lon))
	return buildQuery("", tags, filter)
}

// AreaQuery builds the fallback query for POIs matching tags inside the
// area whose name is exactly location, case-insensitively.
func AreaQuery(tags, location string) string {
	area := fmt.Sprintf("area[\"name\"~\"^%s$\", i]->.searchArea;\n", escape(regexp.QuoteMeta(strings.TrimSpace(location))))
	return buildQuery(area, tags, "(area.searchArea)")
}

func buildQuery(prelude, tags, filter string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n", constants.OverpassQueryTimeout)
	b.WriteString(prelude)
	b.WriteString("(\n")
	for _, key := range poiKeys {
		for _, typ := range elementTypes {
			fmt.Fprintf(&b, "  %s[\"%s\"~\"%s\", i]%s;\n", typ, key, escape(tags), filter)
		}
	}
	b.WriteString(");\nout center;")
	return b.String()
}

// escape makes s safe inside a double-quoted query string.
func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
