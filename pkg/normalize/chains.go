package normalize

import "strings"

// BigChains lists the large chain businesses excluded from every import.
var BigChains = []string{
	"mcdonald's", "starbucks", "walmart", "subway", "burger king", "wendy's",
	"taco bell", "kfc", "pizza hut", "domino's", "dunkin'", "chipotle", "panera",
	"target", "costco", "panda express", "chick-fil-a", "popeyes", "arby's",
	"jack in the box", "little caesars", "7-eleven", "krispy kreme", "in-n-out",
	"five guys", "buffalo wild wings", "red lobster", "olive garden", "outback",
	"applebee's", "ihop", "denny's", "cheesecake factory", "bj's restaurant",
	"chili's", "wingstop", "raising cane's", "shake shack", "blaze pizza",
	"mod pizza", "safeway", "whole foods", "aldi", "sprouts", "winco", "publix",
	"heb", "kroger", "meijer", "wegmans", "trader joe", "aldi sud", "aldi nord",
	"aldi inc", "aldi group",
}

var normalizedChains = func() []string {
	out := make([]string, 0, len(BigChains))
	for _, chain := range BigChains {
		if n := Normalize(chain); n != "" {
			out = append(out, n)
		}
	}
	return out
}()

// IsBigChain reports whether the normalized name contains the normalized
// form of any known chain. Matching is by substring, so franchise suffixes
// like "McDonald's #4210" match, and so can unrelated names that happen to
// embed a short chain name.
func IsBigChain(name string) bool {
	n := Normalize(name)
	if n == "" {
		return false
	}
	for _, chain := range normalizedChains {
		if strings.Contains(n, chain) {
			return true
		}
	}
	return false
}
