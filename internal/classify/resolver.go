// Package classify maps raw image-classifier labels to waste categories.
package classify

import "strings"

const (
	CategoryPlastic = "PLASTIC"
	CategoryPaper   = "PAPER"
	CategoryGlass   = "GLASS"
	CategoryMetal   = "METAL"

	// CategoryUnverified is reported when a low-confidence paper label is
	// downgraded (the item usually turns out to be textile/cloth).
	CategoryUnverified = "UNVERIFIED"
)

type rule struct {
	category string
	keywords []string
}

// Rules are evaluated in order and the first keyword hit wins, so the
// order of this table is part of the resolver contract.
var defaultRules = []rule{
	{CategoryPlastic, []string{"plastic", "bottle", "polymer"}},
	{CategoryPaper, []string{"paper", "cardboard", "carton"}},
	{CategoryGlass, []string{"glass", "jar"}},
	{CategoryMetal, []string{"metal", "can", "tin", "aluminium", "aluminum"}},
}

// Resolver decides whether a classifier label qualifies for a point
// award and under which waste category.
type Resolver struct {
	rules          []rule
	paperThreshold float64
}

func NewResolver(paperThreshold float64) *Resolver {
	return &Resolver{rules: defaultRules, paperThreshold: paperThreshold}
}

// Resolve returns (eligible, category) for a raw label and its model
// confidence. Labels resolving to PAPER below the confidence threshold
// are downgraded to an ineligible UNVERIFIED outcome. Unmatched labels
// come back ineligible with the original label unchanged.
func (r *Resolver) Resolve(label string, confidence float64) (bool, string) {
	low := strings.ToLower(label)
	if low == "" {
		return false, label
	}
	for _, rl := range r.rules {
		for _, kw := range rl.keywords {
			if strings.Contains(low, kw) {
				if rl.category == CategoryPaper && confidence < r.paperThreshold {
					return false, CategoryUnverified
				}
				return true, rl.category
			}
		}
	}
	return false, label
}

// Categories lists the category names in rule order.
func (r *Resolver) Categories() []string {
	out := make([]string, 0, len(r.rules))
	for _, rl := range r.rules {
		out = append(out, rl.category)
	}
	return out
}
