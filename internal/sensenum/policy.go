package sensenum

import (
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
)

// NumberingPolicy decides when a lone sense counts as having numbered
// subsenses.
type NumberingPolicy struct {
	// RequireSubsenseData demands that the sense actually has visible
	// subsenses; otherwise configuration alone decides.
	RequireSubsenseData bool `yaml:"require_subsense_data"`
	// SearchDepth is how many configuration levels below the sense node are
	// searched for an enabled sense list with a numbering style. 1 looks at
	// direct children only. Disabled nodes are never searched through.
	SearchDepth int `yaml:"search_depth"`
}

// DefaultPolicy looks at direct children and requires visible subsenses.
var DefaultPolicy = NumberingPolicy{RequireSubsenseData: true, SearchDepth: 1}

// SubsensesNumbered reports whether the sense rendered by senseNode has
// subsenses that request numbering.
func (p NumberingPolicy) SubsensesNumbered(senseNode *dictconfig.Node, visibleSubsenses int) bool {
	if p.RequireSubsenseData && visibleSubsenses == 0 {
		return false
	}
	depth := p.SearchDepth
	if depth < 1 {
		depth = 1
	}
	return hasNumberedSenseList(senseNode, depth)
}

func hasNumberedSenseList(n *dictconfig.Node, depth int) bool {
	if n == nil || depth == 0 {
		return false
	}
	for _, c := range n.Children {
		if !c.IsEnabled() {
			continue
		}
		if c.Senses != nil && c.Senses.NumberingStyle != "" {
			return true
		}
		if hasNumberedSenseList(c, depth-1) {
			return true
		}
	}
	return false
}
