package goquery

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xwalk"
)

// itemName is the base node name of block items.
const itemName = "item"

// ResolveItems maps every element child of container into an item. Each row
// is extracted once per allowed component, and the extraction producing the
// most attributes wins; ties go to the component listed first. It returns nil
// when no component is allowed.
//
// Every row is recorded in the path map as <parentPath>/item<n>, n counting
// from 1.
func (m *Mapper) ResolveItems(container *goquery.Selection, allowed []string, parentPath string) []*xwalk.Item {
	if len(allowed) == 0 {
		return nil
	}

	rows := container.Children()
	items := make([]*xwalk.Item, 0, rows.Length())
	rows.Each(func(i int, row *goquery.Selection) {
		rowPath := fmt.Sprintf("%s/item%d", parentPath, i+1)
		if m.Paths != nil {
			m.Paths.Record(rowPath, row.Get(0))
		}

		candidates := make([]xwalk.Candidate, 0, len(allowed))
		for _, id := range allowed {
			desc := m.Schema.Definition.ResolveByID(id)
			candidates = append(candidates, xwalk.Candidate{
				ComponentID: id,
				Model:       desc.Model,
				Properties:  m.ExtractProperties(row, desc.Model, xwalk.ModeBlockItem),
			})
		}
		slices.SortStableFunc(candidates, func(a, b xwalk.Candidate) int {
			return cmp.Compare(b.Count(), a.Count())
		})

		best := candidates[0]
		attrs := make(xwalk.Properties, best.Count()+2)
		for k, v := range best.Properties {
			attrs[k] = v
		}
		attrs[xwalk.PrimaryTypeKey] = xwalk.PrimaryType
		attrs[xwalk.ResourceTypeKey] = xwalk.ItemResourceType

		m.logger().Debug("item resolved",
			"path", rowPath,
			"component", best.ComponentID,
			"attributes", best.Count(),
			"candidates", len(candidates),
		)

		items = append(items, &xwalk.Item{
			Type:       "element",
			Name:       xwalk.NodeName(itemName, i),
			Attributes: attrs,
			Candidates: candidates,
		})
	})
	return items
}
