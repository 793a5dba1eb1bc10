package stats

import (
	"sort"

	"github.com/JungleeAadmi/component-storage/pkg/models"
)

// TopCategoryLimit caps the categories reported by Compute.
const TopCategoryLimit = 10

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type Statistics struct {
	TotalComponents int             `json:"total_components"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalCategories int             `json:"total_categories"`
	LowStockCount   int             `json:"low_stock_count"`
	TopCategories   []CategoryCount `json:"top_categories"`
}

// IsLowStock reports a tracked component at or below its minimum. A zero minimum means
// the component is not tracked, even when it is empty.
func IsLowStock(c models.Component) bool {
	return c.MinQuantity > 0 && c.Quantity <= c.MinQuantity
}

// ListLowStock returns the low-stock components, lowest quantity first. Ties keep their
// input order.
func ListLowStock(cs []models.ComponentWithLocation) []models.ComponentWithLocation {
	low := make([]models.ComponentWithLocation, 0)
	for _, c := range cs {
		if IsLowStock(c.Component) {
			low = append(low, c)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

func Compute(cs []models.Component) Statistics {
	stats := Statistics{
		TotalComponents: len(cs),
		TopCategories:   []CategoryCount{},
	}

	counts := make(map[string]int)
	var order []string
	for _, c := range cs {
		if c.Quantity > 0 {
			stats.TotalQuantity += c.Quantity
		}
		if IsLowStock(c) {
			stats.LowStockCount++
		}

		category := c.EffectiveCategory()
		if category == "" {
			continue
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	stats.TotalCategories = len(counts)
	for _, category := range order {
		stats.TopCategories = append(stats.TopCategories, CategoryCount{Category: category, Count: counts[category]})
	}
	sort.SliceStable(stats.TopCategories, func(i, j int) bool {
		return stats.TopCategories[i].Count > stats.TopCategories[j].Count
	})
	if len(stats.TopCategories) > TopCategoryLimit {
		stats.TopCategories = stats.TopCategories[:TopCategoryLimit]
	}

	return stats
}
