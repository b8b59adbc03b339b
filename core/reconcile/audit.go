package reconcile

import (
	"sort"

	"order-manager/core/models"
)

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDeleteOrder removes an order whose hold cannot be matched to a stock size.
	ActionDeleteOrder ActionType = "delete_order"
)

// Orphan reasons.
const (
	ReasonStockNotFound   = "stock not found"
	ReasonSizeNotStocked  = "size not stocked"
	ReasonInvalidQuantity = "invalid quantity"
)

// Line is the state of one size of one stock. Committed is the quantity held
// by active orders.
type Line struct {
	StockID   string `json:"stockId"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Available int    `json:"available"`
	Committed int    `json:"committed"`
	Orders    int    `json:"orders"`
	Negative  bool   `json:"negative"`
}

// Orphan is an order whose hold does not resolve to a stock size.
type Orphan struct {
	OrderID string `json:"orderId"`
	ItemID  string `json:"itemId"`
	Size    string `json:"size"`
	Qty     int    `json:"qty"`
	Reason  string `json:"reason"`
}

// Action represents a planned mutation operation.
type Action struct {
	Type   ActionType `json:"type"`
	Key    string     `json:"key"`
	Reason string     `json:"reason"`
}

// Summary provides aggregate counts for a report.
type Summary struct {
	Stocks           int `json:"stocks"`
	Orders           int `json:"orders"`
	Sizes            int `json:"sizes"`
	Available        int `json:"available"`
	Committed        int `json:"committed"`
	NegativeCounters int `json:"negativeCounters"`
	Orphans          int `json:"orphans"`
	PurgeActions     int `json:"purgeActions"`
}

// Report is the result of Audit.
type Report struct {
	Lines   []Line   `json:"lines"`
	Orphans []Orphan `json:"orphans"`
	Actions []Action `json:"actions"`
	Summary Summary  `json:"summary"`
}

// Options controls which actions Audit plans and whether they may run.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
	// DoPurge plans deletion of orphan orders.
	DoPurge bool
	// Confirmed indicates the user has confirmed destructive actions.
	Confirmed bool
}

// CanApply reports whether planned actions may be executed.
func (o Options) CanApply() bool {
	return o.Confirmed && !o.DryRun
}

// Audit compares stock counters with the orders holding them. Every size of
// every stock yields one Line; orders that point at an unknown stock, an
// unstocked size or a non-positive quantity are reported as orphans.
func Audit(stocks []models.Stock, orders []models.Order, opts Options) Report {
	type key struct{ stock, size string }

	byID := make(map[string]models.Stock, len(stocks))
	for _, s := range stocks {
		byID[s.ID] = s
	}

	committed := make(map[key]int)
	counts := make(map[key]int)
	report := Report{Lines: []Line{}, Orphans: []Orphan{}, Actions: []Action{}}

	for _, o := range orders {
		reason := ""
		stock, ok := byID[o.ItemID]
		switch {
		case o.Qty <= 0:
			reason = ReasonInvalidQuantity
		case !ok:
			reason = ReasonStockNotFound
		default:
			if _, stocked := stock.Sizes[o.Size]; !stocked {
				reason = ReasonSizeNotStocked
			}
		}

		if reason != "" {
			report.Orphans = append(report.Orphans, Orphan{
				OrderID: o.ID, ItemID: o.ItemID, Size: o.Size, Qty: o.Qty, Reason: reason,
			})
			continue
		}

		k := key{o.ItemID, o.Size}
		committed[k] += o.Qty
		counts[k]++
	}

	for _, s := range stocks {
		for _, size := range s.Sizes.Labels() {
			k := key{s.ID, size}
			line := Line{
				StockID:   s.ID,
				Category:  s.Category,
				Name:      s.Name,
				Size:      size,
				Available: s.Sizes[size],
				Committed: committed[k],
				Orders:    counts[k],
				Negative:  s.Sizes[size] < 0,
			}
			report.Lines = append(report.Lines, line)

			report.Summary.Sizes++
			report.Summary.Available += line.Available
			report.Summary.Committed += line.Committed
			if line.Negative {
				report.Summary.NegativeCounters++
			}
		}
	}

	sort.SliceStable(report.Lines, func(i, j int) bool {
		a, b := report.Lines[i], report.Lines[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.StockID != b.StockID {
			return a.StockID < b.StockID
		}
		return a.Size < b.Size
	})
	sort.Slice(report.Orphans, func(i, j int) bool {
		return report.Orphans[i].OrderID < report.Orphans[j].OrderID
	})

	if opts.DoPurge {
		for _, orphan := range report.Orphans {
			report.Actions = append(report.Actions, Action{
				Type:   ActionDeleteOrder,
				Key:    orphan.OrderID,
				Reason: orphan.Reason,
			})
		}
	}

	report.Summary.Stocks = len(stocks)
	report.Summary.Orders = len(orders)
	report.Summary.Orphans = len(report.Orphans)
	report.Summary.PurgeActions = len(report.Actions)
	return report
}
