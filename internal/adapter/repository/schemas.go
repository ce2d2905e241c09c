package repository

import "github.com/hifzhub/murajaah/pkg/filterexpr"

var listDueSchema = filterexpr.Schema{
	Filter: map[string]filterexpr.FilterField{
		"plan_id": {
			Kind: filterexpr.KindNumber,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "PlanID"},
		},
		"confidence": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "MinConfidence",
				filterexpr.OpLTE: "MaxConfidence",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		Default: "due_at",
		Keys: map[string]struct{}{
			"due_at":     {},
			"confidence": {},
			"created_at": {},
		},
	},
}

var listLedgerSchema = filterexpr.Schema{
	Filter: map[string]filterexpr.FilterField{
		"kind": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Kind"},
		},
		"points": {
			Kind: filterexpr.KindNumber,
			Ops:  map[filterexpr.Op]string{filterexpr.OpGTE: "MinPoints"},
		},
		"created_at": {
			Kind: filterexpr.KindTimestamp,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpGTE: "From",
				filterexpr.OpLTE: "To",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		Default:     "created_at",
		DefaultDesc: true,
		Keys: map[string]struct{}{
			"created_at": {},
			"points":     {},
		},
	},
}

// orderColumns whitelists the SQL expression for each order key so that
// user input never reaches the query text directly.
var orderColumns = map[string]string{
	"due_at":     "due_at",
	"confidence": "confidence_score",
	"created_at": "created_at",
	"points":     "points",
}

func orderClause(key string, desc bool) string {
	col, ok := orderColumns[key]
	if !ok {
		col = "created_at"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
