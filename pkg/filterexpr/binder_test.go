package filterexpr

import (
	"testing"
	"time"
)

type listMsg struct {
	filter  string
	orderBy string
}

func (m listMsg) GetFilter() string  { return m.filter }
func (m listMsg) GetOrderBy() string { return m.orderBy }

type ledgerParams struct {
	Kind        string
	MinPoints   int64
	From        time.Time
	PrimaryKey  string
	PrimaryDesc bool
}

func ledgerSchema() Schema {
	return Schema{
		Filter: map[string]FilterField{
			"kind":       {Kind: KindString, Ops: map[Op]string{OpEQ: "Kind"}},
			"points":     {Kind: KindNumber, Ops: map[Op]string{OpGTE: "MinPoints"}},
			"created_at": {Kind: KindTimestamp, Ops: map[Op]string{OpGTE: "From"}},
		},
		Order: OrderSchema{
			Default:     "created_at",
			DefaultDesc: true,
			Keys:        map[string]struct{}{"created_at": {}, "points": {}},
		},
	}
}

func TestBindConjunction(t *testing.T) {
	msg := listMsg{filter: `kind == "memorization_review" && points >= 100`}
	var params ledgerParams
	if err := Bind(msg, &params, ledgerSchema()); err != nil {
		t.Fatal(err)
	}
	if params.Kind != "memorization_review" {
		t.Errorf("Kind = %q", params.Kind)
	}
	if params.MinPoints != 100 {
		t.Errorf("MinPoints = %d", params.MinPoints)
	}
	if params.PrimaryKey != "created_at" || !params.PrimaryDesc {
		t.Errorf("default order = %s desc=%v", params.PrimaryKey, params.PrimaryDesc)
	}
}

func TestBindTimestampLiteral(t *testing.T) {
	msg := listMsg{filter: `created_at >= timestamp("2026-01-01T00:00:00Z")`}
	var params ledgerParams
	if err := Bind(msg, &params, ledgerSchema()); err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !params.From.Equal(want) {
		t.Errorf("From = %v, want %v", params.From, want)
	}
}

func TestBindOrderOverride(t *testing.T) {
	msg := listMsg{orderBy: "points desc"}
	var params ledgerParams
	if err := Bind(msg, &params, ledgerSchema()); err != nil {
		t.Fatal(err)
	}
	if params.PrimaryKey != "points" || !params.PrimaryDesc {
		t.Errorf("order = %s desc=%v, want points desc", params.PrimaryKey, params.PrimaryDesc)
	}
}

func TestBindRejections(t *testing.T) {
	cases := []struct {
		name string
		msg  listMsg
	}{
		{"unknown field", listMsg{filter: `secret == "x"`}},
		{"disallowed operator", listMsg{filter: `kind >= "a"`}},
		{"disjunction", listMsg{filter: `points >= 1 || points <= 5`}},
		{"wrong literal kind", listMsg{filter: `kind == 5`}},
		{"unknown order key", listMsg{orderBy: "secret desc"}},
		{"bad direction", listMsg{orderBy: "points sideways"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var params ledgerParams
			if err := Bind(tc.msg, &params, ledgerSchema()); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestBindEmptyInputsUseDefaults(t *testing.T) {
	var params ledgerParams
	if err := Bind(listMsg{}, &params, ledgerSchema()); err != nil {
		t.Fatal(err)
	}
	if params.PrimaryKey != "created_at" {
		t.Errorf("PrimaryKey = %q, want created_at", params.PrimaryKey)
	}
	if params.Kind != "" || params.MinPoints != 0 {
		t.Error("filter fields must stay zero")
	}
}
