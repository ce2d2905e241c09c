// Package filterexpr binds AIP-style filter and order_by request strings
// onto typed query-parameter structs. Filters are parsed as CEL expressions
// restricted to conjunctions of field comparisons, so list endpoints never
// interpolate raw input into SQL.
package filterexpr

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Msg is any request DTO exposing raw filter and order_by inputs.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// ValueKind describes the literal type a filter field accepts.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
)

// Op is a supported comparison operator.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
)

// FilterField whitelists one filterable field: which operators it accepts
// and which params-struct field each operator populates.
type FilterField struct {
	Kind ValueKind
	Ops  map[Op]string
}

// OrderSchema whitelists order keys and sets the default.
type OrderSchema struct {
	Default     string
	DefaultDesc bool
	Keys        map[string]struct{}
}

// Schema aggregates filter and order rules for one list endpoint.
type Schema struct {
	Filter map[string]FilterField
	Order  OrderSchema
}

// Bind parses msg's filter and order_by and populates the params struct.
func Bind[M Msg, P any](msg M, params *P, schema Schema) error {
	if params == nil {
		return errors.New("params must not be nil")
	}

	dest := reflect.ValueOf(params).Elem()
	if dest.Kind() != reflect.Struct {
		return errors.New("params must point to a struct")
	}

	if err := bindFilter(dest, msg.GetFilter(), schema.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if err := bindOrder(dest, msg.GetOrderBy(), schema.Order); err != nil {
		return fmt.Errorf("order_by: %w", err)
	}
	return nil
}

func bindFilter(dest reflect.Value, filter string, fields map[string]FilterField) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}
	if len(fields) == 0 {
		return errors.New("no filterable fields defined")
	}

	env, err := buildEnv(fields)
	if err != nil {
		return err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return fmt.Errorf("convert AST: %w", err)
	}

	conjuncts, err := conjunctsOf(parsed.GetExpr())
	if err != nil {
		return err
	}

	for _, expr := range conjuncts {
		field, op, value, err := comparisonOf(expr)
		if err != nil {
			return err
		}

		rule, ok := fields[field]
		if !ok {
			return fmt.Errorf("field %q is not filterable", field)
		}
		target, ok := rule.Ops[op]
		if !ok {
			return fmt.Errorf("operator %q is not allowed for field %q", op, field)
		}
		if err := checkKind(rule.Kind, value); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		if err := assign(dest, target, value); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
	}
	return nil
}

func buildEnv(fields map[string]FilterField) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, rule := range fields {
		var celType *cel.Type
		switch rule.Kind {
		case KindString:
			celType = cel.StringType
		case KindNumber:
			celType = cel.DoubleType
		case KindTimestamp:
			celType = cel.TimestampType
		default:
			return nil, fmt.Errorf("field %q: unsupported kind %s", name, rule.Kind)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

// conjunctsOf flattens a chain of logical ANDs into its atomic comparisons.
// Any other logical operator is rejected.
func conjunctsOf(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}
	call := expr.GetCallExpr()
	if call == nil {
		return nil, errors.New("expected a comparison expression")
	}

	switch call.Function {
	case "_&&_":
		var out []*exprpb.Expr
		for _, arg := range call.Args {
			nested, err := conjunctsOf(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
		return out, nil
	case "_||_", "_?_:_", "!_":
		return nil, fmt.Errorf("operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func comparisonOf(expr *exprpb.Expr) (field string, op Op, value any, err error) {
	call := expr.GetCallExpr()
	if call == nil {
		return "", "", nil, errors.New("expected a comparison")
	}

	switch call.Function {
	case "_==_":
		op = OpEQ
	case "_>=_":
		op = OpGTE
	case "_<=_":
		op = OpLTE
	default:
		return "", "", nil, fmt.Errorf("operator %q is not supported", call.Function)
	}
	if call.Target != nil || len(call.Args) != 2 {
		return "", "", nil, fmt.Errorf("operator %q expects two operands", op)
	}

	ident := call.Args[0].GetIdentExpr()
	if ident == nil {
		return "", "", nil, errors.New("left operand must be a field name")
	}

	value, err = literalOf(call.Args[1])
	if err != nil {
		return "", "", nil, err
	}
	return ident.Name, op, value, nil
}

func literalOf(expr *exprpb.Expr) (any, error) {
	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" && len(call.Args) == 1 {
		inner, err := literalOf(call.Args[0])
		if err != nil {
			return nil, err
		}
		raw, ok := inner.(string)
		if !ok {
			return nil, errors.New("timestamp() expects a string literal")
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", raw, err)
		}
		return ts, nil
	}

	konst := expr.GetConstExpr()
	if konst == nil {
		return nil, errors.New("right operand must be a literal")
	}
	switch v := konst.ConstantKind.(type) {
	case *exprpb.Constant_StringValue:
		return v.StringValue, nil
	case *exprpb.Constant_Int64Value:
		return float64(v.Int64Value), nil
	case *exprpb.Constant_Uint64Value:
		return float64(v.Uint64Value), nil
	case *exprpb.Constant_DoubleValue:
		return v.DoubleValue, nil
	default:
		return nil, fmt.Errorf("unsupported literal %T", v)
	}
}

func checkKind(kind ValueKind, value any) error {
	switch kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected a string literal, got %T", value)
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("expected a numeric literal, got %T", value)
		}
	case KindTimestamp:
		if _, ok := value.(time.Time); !ok {
			return fmt.Errorf("expected timestamp(...), got %T", value)
		}
	}
	return nil
}

// assign converts the parsed literal onto the named params-struct field.
func assign(dest reflect.Value, name string, value any) error {
	field := dest.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf("params struct %s has no field %q", dest.Type(), name)
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %q", name)
	}

	rv := reflect.ValueOf(value)
	if rv.Type() == field.Type() {
		field.Set(rv)
		return nil
	}

	if f, ok := value.(float64); ok {
		switch field.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			if f != math.Trunc(f) {
				return fmt.Errorf("field %q expects an integer, got %v", name, f)
			}
			field.SetInt(int64(f))
			return nil
		case reflect.Float32, reflect.Float64:
			field.SetFloat(f)
			return nil
		}
	}
	if rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("field %q: cannot assign %T", name, value)
}
