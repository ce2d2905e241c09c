package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// bindOrder parses "key [asc|desc]" and writes PrimaryKey/PrimaryDesc on the
// params struct. Only whitelisted keys are accepted.
func bindOrder(dest reflect.Value, raw string, schema OrderSchema) error {
	if schema.Default == "" {
		return errors.New("order schema default key required")
	}

	key := schema.Default
	desc := schema.DefaultDesc

	raw = strings.TrimSpace(raw)
	if raw != "" {
		parts := strings.Fields(raw)
		if len(parts) > 2 {
			return fmt.Errorf("invalid order segment %q", raw)
		}
		if _, ok := schema.Keys[parts[0]]; !ok {
			return fmt.Errorf("field %q cannot be used for ordering", parts[0])
		}
		key = parts[0]
		desc = false
		if len(parts) == 2 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return fmt.Errorf("invalid direction %q", parts[1])
			}
		}
	}

	if err := assign(dest, "PrimaryKey", key); err != nil {
		return err
	}
	return assign(dest, "PrimaryDesc", desc)
}
