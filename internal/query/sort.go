// Package query holds the sort and pagination contracts shared by every list
// endpoint.
package query

import (
	"fmt"
	"strings"

	"github.com/stackwise/catalog-api/internal/apierr"
)

// Order is a single "<column> <direction>" pair from a sort expression.
type Order struct {
	Key        string
	Descending bool
}

// ParseSort normalizes a raw sort parameter into an ordered list of Orders,
// validated against the entity's allow-list. Accepted shapes: nil (no sort),
// a single string, or a list of strings. Each entry is "<key>" or
// "<key> <asc|desc>"; an unrecognized direction falls back to ascending.
// Duplicate keys are kept in order, so the later entry decides ties the
// earlier one left unresolved.
func ParseSort(value interface{}, allowed []string) ([]Order, error) {
	if value == nil {
		return nil, nil
	}

	var items []interface{}
	switch v := value.(type) {
	case string:
		items = []interface{}{v}
	case []string:
		items = make([]interface{}, 0, len(v))
		for _, s := range v {
			items = append(items, s)
		}
	case []interface{}:
		items = v
	default:
		return nil, apierr.BadRequest("sort parameter must be a string or an array of strings")
	}

	orders := make([]Order, 0, len(items))
	for _, item := range items {
		raw, ok := item.(string)
		if !ok {
			return nil, apierr.BadRequest("sort parameter must be an array of strings")
		}
		parts := strings.Fields(raw)
		if len(parts) == 0 {
			continue
		}
		key := parts[0]
		if !containsKey(allowed, key) {
			return nil, apierr.InvalidSort(key)
		}
		desc := len(parts) > 1 && strings.EqualFold(parts[1], "desc")
		orders = append(orders, Order{Key: key, Descending: desc})
	}
	return orders, nil
}

// OrderClause renders the Orders as a SQL ORDER BY body for the given table.
// Null values always sort after non-null values, whatever the direction.
func OrderClause(table string, orders []Order) string {
	clauses := make([]string, 0, len(orders))
	for _, o := range orders {
		dir := "ASC"
		if o.Descending {
			dir = "DESC"
		}
		clauses = append(clauses, fmt.Sprintf("%q.%q %s NULLS LAST", table, o.Key, dir))
	}
	return strings.Join(clauses, ", ")
}

func containsKey(allowed []string, key string) bool {
	for _, a := range allowed {
		if a == key {
			return true
		}
	}
	return false
}
