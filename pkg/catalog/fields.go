// Package catalog holds the client side of the remote catalog platform:
// the search/aggregate API, the customization definition API and the
// variant lookup API. Everything untyped the platform returns is converted
// to the typed domain model here and nowhere else.
package catalog

// Field paths understood by the catalog search API.
const (
	FieldVisible         = "visible"
	FieldActualPrice     = "price.actualPrice.amount"
	FieldName            = "name"
	FieldCollectionIds   = "collections.id"
	FieldOptionNames     = "options.name"
	FieldChoiceNames     = "options.choices.name"
	FieldChoiceIds       = "options.choices.id"
	FieldInventoryStatus = "inventory.availabilityStatus"
)

// Filter documents are the API's schema-less query trees. The helpers below
// are the only way filters are built so the shape stays in one place.

func And(clauses ...map[string]any) map[string]any {
	return map[string]any{"$and": clauses}
}

func Eq(field string, value any) map[string]any {
	return map[string]any{field: map[string]any{"$eq": value}}
}

func Gte(field string, value any) map[string]any {
	return map[string]any{field: map[string]any{"$gte": value}}
}

func Lte(field string, value any) map[string]any {
	return map[string]any{field: map[string]any{"$lte": value}}
}

// HasSome matches records where the (array) field contains at least one of
// the values.
func HasSome(field string, values []string) map[string]any {
	anyValues := make([]any, len(values))
	for i, v := range values {
		anyValues[i] = v
	}
	return map[string]any{field: map[string]any{"$hasSome": anyValues}}
}

// Conjoin collapses zero or more clauses: nil for none, the bare clause for
// one, an $and for more.
func Conjoin(clauses []map[string]any) map[string]any {
	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	default:
		return And(clauses...)
	}
}
