package tasks

import (
	"net/url"
	"regexp"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter holds the optional list criteria. Nil pointers and empty strings
// mean the filter is not applied.
type Filter struct {
	Completed   *bool
	CreatedAt   *time.Time // date precision
	CompletedAt *time.Time // date precision
	DueDate     *time.Time
	DueBefore   *time.Time
	DueAfter    *time.Time
	Priority    string
	Title       string
	Category    string
	Search      string
}

// Op identifies a comparison operator in a filter clause
type Op string

const (
	OpEq       Op = "eq"       // exact match
	OpDate     Op = "date"     // timestamp falls on the given calendar day
	OpLte      Op = "lte"      // less than or equal
	OpGte      Op = "gte"      // greater than or equal
	OpContains Op = "contains" // case-insensitive substring
	OpSearch   Op = "search"   // substring over title or description
)

// Clause is one (field, operator, value) predicate
type Clause struct {
	Field string
	Op    Op
	Value interface{}
}

// FilterFromQuery parses filter criteria from request query parameters.
// Unparsable values are ignored rather than failing the request.
func FilterFromQuery(q url.Values) Filter {
	var f Filter

	if v := q.Get("completed"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Completed = &b
		}
	}
	f.CreatedAt = parseDate(q.Get("created_at"))
	f.CompletedAt = parseDate(q.Get("completed_at"))
	f.DueDate = parseDate(q.Get("due_date"))
	f.DueBefore = parseDate(q.Get("due_date_before"))
	f.DueAfter = parseDate(q.Get("due_date_after"))

	if v := q.Get("priority"); v == PriorityLow || v == PriorityMedium || v == PriorityHigh {
		f.Priority = v
	}
	f.Title = q.Get("title")
	f.Category = q.Get("category")
	f.Search = q.Get("search")

	return f
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return nil
	}
	return &t
}

// Clauses returns the active predicates in a fixed order, so the resulting
// query is deterministic and testable.
func (f Filter) Clauses() []Clause {
	var clauses []Clause

	if f.Completed != nil {
		clauses = append(clauses, Clause{"completed", OpEq, *f.Completed})
	}
	if f.CreatedAt != nil {
		clauses = append(clauses, Clause{"createdAt", OpDate, *f.CreatedAt})
	}
	if f.CompletedAt != nil {
		clauses = append(clauses, Clause{"completedAt", OpDate, *f.CompletedAt})
	}
	if f.DueDate != nil {
		clauses = append(clauses, Clause{"dueDate", OpDate, *f.DueDate})
	}
	if f.DueBefore != nil {
		clauses = append(clauses, Clause{"dueDate", OpLte, *f.DueBefore})
	}
	if f.DueAfter != nil {
		clauses = append(clauses, Clause{"dueDate", OpGte, *f.DueAfter})
	}
	if f.Priority != "" {
		clauses = append(clauses, Clause{"priority", OpEq, f.Priority})
	}
	if f.Title != "" {
		clauses = append(clauses, Clause{"title", OpContains, f.Title})
	}
	if f.Category != "" {
		clauses = append(clauses, Clause{"category", OpEq, f.Category})
	}
	if f.Search != "" {
		clauses = append(clauses, Clause{"", OpSearch, f.Search})
	}

	return clauses
}

// BuildQuery compiles the owner scope plus the filter clauses into a Mongo
// query document. The owner predicate is always present.
func BuildQuery(ownerID string, clauses []Clause) bson.M {
	query := bson.M{"userId": ownerID}

	for _, clause := range clauses {
		switch clause.Op {
		case OpEq:
			query[clause.Field] = clause.Value
		case OpDate:
			day := clause.Value.(time.Time)
			query[clause.Field] = bson.M{
				"$gte": day,
				"$lt":  day.AddDate(0, 0, 1),
			}
		case OpLte:
			mergeRange(query, clause.Field, "$lte", clause.Value)
		case OpGte:
			mergeRange(query, clause.Field, "$gte", clause.Value)
		case OpContains:
			query[clause.Field] = containsRegex(clause.Value.(string))
		case OpSearch:
			term := containsRegex(clause.Value.(string))
			query["$or"] = []bson.M{
				{"title": term},
				{"description": term},
			}
		}
	}

	return query
}

// mergeRange folds before/after bounds on the same field into one document
func mergeRange(query bson.M, field, op string, value interface{}) {
	if existing, ok := query[field].(bson.M); ok {
		existing[op] = value
		return
	}
	query[field] = bson.M{op: value}
}

func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
