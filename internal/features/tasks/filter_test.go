package tasks

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("completed", "True")
	q.Set("created_at", "2024-05-01")
	q.Set("due_date_before", "2024-06-01")
	q.Set("due_date_after", "2024-05-15")
	q.Set("priority", "high")
	q.Set("search", "shopping")

	f := FilterFromQuery(q)
	require.NotNil(t, f.Completed)
	require.True(t, *f.Completed)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *f.CreatedAt)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *f.DueBefore)
	require.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), *f.DueAfter)
	require.Equal(t, "high", f.Priority)
	require.Equal(t, "shopping", f.Search)
}

func TestFilterFromQueryIgnoresInvalid(t *testing.T) {
	q := url.Values{}
	q.Set("completed", "maybe")
	q.Set("created_at", "yesterday")
	q.Set("priority", "urgent")

	f := FilterFromQuery(q)
	require.Nil(t, f.Completed)
	require.Nil(t, f.CreatedAt)
	require.Empty(t, f.Priority)
	require.Empty(t, f.Clauses())
}

func TestClausesFixedOrder(t *testing.T) {
	completed := true
	f := Filter{
		Completed: &completed,
		Priority:  PriorityLow,
		Search:    "milk",
	}

	clauses := f.Clauses()
	require.Len(t, clauses, 3)
	require.Equal(t, "completed", clauses[0].Field)
	require.Equal(t, "priority", clauses[1].Field)
	require.Equal(t, OpSearch, clauses[2].Op)
}

func TestBuildQueryAlwaysScopesOwner(t *testing.T) {
	query := BuildQuery("user-1", nil)
	require.Equal(t, bson.M{"userId": "user-1"}, query)
}

func TestBuildQueryDateClause(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	query := BuildQuery("user-1", []Clause{{"createdAt", OpDate, day}})

	rng, ok := query["createdAt"].(bson.M)
	require.True(t, ok)
	require.Equal(t, day, rng["$gte"])
	require.Equal(t, day.AddDate(0, 0, 1), rng["$lt"])
}

func TestBuildQueryMergesDueDateBounds(t *testing.T) {
	after := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f := Filter{DueBefore: &before, DueAfter: &after}

	query := BuildQuery("user-1", f.Clauses())
	rng, ok := query["dueDate"].(bson.M)
	require.True(t, ok)
	require.Equal(t, before, rng["$lte"])
	require.Equal(t, after, rng["$gte"])
}

func TestBuildQuerySearch(t *testing.T) {
	query := BuildQuery("user-1", []Clause{{"", OpSearch, "shopping"}})

	or, ok := query["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)

	title := or[0]["title"].(primitive.Regex)
	require.Equal(t, "shopping", title.Pattern)
	require.Equal(t, "i", title.Options)
	require.Equal(t, title, or[1]["description"].(primitive.Regex))
}

func TestBuildQueryQuotesRegexMeta(t *testing.T) {
	query := BuildQuery("user-1", []Clause{{"title", OpContains, "a+b (urgent)"}})

	rx := query["title"].(primitive.Regex)
	require.Equal(t, `a\+b \(urgent\)`, rx.Pattern)
}
