package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testResource = Resource{
	Table: "bootcamps",
	Fields: []Field{
		{Name: "id", Column: "id"},
		{Name: "name", Column: "name"},
		{Name: "email", Column: "email"},
		{Name: "averageCost", Column: "average_cost"},
		{Name: "housing", Column: "housing"},
		{Name: "careers", Column: "careers", Array: true},
		{Name: "createdAt", Column: "created_at"},
	},
}

func buildSQL(t *testing.T, values url.Values) (string, []interface{}) {
	t.Helper()
	b, _ := testResource.Build(Parse(values))
	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)
	return sqlStr, args
}

func TestBuild_ComparisonOperator(t *testing.T) {
	t.Parallel()

	sqlStr, args := buildSQL(t, url.Values{"averageCost[lte]": {"10000"}})
	assert.Contains(t, sqlStr, "average_cost <= $1")
	assert.Equal(t, []interface{}{int64(10000)}, args)
}

func TestBuild_EqualityCoercion(t *testing.T) {
	t.Parallel()

	sqlStr, args := buildSQL(t, url.Values{"housing": {"true"}})
	assert.Contains(t, sqlStr, "housing = $1")
	assert.Equal(t, []interface{}{true}, args)
}

func TestBuild_ArrayMembership(t *testing.T) {
	t.Parallel()

	sqlStr, args := buildSQL(t, url.Values{"careers[in]": {"Business,UI/UX"}})
	assert.Contains(t, sqlStr, "careers && $1")
	assert.Equal(t, []interface{}{[]string{"Business", "UI/UX"}}, args)
}

// An operator-like token smuggled into a key must not reach the SQL text.
func TestBuild_InjectionSafety(t *testing.T) {
	t.Parallel()

	sqlStr, args := buildSQL(t, url.Values{
		"name[ne]":                      {"x"},
		"name; DROP TABLE bootcamps;--": {"y"},
		"unknowncolumn":                 {"z"},
	})
	assert.NotContains(t, sqlStr, "DROP TABLE")
	assert.NotContains(t, sqlStr, "<>")
	assert.NotContains(t, sqlStr, "WHERE")
	assert.Empty(t, args)
}

func TestBuild_ProjectionKeepsID(t *testing.T) {
	t.Parallel()

	sqlStr, _ := buildSQL(t, url.Values{"select": {"name,email,bogus"}})
	assert.Contains(t, sqlStr, "SELECT id, name, email FROM bootcamps")
	assert.NotContains(t, sqlStr, "bogus")
}

func TestBuild_DefaultSortNewestFirst(t *testing.T) {
	t.Parallel()

	sqlStr, _ := buildSQL(t, url.Values{})
	assert.Contains(t, sqlStr, "ORDER BY created_at DESC")
}

func TestBuild_ExplicitSortOrder(t *testing.T) {
	t.Parallel()

	sqlStr, _ := buildSQL(t, url.Values{"sort": {"name,-averageCost"}})
	assert.Contains(t, sqlStr, "ORDER BY name ASC, average_cost DESC")
}

func TestBuild_Pagination(t *testing.T) {
	t.Parallel()

	sqlStr, _ := buildSQL(t, url.Values{"page": {"3"}, "limit": {"10"}})
	assert.Contains(t, sqlStr, "LIMIT 10")
	assert.Contains(t, sqlStr, "OFFSET 20")
}

func TestBuild_CountSharesFilters(t *testing.T) {
	t.Parallel()

	_, count := testResource.Build(Parse(url.Values{"averageCost[gte]": {"100"}, "page": {"5"}}))
	sqlStr, args, err := count.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "COUNT(*)")
	assert.Contains(t, sqlStr, "average_cost >= $1")
	assert.NotContains(t, sqlStr, "LIMIT")
	assert.Equal(t, []interface{}{int64(100)}, args)
}
