package table

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krew-solutions/ascetic-datasync-go/datasync/expression/domain/public"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/paging"
	"github.com/krew-solutions/ascetic-datasync-go/datasync/rest"
)

type Movie struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type Person struct{}

type TodoItem struct{}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "movies", DefaultName[Movie]())
	assert.Equal(t, "movies", DefaultName[*Movie]())
	assert.Equal(t, "people", DefaultName[Person]())
	assert.Equal(t, "todoitems", DefaultName[TodoItem]())
}

type recorder struct {
	tables  []string
	targets []paging.Target
}

func (r *recorder) Table(name string) paging.RawFetcher {
	r.tables = append(r.tables, name)
	return paging.RawFetcherFunc(func(_ context.Context, target paging.Target) (paging.RawPage, error) {
		r.targets = append(r.targets, target)
		return paging.RawPage{Items: []json.RawMessage{json.RawMessage(`{"id":"1","title":"Heat","year":1995}`)}}, nil
	})
}

func TestQueryIsBoundToTable(t *testing.T) {
	source := &recorder{}
	movies := Of[Movie](source)
	assert.Equal(t, []string{"movies"}, source.tables)
	assert.Equal(t, "movies", movies.Name())

	q := movies.Query().Where(public.NumberField("Year").Gt(public.NumberValue(1990)))
	assert.Equal(t, "movies", q.Table())

	items, err := q.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Movie{{ID: "1", Title: "Heat", Year: 1995}}, items)
	require.Len(t, source.targets, 1)
	assert.Equal(t, "$filter=%28year%20gt%201990%29", source.targets[0].Query())
}

func TestItemsSendsQueryAsIs(t *testing.T) {
	source := &recorder{}
	items, err := New[Movie](source, "films").Items("?$top=1&custom=x").Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "$top=1&custom=x", source.targets[0].Query())
}

func TestParseBindsTable(t *testing.T) {
	source := &recorder{}
	movies := Of[Movie](source)

	q, err := movies.Parse("$filter=year%20ge%202000&$orderby=title")
	require.NoError(t, err)
	assert.Equal(t, "movies", q.Table())
	_, err = q.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "$filter=%28year%20ge%202000%29&$orderby=title", source.targets[0].Query())

	_, err = movies.Parse("$top=0")
	assert.Error(t, err)
}

func TestOverREST(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tables/movies", r.URL.Path)
		_, _ = w.Write([]byte(`{"items":[{"id":"7","title":"Se7en","year":1995}],"count":1}`))
	}))
	defer server.Close()

	client, err := rest.NewClient(server.URL)
	require.NoError(t, err)
	stream, err := Of[Movie](SourceOf(client)).Query().IncludeTotalCount(true).ToStream()
	require.NoError(t, err)

	items, err := stream.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Se7en", items[0].Title)
	assert.Equal(t, int64(1), stream.Count().Unwrap())
}
