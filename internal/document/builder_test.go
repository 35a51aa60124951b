package document

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/pagination"
	"github.com/phrazzld/jsonapi-utils/internal/query"
	"github.com/phrazzld/jsonapi-utils/internal/resource"
	"github.com/phrazzld/jsonapi-utils/internal/store"
	"github.com/phrazzld/jsonapi-utils/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullConfig = Config{
	BaseURL:                "http://example.com/api",
	LinksIncludePagination: true,
	MetaIncludeRecordCount: true,
	MetaIncludePageCount:   true,
}

func postSchema() *resource.Schema {
	return &resource.Schema{
		Type:       "posts",
		Attributes: []string{"title", "body"},
		Filters:    []string{"title"},
		Relationships: []resource.Relationship{
			{Name: "author", Type: "users", ForeignKey: "user_id"},
		},
	}
}

func postRecords() []domain.Record {
	return domain.Records(
		map[string]any{"id": 1, "title": "Lorem", "body": "Body 4", "user_id": 1},
		map[string]any{"id": 2, "title": "Dolor", "body": "Body 2", "user_id": 1},
		map[string]any{"id": 3, "title": "Dolor", "body": "Body 3", "user_id": 2},
		map[string]any{"id": 4, "title": "Dolor", "body": "Body 1", "user_id": 2},
		map[string]any{"id": 5, "title": "Ipsum", "body": "Body 5", "user_id": 3},
	)
}

func newBuilder(t *testing.T, paginator string, cfg Config) *Builder {
	t.Helper()
	engine, err := pagination.NewEngine(paginator, pagination.Settings{DefaultPageSize: 10, MaximumPageSize: 20}, nil, nil, nil)
	require.NoError(t, err)
	return NewBuilder(engine, cfg, nil)
}

func newRequest(target, action string) *query.Request {
	return query.NewRequest(httptest.NewRequest(http.MethodGet, target, nil), action, postSchema())
}

// render round-trips a document through JSON the way clients see it.
func render(t *testing.T, doc *Document) testutils.CollectionResponse {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var out testutils.CollectionResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestBuildPagedCollection(t *testing.T) {
	b := newBuilder(t, pagination.Paged, fullConfig)
	req := newRequest("/api/posts?page[number]=2&page[size]=2&sort=id", query.ActionIndex)

	doc, err := b.Build(context.Background(), req, postRecords(), Options{})
	require.NoError(t, err)

	got := render(t, doc)
	assert.Equal(t, []string{"3", "4"}, got.IDs())
	assert.Equal(t, map[string]any{"record_count": float64(5), "page_count": float64(3)}, got.Meta)
	assert.Equal(t, map[string]string{
		"first": "http://example.com/api/posts?page%5Bnumber%5D=1&page%5Bsize%5D=2&sort=id",
		"prev":  "http://example.com/api/posts?page%5Bnumber%5D=1&page%5Bsize%5D=2&sort=id",
		"next":  "http://example.com/api/posts?page%5Bnumber%5D=3&page%5Bsize%5D=2&sort=id",
		"last":  "http://example.com/api/posts?page%5Bnumber%5D=3&page%5Bsize%5D=2&sort=id",
	}, got.Links)

	first := got.Data[0]
	assert.Equal(t, "posts", first.Type)
	assert.Equal(t, map[string]any{"title": "Dolor", "body": "Body 3"}, first.Attributes)
	assert.Equal(t, "http://example.com/api/posts/3", first.Links["self"])
	assert.JSONEq(t,
		`{"links":{"self":"http://example.com/api/posts/3/relationships/author","related":"http://example.com/api/posts/3/author"},"data":{"type":"users","id":"2"}}`,
		string(first.Relationships["author"]))
}

func TestBuildPageFarPastTheEnd(t *testing.T) {
	b := newBuilder(t, pagination.Paged, fullConfig)
	req := newRequest("/api/posts?page[number]=4611686018427387905&page[size]=2", query.ActionIndex)
	require.Empty(t, req.Validate(b.engine.NewContext(req.Params.Page).Rules()))

	doc, err := b.Build(context.Background(), req, postRecords(), Options{})
	require.NoError(t, err)

	got := render(t, doc)
	assert.Empty(t, got.Data)
	assert.NotContains(t, got.Links, "next")
	assert.Equal(t, "http://example.com/api/posts?page%5Bnumber%5D=3&page%5Bsize%5D=2", got.Links["last"])
	assert.Equal(t, float64(5), got.Meta["record_count"])
}

func TestBuildSortsMaterializedRecords(t *testing.T) {
	b := newBuilder(t, pagination.None, Config{})
	req := newRequest("/api/posts?sort=title,-body", query.ActionIndex)

	doc, err := b.Build(context.Background(), req, postRecords()[:4], Options{})
	require.NoError(t, err)

	got := render(t, doc)
	assert.Equal(t, []string{"3", "2", "4", "1"}, got.IDs())
	assert.Nil(t, got.Links)
	assert.Nil(t, got.Meta)
}

func TestBuildIgnoresFilterOnMaterializedRecords(t *testing.T) {
	b := newBuilder(t, pagination.None, Config{MetaIncludeRecordCount: true})
	req := newRequest("/api/posts?filter[title]=Lorem", query.ActionIndex)

	doc, err := b.Build(context.Background(), req, postRecords(), Options{})
	require.NoError(t, err)

	got := render(t, doc)
	assert.Len(t, got.Data, 5)
	assert.Equal(t, float64(5), got.Meta["record_count"])
}

func TestBuildOffsetCollection(t *testing.T) {
	b := newBuilder(t, pagination.Offset, Config{LinksIncludePagination: true})
	req := newRequest("/api/posts?page[offset]=3&page[limit]=1", query.ActionIndex)

	doc, err := b.Build(context.Background(), req, postRecords()[:4], Options{})
	require.NoError(t, err)

	got := render(t, doc)
	assert.Equal(t, []string{"4"}, got.IDs())
	assert.NotContains(t, got.Links, "next")
	assert.Equal(t, "/api/posts?page%5Blimit%5D=1&page%5Boffset%5D=2", got.Links["prev"])
	assert.Equal(t, "/api/posts?page%5Blimit%5D=1&page%5Boffset%5D=3", got.Links["last"])
}

func TestBuildRelationCountsFilteredSetOnce(t *testing.T) {
	rel := testutils.NewMemRelation("posts", postRecords())
	b := newBuilder(t, pagination.Paged, fullConfig)
	req := newRequest("/api/posts?filter[title]=Dolor&page[size]=2&sort=-body", query.ActionIndex)

	doc, err := b.Build(context.Background(), req, rel, Options{})
	require.NoError(t, err)

	got := render(t, doc)
	assert.Equal(t, []string{"3", "2"}, got.IDs())
	assert.Equal(t, float64(3), got.Meta["record_count"])
	assert.Equal(t, float64(2), got.Meta["page_count"])
	assert.Contains(t, got.Links, "next")

	counts := rel.Stats().Counts()
	require.Len(t, counts, 1)
	assert.Equal(t, "DISTINCT posts.id", counts[0].Expr)
	assert.False(t, counts[0].Includes)
	assert.Equal(t, 1, rel.Stats().Loads())
}

func TestBuildRelationCountFallsBackToIncludes(t *testing.T) {
	rel := testutils.NewMemRelation("posts", postRecords()).
		Includes(store.Include{Table: "users", ForeignKey: "id"}).
		Where(map[string]any{"users.first_name": "Ada"})
	b := newBuilder(t, pagination.Paged, Config{MetaIncludeRecordCount: true})
	req := newRequest("/api/posts", query.ActionIndex)

	doc, err := b.Build(context.Background(), req, rel, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), doc.Meta["record_count"])

	counts := rel.(*testutils.MemRelation).Stats().Counts()
	require.Len(t, counts, 2)
	assert.ErrorIs(t, counts[0].Err, store.ErrStatementInvalid)
	assert.False(t, counts[0].Includes)
	assert.NoError(t, counts[1].Err)
	assert.True(t, counts[1].Includes)
}

func TestBuildOptions(t *testing.T) {
	b := newBuilder(t, pagination.Paged, fullConfig)
	count := int64(40)

	t.Run("pagination disabled", func(t *testing.T) {
		req := newRequest("/api/posts?page[size]=2", query.ActionIndex)
		doc, err := b.Build(context.Background(), req, postRecords(), Options{Paginate: Bool(false)})
		require.NoError(t, err)

		got := render(t, doc)
		assert.Len(t, got.Data, 5)
		assert.Nil(t, got.Links)
		assert.Equal(t, map[string]any{"record_count": float64(5)}, got.Meta)
	})

	t.Run("count override", func(t *testing.T) {
		req := newRequest("/api/posts?page[size]=2", query.ActionIndex)
		doc, err := b.Build(context.Background(), req, postRecords(), Options{Count: &count})
		require.NoError(t, err)

		got := render(t, doc)
		assert.Equal(t, float64(40), got.Meta["record_count"])
		assert.Equal(t, float64(20), got.Meta["page_count"])
	})

	t.Run("filter disabled", func(t *testing.T) {
		rel := testutils.NewMemRelation("posts", postRecords())
		req := newRequest("/api/posts?filter[title]=Dolor", query.ActionIndex)
		doc, err := b.Build(context.Background(), req, rel, Options{Filter: Bool(false)})
		require.NoError(t, err)
		assert.Len(t, render(t, doc).Data, 5)
	})

	t.Run("resource override", func(t *testing.T) {
		schema := &resource.Schema{Type: "articles", Attributes: []string{"title"}}
		req := newRequest("/api/posts", query.ActionIndex)
		doc, err := b.Build(context.Background(), req, postRecords()[:1], Options{Resource: schema})
		require.NoError(t, err)

		got := render(t, doc)
		assert.Equal(t, "articles", got.Data[0].Type)
		assert.Equal(t, map[string]any{"title": "Lorem"}, got.Data[0].Attributes)
	})
}

func TestBuildCustomMetaKeys(t *testing.T) {
	cfg := fullConfig
	cfg.RecordCountKey = "total"
	cfg.PageCountKey = "pages"
	b := newBuilder(t, pagination.Paged, cfg)

	doc, err := b.Build(context.Background(), newRequest("/api/posts", query.ActionIndex), postRecords(), Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"total": int64(5), "pages": int64(1)}, doc.Meta)
}

func TestBuildSetsUpCustomGetActions(t *testing.T) {
	b := newBuilder(t, pagination.None, Config{})

	collection := newRequest("/api/users/2/posts?sort=-id", "posts")
	doc, err := b.Build(context.Background(), collection, postRecords(), Options{})
	require.NoError(t, err)
	assert.Equal(t, query.ActionIndex, collection.Shape())
	assert.Equal(t, []string{"5", "4", "3", "2", "1"}, render(t, doc).IDs())

	single := newRequest("/api/posts/1/preview?sort=-id", "preview")
	_, err = b.Build(context.Background(), single, postRecords()[0], Options{})
	require.NoError(t, err)
	assert.Equal(t, query.ActionShow, single.Shape())

	standard := newRequest("/api/posts", query.ActionIndex)
	_, err = b.Build(context.Background(), standard, postRecords()[0], Options{})
	require.NoError(t, err)
	assert.Equal(t, query.ActionIndex, standard.Shape())
}

func TestBuildSingle(t *testing.T) {
	b := newBuilder(t, pagination.Paged, fullConfig)
	req := newRequest("/api/posts/2", query.ActionShow)

	doc, err := b.Build(context.Background(), req, postRecords()[1], Options{})
	require.NoError(t, err)
	assert.Nil(t, doc.Links)
	assert.Nil(t, doc.Meta)

	obj, ok := doc.Data.(*resource.ResourceObject)
	require.True(t, ok)
	assert.Equal(t, "2", obj.ID)

	empty, err := b.Build(context.Background(), req, nil, Options{})
	require.NoError(t, err)
	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":null}`, string(raw))
}

func TestBuildPlainStructures(t *testing.T) {
	b := newBuilder(t, pagination.None, Config{})
	req := newRequest("/api/posts", query.ActionIndex)

	t.Run("envelope with list", func(t *testing.T) {
		input := map[string]any{"data": []any{
			map[string]any{"id": 7, "title": "Seven"},
			map[string]any{"id": 8, "title": "Eight"},
		}}
		doc, err := b.Build(context.Background(), req, input, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"7", "8"}, render(t, doc).IDs())
	})

	t.Run("single map", func(t *testing.T) {
		doc, err := b.Build(context.Background(), req, map[string]any{"id": "abc", "title": "x"}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "abc", doc.Data.(*resource.ResourceObject).ID)
	})

	t.Run("unsupported element", func(t *testing.T) {
		_, err := b.Build(context.Background(), req, []any{"nope"}, Options{})
		assert.ErrorIs(t, err, ErrUnsupportedInput)
	})

	t.Run("unsupported input", func(t *testing.T) {
		_, err := b.Build(context.Background(), req, 42, Options{})
		assert.ErrorIs(t, err, ErrUnsupportedInput)
	})
}

func TestBuildModelCoercion(t *testing.T) {
	rel := testutils.NewMemRelation("posts", postRecords())
	model := &testutils.MemModel{Attributes: []string{"title", "body", "user_id"}, Relation: rel}
	b := newBuilder(t, pagination.None, Config{})
	req := newRequest("/api/posts", query.ActionIndex)

	t.Run("known attributes are instantiated", func(t *testing.T) {
		input := []map[string]any{{"id": 9, "title": "New"}}
		doc, err := b.Build(context.Background(), req, input, Options{Model: model})
		require.NoError(t, err)
		got := render(t, doc)
		assert.Equal(t, []string{"9"}, got.IDs())
		assert.Equal(t, 0, rel.Stats().Loads())
	})

	t.Run("unknown attributes fall back to an id lookup", func(t *testing.T) {
		input := []map[string]any{{"id": 2, "rating": 5}, {"id": 4, "rating": 1}}
		doc, err := b.Build(context.Background(), req, input, Options{Model: model})
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "4"}, render(t, doc).IDs())
	})

	t.Run("single lookup", func(t *testing.T) {
		show := newRequest("/api/posts/3", query.ActionShow)
		doc, err := b.Build(context.Background(), show, map[string]any{"data": map[string]any{"id": 3, "rating": 5}}, Options{Model: model})
		require.NoError(t, err)
		assert.Equal(t, "3", doc.Data.(*resource.ResourceObject).ID)
	})

	t.Run("single lookup without a match", func(t *testing.T) {
		show := newRequest("/api/posts/99", query.ActionShow)
		_, err := b.Build(context.Background(), show, map[string]any{"id": 99, "rating": 5}, Options{Model: model})
		assert.ErrorIs(t, err, store.ErrRecordNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})
}

func TestBuildPropagatesResourceErrors(t *testing.T) {
	b := newBuilder(t, pagination.None, Config{})
	records := domain.Records(map[string]any{"id": 1}, map[string]any{"title": "no id"})

	_, err := b.Build(context.Background(), newRequest("/api/posts", query.ActionIndex), records, Options{})
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestBuildWithoutSchema(t *testing.T) {
	b := newBuilder(t, pagination.None, Config{})
	req := query.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil), query.ActionIndex, nil)

	_, err := b.Build(context.Background(), req, postRecords(), Options{})
	assert.ErrorIs(t, err, ErrNoSchema)
}

type buildObservation struct {
	kind      string
	resources int
}

type recordingObserver struct{ seen []buildObservation }

func (o *recordingObserver) ObserveBuild(kind string, resources int, _ time.Duration) {
	o.seen = append(o.seen, buildObservation{kind, resources})
}

func TestBuildNotifiesObserver(t *testing.T) {
	obs := &recordingObserver{}
	b := newBuilder(t, pagination.Paged, Config{}).WithObserver(obs)

	_, err := b.Build(context.Background(), newRequest("/api/posts?page[size]=3", query.ActionIndex), postRecords(), Options{})
	require.NoError(t, err)
	_, err = b.Build(context.Background(), newRequest("/api/posts/1", query.ActionShow), postRecords()[0], Options{})
	require.NoError(t, err)

	assert.Equal(t, []buildObservation{{"collection", 3}, {"single", 1}}, obs.seen)
}
