package postgres

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// PostModel builds posts from decoded JSON structures and looks them up in
// the posts table.
type PostModel struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.Model = (*PostModel)(nil)

// NewPostModel creates a PostModel.
func NewPostModel(db store.DBTX, logger *slog.Logger) *PostModel {
	return &PostModel{db: db, logger: logger}
}

// New implements store.Model.
func (m *PostModel) New(attrs map[string]any) (domain.Record, error) {
	var (
		p   domain.Post
		err error
	)
	for key, value := range attrs {
		switch key {
		case "id":
			p.ID, err = toInt64(value)
		case "title":
			p.Title, err = toString(value)
		case "body":
			p.Body, err = toString(value)
		case "user_id":
			p.UserID, err = toInt64(value)
		case "category_id":
			if value != nil {
				var id int64
				id, err = toInt64(value)
				p.CategoryID = &id
			}
		case "created_at":
			p.CreatedAt, err = toTime(value)
		default:
			return nil, fmt.Errorf("post %q: %w", key, store.ErrUnknownAttribute)
		}
		if err != nil {
			return nil, fmt.Errorf("post %q: %w", key, err)
		}
	}
	return &p, nil
}

// WhereIDs implements store.Model.
func (m *PostModel) WhereIDs(ids ...any) store.Relation {
	return NewRelation(m.db, PostsTable, m.logger).Where(map[string]any{"id": int64IDs(ids)})
}

// int64IDs converts ids for use as a bigint array argument. Unconvertible
// ids are dropped since they cannot match a row.
func int64IDs(ids []any) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if n, err := toInt64(id); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("unsupported integer value %T", v)
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("unsupported string value %T", v)
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case nil:
		return time.Time{}, nil
	}
	return time.Time{}, fmt.Errorf("unsupported time value %T", v)
}
