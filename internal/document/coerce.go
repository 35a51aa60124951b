package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/jsonapi-utils/internal/domain"
	"github.com/phrazzld/jsonapi-utils/internal/store"
)

// ErrUnsupportedInput is returned for inputs the builder cannot render.
var ErrUnsupportedInput = errors.New("unsupported document input")

// coerce turns the builder input into a relation, a record slice or a
// single record. Plain structures, optionally wrapped in a {"data": ...}
// envelope, become records through model when one is given.
func coerce(ctx context.Context, input any, model store.Model) (any, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case store.Relation, []domain.Record, domain.Record:
		return v, nil
	case map[string]any:
		if data, ok := v["data"]; ok {
			return coerce(ctx, data, model)
		}
		return coerceMaps(ctx, []map[string]any{v}, true, model)
	case []map[string]any:
		return coerceMaps(ctx, v, false, model)
	case []any:
		items := make([]map[string]any, 0, len(v))
		for i, e := range v {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", ErrUnsupportedInput, i, e)
			}
			items = append(items, m)
		}
		return coerceMaps(ctx, items, false, model)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
}

func coerceMaps(ctx context.Context, items []map[string]any, single bool, model store.Model) (any, error) {
	if model == nil {
		if single {
			return domain.MapRecord(items[0]), nil
		}
		return domain.Records(items...), nil
	}

	recs := make([]domain.Record, 0, len(items))
	for _, item := range items {
		rec, err := model.New(item)
		if errors.Is(err, store.ErrUnknownAttribute) {
			return lookup(ctx, items, single, model)
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if single {
		return recs[0], nil
	}
	return recs, nil
}

// lookup finds the records identified by the plain structures' ids. A
// single structure whose record does not exist fails with
// store.ErrRecordNotFound.
func lookup(ctx context.Context, items []map[string]any, single bool, model store.Model) (any, error) {
	ids := make([]any, 0, len(items))
	for _, item := range items {
		if id, ok := item["id"]; ok && id != nil {
			ids = append(ids, id)
		}
	}
	if !single {
		return model.WhereIDs(ids...), nil
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("record without id: %w", store.ErrRecordNotFound)
	}
	found, err := model.WhereIDs(ids[0]).Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("record %s: %w", domain.FormatID(ids[0]), store.ErrRecordNotFound)
	}
	return found[0], nil
}

func isCollection(records any) bool {
	switch records.(type) {
	case store.Relation, []domain.Record:
		return true
	}
	return false
}
