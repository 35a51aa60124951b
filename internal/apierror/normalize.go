package apierror

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Normalize converts an error source into a flat, de-duplicated sequence of
// error objects.
//
// When source has an Errors() method its result is used; otherwise source is
// itself the sequence of entries (a lone entry is a sequence of one). Each
// member is read from a method or field of the entry first and from a map key
// second. Members without a value are omitted and code is always a string.
func Normalize(source any) []Error {
	entries := entriesOf(source)
	out := make([]Error, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		e := normalizeEntry(entry)
		key := fingerprint(e)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

func entriesOf(source any) []any {
	if source == nil {
		return nil
	}
	switch s := source.(type) {
	case []Error:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	case interface{ Errors() []Error }:
		return entriesOf(s.Errors())
	}

	v := reflect.ValueOf(source)
	if m := v.MethodByName("Errors"); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1 {
		return entriesOf(m.Call(nil)[0].Interface())
	}

	if isNil(v) {
		return nil
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = v.Index(i).Interface()
		}
		return out
	}
	return []any{source}
}

func normalizeEntry(entry any) Error {
	switch e := entry.(type) {
	case Error:
		return e
	case *Error:
		if e != nil {
			return *e
		}
		return Error{}
	}

	var out Error
	for _, name := range Members {
		v, ok := member(entry, name)
		if !ok {
			continue
		}
		switch name {
		case "title":
			out.Title = fmt.Sprint(v)
		case "detail":
			out.Detail = fmt.Sprint(v)
		case "id":
			out.ID = fmt.Sprint(v)
		case "code":
			out.Code = fmt.Sprint(v)
		case "source":
			out.Source = v
		case "links":
			out.Links = v
		case "status":
			out.Status = fmt.Sprint(v)
		case "meta":
			out.Meta = v
		}
	}
	return out
}

// member reads one error member from entry: method, then struct field, then
// map key.
func member(entry any, name string) (any, bool) {
	if entry == nil {
		return nil, false
	}
	v := reflect.ValueOf(entry)
	goName := exportedName(name)

	if m := v.MethodByName(goName); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() >= 1 {
		return present(m.Call(nil)[0])
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		if f := v.FieldByName(goName); f.IsValid() && f.CanInterface() {
			return present(f)
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		for _, key := range []string{name, goName} {
			f := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
			if f.IsValid() {
				return present(f)
			}
		}
	}
	return nil, false
}

// present reports a member value unless it is unset: nil, a blank string or
// an empty struct. Zero numbers are values, e.g. code 0.
func present(v reflect.Value) (any, bool) {
	if !v.IsValid() || isNil(v) {
		return nil, false
	}
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		if strings.TrimSpace(v.String()) == "" {
			return nil, false
		}
	case reflect.Struct:
		if v.IsZero() {
			return nil, false
		}
	}
	return v.Interface(), true
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func exportedName(name string) string {
	if name == "id" {
		return "ID"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func fingerprint(e Error) string {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf("%#v", e)
	}
	return string(b)
}
