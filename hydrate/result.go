package hydrate

import (
	"fmt"
	"reflect"
	"strings"
)

// Result is the composite document produced by one Run: the root operation's
// output spread at the top level, and every other executed node's output
// stored under its node name — including ancestors that were activated only
// implicitly. A Result is created fresh per Run and never retained by the
// builder. Collisions between node names and root field names are the
// caller's responsibility.
type Result map[string]any

// Field retrieves a typed entry from a Result. It returns an error if the
// key is missing or the stored value does not have type T.
func Field[T any](r Result, key string) (T, error) {
	var zero T
	raw, ok := r[key]
	if !ok {
		return zero, fmt.Errorf("hydrate: result key %q not found", key)
	}
	val, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("hydrate: result key %q: expected %T, got %T", key, zero, raw)
	}
	return val, nil
}

// spread copies output's fields into the result at the top level. String-keyed
// maps contribute their entries; structs and struct pointers contribute their
// exported fields under their json names. Any other kind of output — numbers,
// strings, slices — contributes nothing, so a scalar root output yields only
// child entries.
func (r Result) spread(output any) {
	if output == nil {
		return
	}
	if m, ok := output.(map[string]any); ok {
		for k, v := range m {
			r[k] = v
		}
		return
	}

	rv := reflect.ValueOf(output)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return
		}
		iter := rv.MapRange()
		for iter.Next() {
			r[iter.Key().String()] = iter.Value().Interface()
		}
	case reflect.Struct:
		r.spreadStruct(rv)
	}
}

func (r Result) spreadStruct(rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}

		fv := rv.Field(i)

		// Promote untagged embedded structs the way encoding/json does.
		if f.Anonymous && f.Tag.Get("json") == "" {
			ev := fv
			for ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					ev = reflect.Value{}
					break
				}
				ev = ev.Elem()
			}
			if ev.IsValid() && ev.Kind() == reflect.Struct {
				r.spreadStruct(ev)
				continue
			}
		}

		name, ok := jsonFieldName(f)
		if !ok {
			continue
		}
		r[name] = fv.Interface()
	}
}

// jsonFieldName returns the key a field serializes under, honoring json tags.
// The second return is false for fields excluded with `json:"-"`.
func jsonFieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name := f.Name
	if tag != "" {
		if comma := strings.Index(tag, ","); comma >= 0 {
			tag = tag[:comma]
		}
		if tag != "" {
			name = tag
		}
	}
	return name, true
}
