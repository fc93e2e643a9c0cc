// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"cogentcore.org/xyzedit/math32"
)

// SetFromDefaults sets the fields of the struct pointed to by obj from
// their `default:` tags, recursing into untagged struct fields. Vectors
// are written as space separated components ("10 10 10"); fields that
// implement [encoding.TextUnmarshaler] are set through it.
func SetFromDefaults(obj any) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config.SetFromDefaults: need a non-nil struct pointer, not %T", obj)
	}
	return setDefaults(v.Elem())
}

func setDefaults(val reflect.Value) error {
	typ := val.Type()
	var errs []error
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		def, ok := f.Tag.Lookup("default")
		if !ok || def == "" {
			if f.Type.Kind() == reflect.Struct {
				errs = append(errs, setDefaults(fv))
			}
			continue
		}
		if err := setValue(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("config.SetFromDefaults: field %s.%s from %q: %w", typ.Name(), f.Name, def, err))
		}
	}
	return errors.Join(errs...)
}

func setValue(fv reflect.Value, s string) error {
	switch p := fv.Addr().Interface().(type) {
	case encoding.TextUnmarshaler:
		return p.UnmarshalText([]byte(s))
	case *math32.Vector3:
		var x, y, z float32
		if _, err := fmt.Sscan(s, &x, &y, &z); err != nil {
			return err
		}
		*p = math32.Vec3(x, y, z)
		return nil
	}
	switch fv.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 0, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	case reflect.String:
		fv.SetString(s)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}
