package envconf

import (
	"encoding"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingRequired = errors.New("missing required environment variable")
	ErrUnsupportedType = errors.New("unsupported field type")
)

var durationType = reflect.TypeOf(time.Duration(0))

// Load fills the struct pointed to by dst from environment variables.
//
// A field tagged `env:"NAME"` is required unless it also carries
// `envDefault:"value"`, in which case the default is parsed when NAME is
// unset. Untagged struct fields (and pointers to structs) are loaded
// recursively. String slices are read as comma-separated lists.
//
// Every missing variable is reported in one error. A value that fails to
// parse stops the load immediately.
func Load(dst any) error {
	if dst == nil {
		return errors.New("destination is nil")
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return errors.New("destination must be a non-nil pointer to a struct")
	}

	if v.Elem().Kind() != reflect.Struct {
		return errors.New("destination must point to a struct")
	}

	var missing []string

	err := loadStruct(v.Elem(), &missing)
	if err != nil {
		return err
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}

	return nil
}

func loadStruct(v reflect.Value, missing *[]string) error {
	t := v.Type()

	for i := range v.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		fv := v.Field(i)
		name := sf.Tag.Get("env")

		if name == "" || name == "-" {
			err := loadNested(fv, missing)
			if err != nil {
				return fmt.Errorf("load %q: %w", sf.Name, err)
			}

			continue
		}

		raw, ok := os.LookupEnv(name)
		if !ok {
			raw, ok = sf.Tag.Lookup("envDefault")
		}
		if !ok {
			*missing = append(*missing, name)

			continue
		}

		err := setValue(fv, raw)
		if err != nil {
			return fmt.Errorf("parse %s into %q: %w", name, sf.Name, err)
		}
	}

	return nil
}

// loadNested recurses into untagged struct and pointer-to-struct fields.
// Anything else without a tag is left alone.
func loadNested(fv reflect.Value, missing *[]string) error {
	switch {
	case fv.Kind() == reflect.Struct && fv.Type() != durationType:
		return loadStruct(fv, missing)

	case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct:
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}

		return loadStruct(fv.Elem(), missing)
	}

	return nil
}

func setValue(fv reflect.Value, raw string) error {
	if !fv.CanSet() {
		return fmt.Errorf("field not settable: %w", ErrUnsupportedType)
	}

	if fv.CanAddr() {
		if u, ok := fv.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(raw))
		}
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		fv.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setInt(fv, raw)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}

		fv.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return err
		}

		fv.SetFloat(f)

	case reflect.Slice:
		return setList(fv, raw)

	case reflect.Pointer:
		elem := reflect.New(fv.Type().Elem())

		err := setValue(elem.Elem(), raw)
		if err != nil {
			return err
		}

		fv.Set(elem)

	default:
		return fmt.Errorf("%s: %w", fv.Type(), ErrUnsupportedType)
	}

	return nil
}

func setInt(fv reflect.Value, raw string) error {
	if fv.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}

		fv.SetInt(int64(d))

		return nil
	}

	i, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
	if err != nil {
		return err
	}

	fv.SetInt(i)

	return nil
}

// setList splits raw on commas, trims each item and drops empty ones.
func setList(fv reflect.Value, raw string) error {
	if fv.Type().Elem().Kind() != reflect.String {
		return fmt.Errorf("slice of %s: %w", fv.Type().Elem(), ErrUnsupportedType)
	}

	items := reflect.MakeSlice(fv.Type(), 0, strings.Count(raw, ",")+1)

	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		items = reflect.Append(items, reflect.ValueOf(item).Convert(fv.Type().Elem()))
	}

	fv.Set(items)

	return nil
}
