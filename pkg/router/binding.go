package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

func bindBody(req *http.Request, obj any) error {
	if req.Body == nil || req.ContentLength == 0 {
		return nil
	}

	defer req.Body.Close()
	return json.NewDecoder(req.Body).Decode(obj)
}

// bindQuery fills the struct from URL query parameters, matching the json
// tag of each exported field.
func bindQuery(req *http.Request, obj any) error {
	value := reflect.ValueOf(obj).Elem()
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("expected a struct, got %s", value.Kind())
	}

	query := req.URL.Query()
	structType := value.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" {
			name = field.Name
		} else if name == "-" {
			continue
		}

		if !query.Has(name) {
			continue
		}

		if err := setField(value.Field(i), query.Get(name)); err != nil {
			return fmt.Errorf("invalid value of field %s: %w", name, err)
		}
	}

	return nil
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}

	return nil
}
