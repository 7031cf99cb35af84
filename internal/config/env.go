package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// EnvPrefix namespaces overrides so the gateway and the console can share a
// shell with other tools. SMARTED_BACKEND_URL wins over BACKEND_URL.
const EnvPrefix = "SMARTED_"

// lookupEnv returns the prefixed variable when set, then the bare one.
func lookupEnv(name string) (string, string, bool) {
	if !strings.HasPrefix(name, EnvPrefix) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			return EnvPrefix + name, v, true
		}
	}
	v, ok := os.LookupEnv(name)
	return name, v, ok
}

// applyEnvOverrides walks nested config sections and replaces every field
// carrying an `env` tag whose variable is set.
func applyEnvOverrides(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			continue
		}

		name, value, ok := lookupEnv(tag)
		if !ok {
			continue
		}

		if err := setStringField(field, value); err != nil {
			return fmt.Errorf("failed to set field %s from env var %s: %w", fieldType.Name, name, err)
		}
	}

	return nil
}

// setStringField assigns an override. Config values are kept as strings and
// parsed (durations, URLs) by validateConfig.
func setStringField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}
	if field.Kind() != reflect.String {
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	field.SetString(strings.TrimSpace(value))
	return nil
}
