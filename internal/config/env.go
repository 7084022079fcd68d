package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LoadEnv overlays environment variables onto config. Every section of
// AppConfig is walked and fields carrying an `env:"NAME"` tag are replaced
// when NAME is present in the environment, even if it is empty.
func LoadEnv(config *AppConfig) error {
	applied, err := applyEnv(reflect.ValueOf(config).Elem())
	if err != nil {
		return err
	}

	// Only names are logged; several of these variables hold secrets.
	log.Debug().
		Strs("variables", applied).
		Msg("Environment overrides applied")

	return nil
}

// processStructEnv applies environment overrides to the struct s points to.
func processStructEnv(s interface{}) error {
	_, err := applyEnv(reflect.ValueOf(s).Elem())
	return err
}

// applyEnv walks v recursively and returns the names of the variables it used.
func applyEnv(v reflect.Value) ([]string, error) {
	var applied []string
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		target := v.Field(i)
		if !target.CanSet() {
			continue
		}

		if target.Kind() == reflect.Struct && field.Type != durationType {
			nested, err := applyEnv(target)
			if err != nil {
				return nil, err
			}
			applied = append(applied, nested...)
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}

		if err := setFromString(target, raw); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		applied = append(applied, name)
	}

	return applied, nil
}

// setFromString parses raw into target according to target's kind.
// Unsupported kinds are left untouched.
func setFromString(target reflect.Value, raw string) error {
	if target.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		target.SetInt(int64(d))
		return nil
	}

	switch target.Kind() {
	case reflect.String:
		target.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		target.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetFloat(f)
	case reflect.Slice:
		if target.Type().Elem().Kind() != reflect.String {
			return nil
		}
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		target.Set(reflect.ValueOf(parts))
	}
	return nil
}
