package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings.
// It stays in sync when new fields are added to Settings.
func GetSettingsExample() map[string]any {
	t := reflect.TypeOf(Settings{})
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}
		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug"
		case reflect.Int:
			switch fieldName {
			case "max_log_files":
				return DefaultMaxLogFiles
			case "provider_timeout_seconds":
				return int(DefaultProviderTimeout.Seconds())
			case "simulator_latency_millis":
				return 300
			}
			return 10
		}
	}

	if t.Kind() == reflect.String {
		switch fieldName {
		case "provider":
			return ProviderLocal
		case "provider_url":
			return DefaultProviderURL
		case "serve_addr":
			return DefaultServeAddr
		default:
			return "example"
		}
	}

	return nil
}
