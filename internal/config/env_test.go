package config

import (
	"testing"
	"time"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("APP_ENV", "testing")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("IBM_WATSON_API_KEY", "key-from-env")
	t.Setenv("IBM_WATSON_URL", "https://nlu.example.com")
	t.Setenv("ANALYSIS_TIMEOUT", "12s")
	t.Setenv("INSTAGRAM_USERNAME", "poster")
	t.Setenv("SCHEDULER_CRON", "30 6 * * *")
	t.Setenv("UPLOAD_LENIENT_CSV", "true")
	t.Setenv("BATCH_CONCURRENCY", "4")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_METHODS", "GET, POST")

	config := &AppConfig{}
	if err := LoadEnv(config); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if config.App.Environment != "testing" {
		t.Errorf("Expected Environment = testing, got %s", config.App.Environment)
	}
	if config.Database.Driver != "mysql" || config.Database.Port != 3307 {
		t.Errorf("Expected mysql:3307, got %s:%d", config.Database.Driver, config.Database.Port)
	}
	if config.Analysis.APIKey != "key-from-env" {
		t.Errorf("Expected APIKey from env, got %s", config.Analysis.APIKey)
	}
	if config.Analysis.URL != "https://nlu.example.com" {
		t.Errorf("Expected URL from env, got %s", config.Analysis.URL)
	}
	if config.Analysis.Timeout != 12*time.Second {
		t.Errorf("Expected Timeout = 12s, got %v", config.Analysis.Timeout)
	}
	if config.Scheduler.Username != "poster" || config.Scheduler.Schedule != "30 6 * * *" {
		t.Errorf("Unexpected scheduler settings: %+v", config.Scheduler)
	}
	if !config.Uploads.LenientCSV {
		t.Error("Expected LenientCSV = true")
	}
	if config.Batch.Concurrency != 4 {
		t.Errorf("Expected Concurrency = 4, got %d", config.Batch.Concurrency)
	}
	if config.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("Expected RequestsPerSecond = 2.5, got %f", config.RateLimit.RequestsPerSecond)
	}
	if len(config.CORS.AllowedMethods) != 2 || config.CORS.AllowedMethods[1] != "POST" {
		t.Errorf("Expected trimmed methods [GET POST], got %v", config.CORS.AllowedMethods)
	}
}

func TestProcessStructEnv(t *testing.T) {
	type TestStruct struct {
		StringField string        `env:"TEST_STRING"`
		IntField    int           `env:"TEST_INT"`
		Int64Field  int64         `env:"TEST_INT64"`
		BoolField   bool          `env:"TEST_BOOL"`
		DurField    time.Duration `env:"TEST_DURATION"`
		FloatField  float64       `env:"TEST_FLOAT"`
		StrSlice    []string      `env:"TEST_SLICE"`
		NoEnvTag    string
	}

	t.Setenv("TEST_STRING", "test-value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT64", "52428800")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "15m")
	t.Setenv("TEST_FLOAT", "3.14")
	t.Setenv("TEST_SLICE", "item1,item2,item3")

	testStruct := &TestStruct{}
	if err := processStructEnv(testStruct); err != nil {
		t.Fatalf("processStructEnv() error = %v", err)
	}

	if testStruct.StringField != "test-value" {
		t.Errorf("Expected StringField = %s, got %s", "test-value", testStruct.StringField)
	}
	if testStruct.IntField != 42 {
		t.Errorf("Expected IntField = %d, got %d", 42, testStruct.IntField)
	}
	if testStruct.Int64Field != 50<<20 {
		t.Errorf("Expected Int64Field = %d, got %d", 50<<20, testStruct.Int64Field)
	}
	if !testStruct.BoolField {
		t.Errorf("Expected BoolField = %v, got %v", true, testStruct.BoolField)
	}
	if testStruct.DurField != 15*time.Minute {
		t.Errorf("Expected DurField = %v, got %v", 15*time.Minute, testStruct.DurField)
	}
	if testStruct.FloatField != 3.14 {
		t.Errorf("Expected FloatField = %f, got %f", 3.14, testStruct.FloatField)
	}

	expectedSlice := []string{"item1", "item2", "item3"}
	if len(testStruct.StrSlice) != len(expectedSlice) {
		t.Fatalf("Expected StrSlice length = %d, got %d", len(expectedSlice), len(testStruct.StrSlice))
	}
	for i, item := range expectedSlice {
		if testStruct.StrSlice[i] != item {
			t.Errorf("Expected StrSlice[%d] = %s, got %s", i, item, testStruct.StrSlice[i])
		}
	}

	if testStruct.NoEnvTag != "" {
		t.Errorf("Expected NoEnvTag to be empty, got %s", testStruct.NoEnvTag)
	}
}

func TestProcessStructEnvErrors(t *testing.T) {
	tests := []struct {
		name       string
		envName    string
		envValue   string
		testStruct interface{}
	}{
		{
			name:     "Invalid int",
			envName:  "TEST_INT",
			envValue: "not-an-int",
			testStruct: &struct {
				IntField int `env:"TEST_INT"`
			}{},
		},
		{
			name:     "Invalid bool",
			envName:  "TEST_BOOL",
			envValue: "not-a-bool",
			testStruct: &struct {
				BoolField bool `env:"TEST_BOOL"`
			}{},
		},
		{
			name:     "Invalid duration",
			envName:  "TEST_DURATION",
			envValue: "not-a-duration",
			testStruct: &struct {
				DurField time.Duration `env:"TEST_DURATION"`
			}{},
		},
		{
			name:     "Invalid float",
			envName:  "TEST_FLOAT",
			envValue: "not-a-float",
			testStruct: &struct {
				FloatField float64 `env:"TEST_FLOAT"`
			}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envName, tt.envValue)

			if err := processStructEnv(tt.testStruct); err == nil {
				t.Errorf("processStructEnv() expected error for %s=%s", tt.envName, tt.envValue)
			}
		})
	}
}

func TestProcessStructEnv_Nested(t *testing.T) {
	type inner struct {
		Port int `env:"TEST_NESTED_PORT"`
	}
	type outer struct {
		Inner   inner
		Timeout time.Duration `env:"TEST_NESTED_TIMEOUT"`
	}

	t.Setenv("TEST_NESTED_PORT", "8080")
	t.Setenv("TEST_NESTED_TIMEOUT", "2s")

	s := &outer{}
	if err := processStructEnv(s); err != nil {
		t.Fatalf("processStructEnv() error = %v", err)
	}
	if s.Inner.Port != 8080 {
		t.Errorf("Expected nested Port = 8080, got %d", s.Inner.Port)
	}
	if s.Timeout != 2*time.Second {
		t.Errorf("Expected Timeout = 2s, got %v", s.Timeout)
	}
}

func TestLoadEnv_EmptyValueOverrides(t *testing.T) {
	t.Setenv("CACHE_KEY_PREFIX", "")

	config := &AppConfig{Cache: CacheSettings{KeyPrefix: "from-file:"}}
	if err := LoadEnv(config); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if config.Cache.KeyPrefix != "" {
		t.Errorf("Expected empty KeyPrefix, got %q", config.Cache.KeyPrefix)
	}
}
