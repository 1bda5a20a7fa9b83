package config

import "testing"

func TestLoad(t *testing.T) {
	t.Run("defaults apply when the environment is empty", func(t *testing.T) {
		for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "POSTGRES_CONN_STR", "MONGO_URI", "MONGO_DATABASE"} {
			t.Setenv(key, "")
		}

		cfg := Load()
		if cfg.Port != "8080" {
			t.Errorf("Port = %q, want 8080", cfg.Port)
		}
		if cfg.MongoDatabase != "stackmoneyup" {
			t.Errorf("MongoDatabase = %q, want stackmoneyup", cfg.MongoDatabase)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
		}
	})

	t.Run("environment values win over defaults", func(t *testing.T) {
		t.Setenv("POSTGRES_CONN_STR", "postgres://blog:blog@db:5432/blog")
		t.Setenv("MONGO_URI", "mongodb://mongo:27017")
		t.Setenv("MONGO_DATABASE", "blog_events")

		cfg := Load()
		if cfg.PostgresConnStr != "postgres://blog:blog@db:5432/blog" {
			t.Errorf("PostgresConnStr = %q", cfg.PostgresConnStr)
		}
		if cfg.MongoURI != "mongodb://mongo:27017" {
			t.Errorf("MongoURI = %q", cfg.MongoURI)
		}
		if cfg.MongoDatabase != "blog_events" {
			t.Errorf("MongoDatabase = %q, want blog_events", cfg.MongoDatabase)
		}
	})

	t.Run("connection settings reach InitDB validation", func(t *testing.T) {
		t.Setenv("POSTGRES_CONN_STR", "")
		t.Setenv("MONGO_URI", "")

		if _, err := InitDB(Load()); err == nil {
			t.Fatal("InitDB accepted a config without connection strings")
		}
	})
}
