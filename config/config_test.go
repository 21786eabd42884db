package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.ServerPort != 8080 {
		t.Fatalf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Fatalf("Mongo.URI = %q", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "doctorchannel" {
		t.Fatalf("Mongo.Database = %q", cfg.Mongo.Database)
	}
	if cfg.Storage.Driver != "" {
		t.Fatalf("Storage.Driver = %q, want disabled", cfg.Storage.Driver)
	}
	if cfg.MQ.Driver != "" {
		t.Fatalf("MQ.Driver = %q, want disabled", cfg.MQ.Driver)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MONGO_DB", "hospital")
	t.Setenv("STORAGE_DRIVER", "MinIO")
	t.Setenv("MQ_DRIVER", "RabbitMQ")
	t.Setenv("RABBITMQ_QUEUE_DURABLE", "false")
	t.Setenv("RABBITMQ_PREFETCH_COUNT", "16")

	cfg := LoadConfig()

	if cfg.ServerPort != 9090 {
		t.Fatalf("ServerPort = %d, want 9090", cfg.ServerPort)
	}
	if cfg.Mongo.Database != "hospital" {
		t.Fatalf("Mongo.Database = %q, want hospital", cfg.Mongo.Database)
	}
	if cfg.Storage.Driver != "minio" {
		t.Fatalf("Storage.Driver = %q, want minio", cfg.Storage.Driver)
	}
	if cfg.MQ.Driver != "rabbitmq" {
		t.Fatalf("MQ.Driver = %q, want rabbitmq", cfg.MQ.Driver)
	}
	if cfg.MQ.RabbitMQ.QueueDurable {
		t.Fatal("QueueDurable = true, want false")
	}
	if cfg.MQ.RabbitMQ.PrefetchCount != 16 {
		t.Fatalf("PrefetchCount = %d, want 16", cfg.MQ.RabbitMQ.PrefetchCount)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"YES", true},
		{"on", true},
		{"false", false},
		{"0", false},
		{"off", false},
		{"garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := getEnvBool("TEST_BOOL", true); got != tt.want {
				t.Fatalf("getEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
