package config

import (
	"reflect"
	"strings"

	"order-manager/core/database"
	"order-manager/core/events"
	"order-manager/core/logger"
	"order-manager/core/server"
	"order-manager/core/storage"
	"order-manager/core/store"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the sql store backend.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage used by the bucket backend.
	Storage storage.Config `mapstructure:"storage"`
	// Store selects and configures the persistence backend.
	Store store.Config `mapstructure:"store"`
	// Events holds configuration for the order event publisher.
	Events events.Config `mapstructure:"events"`
	// Catalog holds the reference data seeded on first start.
	Catalog Catalog `mapstructure:"catalog"`
}

// Catalog lists the categories created when the category collection is empty.
type Catalog struct {
	SeedCategories []string `mapstructure:"seed_categories" default:"tops,bottoms,outerwear,accessories"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// A missing .env is normal outside development.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key in Viper
// with the value of its 'default' tag.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Registered even when empty so AutomaticEnv can see the key.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
