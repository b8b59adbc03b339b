// Package config provides configuration management for the order manager.
//
// Values come from environment variables, optionally preloaded from a .env file,
// with defaults declared on the struct tags of each section:
//   - Server: port, API key, rate limit
//   - Log: level and format
//   - Database: driver and connection details for the sql backend
//   - Storage: S3/MinIO credentials and bucket for the bucket backend
//   - Store: which backend persists stocks and orders
//   - Events: RabbitMQ URL and exchange for order events
//   - Catalog: categories seeded on first start
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Store.Backend)
package config
