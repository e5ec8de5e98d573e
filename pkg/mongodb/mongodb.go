package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URI      string        `yaml:"uri" envconfig:"MONGODB_URI" required:"true"`
	Database string        `yaml:"database" envconfig:"MONGODB_DATABASE" default:"libman"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"MONGODB_TIMEOUT" default:"10s"`
}

// NewMongoDB connects to the configured deployment and pings the primary
// before handing the database out.
func NewMongoDB(ctx context.Context, cfg *Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	return client.Database(cfg.Database), nil
}
