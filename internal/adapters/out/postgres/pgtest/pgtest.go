// Package pgtest starts a throwaway PostgreSQL container with the storefront
// schema for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	storepg "storefront/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, connects GORM and applies migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	d := &Database{Container: container}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, fmt.Errorf("container connection string: %w", err)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	d.DB = db

	if err = storepg.Migrate(ctx, db); err != nil {
		_ = d.Terminate(ctx)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Truncate empties every storefront table and resets identities.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE order_line_items, orders, products, accounts RESTART IDENTITY CASCADE").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// SeedAccount inserts an account row directly and returns its id.
func (d *Database) SeedAccount(username string) (int64, error) {
	var id int64
	err := d.DB.Raw(
		"INSERT INTO accounts (username, firstname, lastname, credential_digest) VALUES (?, ?, ?, ?) RETURNING id",
		username, "First", "Last", "digest",
	).Scan(&id).Error
	return id, err
}

// SeedProduct inserts a product row directly and returns its id.
func (d *Database) SeedProduct(name string, price int64, category string) (int64, error) {
	var id int64
	err := d.DB.Raw(
		"INSERT INTO products (name, price, category) VALUES (?, ?, ?) RETURNING id",
		name, price, category,
	).Scan(&id).Error
	return id, err
}
