package dbkeeper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/drstein77/storefront/internal/models"
	"github.com/golang-migrate/migrate"
	"github.com/golang-migrate/migrate/database/postgres"
	_ "github.com/golang-migrate/migrate/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Log interface {
	Info(string, ...zap.Field)
	Error(string, ...zap.Field)
}

// DBKeeper reads the product catalog from PostgreSQL.
type DBKeeper struct {
	pool *pgxpool.Pool
	log  Log
}

// NewDBKeeper connects to the database and applies the catalog migrations.
// It returns nil when the dsn is empty or the database cannot be prepared.
func NewDBKeeper(ctx context.Context, dsn func() string, migrationsDir func() string, log Log) *DBKeeper {
	addr := dsn()
	if addr == "" {
		log.Info("database dsn is empty, catalog table disabled")
		return nil
	}

	config, err := pgxpool.ParseConfig(addr)
	if err != nil {
		log.Error("Unable to parse database DSN", zap.Error(err))
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		log.Error("Unable to connect to database", zap.Error(err))
		return nil
	}

	if err := migrateUp(config.ConnConfig, migrationsDir()); err != nil {
		log.Error("Error while performing migration", zap.Error(err))
		pool.Close()
		return nil
	}

	log.Info("Connected!")

	return &DBKeeper{
		pool: pool,
		log:  log,
	}
}

func migrateUp(connConfig *pgx.ConnConfig, dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("migrations dir %q: %w", dir, err)
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	defer sqlDB.Close()

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to get migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// GetAllProducts returns the catalog in display order.
func (kp *DBKeeper) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	if kp.pool == nil {
		return nil, fmt.Errorf("database connection pool is nil")
	}

	query := `
		SELECT id, name, category, price::text,
		       image_thumbnail, image_mobile, image_tablet, image_desktop
		FROM products
		ORDER BY position, id
	`

	rows, err := kp.pool.Query(ctx, query)
	if err != nil {
		kp.log.Error("Failed to execute query", zap.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			product models.Product
			price   string
		)
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&price,
			&product.Image.Thumbnail,
			&product.Image.Mobile,
			&product.Image.Tablet,
			&product.Image.Desktop,
		)
		if err != nil {
			kp.log.Error("Failed to scan row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if product.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid price %q for product %s: %w", price, product.ID, err)
		}
		products = append(products, product)
	}

	if rows.Err() != nil {
		kp.log.Error("Error occurred during rows iteration", zap.Error(rows.Err()))
		return nil, fmt.Errorf("error during rows iteration: %w", rows.Err())
	}

	kp.log.Info("Successfully retrieved all products", zap.Int("count", len(products)))
	return products, nil
}

func (kp *DBKeeper) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := kp.pool.Ping(ctx); err != nil {
		kp.log.Error("Database ping failed", zap.Error(err))
		return false
	}

	return true
}

func (kp *DBKeeper) Close() bool {
	if kp.pool != nil {
		kp.pool.Close()
		kp.log.Info("Database connection pool closed")
		return true
	}
	kp.log.Info("Attempted to close a nil database connection pool")
	return false
}
