package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jwhyun/tripnote/internal/db"
	"github.com/jwhyun/tripnote/internal/domain"
)

// SQLiteCityRepo implements CityRepo on the local cache database.
type SQLiteCityRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteCityRepo creates a CityRepo backed by the given database.
func NewSQLiteCityRepo(database *sql.DB) *SQLiteCityRepo {
	return &SQLiteCityRepo{
		db:  database,
		uow: db.NewSQLiteUnitOfWork(database),
	}
}

func (r *SQLiteCityRepo) ReplaceAll(ctx context.Context, cities []domain.City) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cities`); err != nil {
			return fmt.Errorf("clearing city catalog: %w", err)
		}
		for _, c := range cities {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cities (id, city_name, ko_name, ko_country) VALUES (?, ?, ?, ?)`,
				c.ID, c.CityName, c.KoName, c.KoCountry,
			); err != nil {
				return fmt.Errorf("caching city %d: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteCityRepo) ListAll(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, city_name, ko_name, ko_country FROM cities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing cached cities: %w", err)
	}
	defer rows.Close()
	var cities []domain.City
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.CityName, &c.KoName, &c.KoCountry); err != nil {
			return nil, fmt.Errorf("scanning cached city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}
