package city

import (
	"context"
	"errors"

	"backend-geogems/internal/db"
	"backend-geogems/internal/shared/geo"

	"github.com/jackc/pgx/v5"
)

// GlobalCode is the sentinel city code meaning "all gems, unscoped by city".
const GlobalCode = "GLOBAL"

var (
	ErrNotFound = errors.New("city not found")
	ErrNoCities = errors.New("no cities available")
)

type City struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Repository struct {
	db db.Querier
}

func NewRepository(db db.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) All(ctx context.Context) ([]City, error) {
	rows, err := r.db.Query(ctx, `
		SELECT code, name, lat, lng
		FROM cities
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.Code, &c.Name, &c.Lat, &c.Lng); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, nil
}

func (r *Repository) ByCode(ctx context.Context, code string) (City, error) {
	row := r.db.QueryRow(ctx, `
		SELECT code, name, lat, lng
		FROM cities WHERE code=$1
	`, code)
	var c City
	if err := row.Scan(&c.Code, &c.Name, &c.Lat, &c.Lng); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return City{}, ErrNotFound
		}
		return City{}, err
	}
	return c, nil
}

// Nearest assigns a coordinate to the closest city by great-circle distance.
// Ties keep the first city in input order.
func Nearest(lat, lng float64, cities []City) (City, error) {
	if len(cities) == 0 {
		return City{}, ErrNoCities
	}

	best := cities[0]
	bestDist := geo.HaversineKm(lat, lng, best.Lat, best.Lng)
	for _, c := range cities[1:] {
		if d := geo.HaversineKm(lat, lng, c.Lat, c.Lng); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, nil
}
