// Package postgis stores and retrieves map feature collections in a
// PostGIS table, as an alternative source to plain GeoJSON files.
package postgis

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/kass/go-province-map/pkg/geojson"
)

// FeatureStore is a PostGIS-backed feature source/sink.
type FeatureStore struct {
	db *sql.DB
}

// NewFeatureStore opens a PostGIS connection.
func NewFeatureStore(host, user, password, dbname string, port int) (*FeatureStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &FeatureStore{db: db}, nil
}

// InitSchema creates the feature table and its spatial index.
func (s *FeatureStore) InitSchema() error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis;`,

		`DROP TABLE IF EXISTS map_features;`,

		`CREATE TABLE map_features (
			id TEXT PRIMARY KEY,
			properties JSONB,
			geom GEOMETRY(GEOMETRY, 4326)
		);`,

		`CREATE INDEX idx_map_features_geom ON map_features USING GIST(geom);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}

	return nil
}

// rawFeature is the minimal decode needed to split a feature into the
// table columns.
type rawFeature struct {
	Geometry   json.RawMessage `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

// ImportCollection inserts every decodable feature of the collection.
// Features whose geometry PostGIS rejects are skipped, matching the
// tolerance rules of the file loader. Returns the number inserted.
func (s *FeatureStore) ImportCollection(fc *geojson.FeatureCollection) (int, error) {
	stmt, err := s.db.Prepare(`
		INSERT INTO map_features (id, properties, geom)
		VALUES ($1, $2, ST_GeomFromGeoJSON($3))
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, raw := range fc.Features {
		var f rawFeature
		if err := json.Unmarshal(raw, &f); err != nil || f.Geometry == nil {
			continue
		}
		props := f.Properties
		if props == nil {
			props = json.RawMessage(`{}`)
		}
		if _, err := stmt.Exec(uuid.New().String(), string(props), string(f.Geometry)); err != nil {
			continue
		}
		inserted++
	}

	return inserted, nil
}

// ExportCollection reads every stored feature back as a GeoJSON
// FeatureCollection.
func (s *FeatureStore) ExportCollection() (*geojson.FeatureCollection, error) {
	rows, err := s.db.Query(`
		SELECT properties::text, ST_AsGeoJSON(geom)
		FROM map_features
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	fc := &geojson.FeatureCollection{
		Type:     "FeatureCollection",
		Features: []json.RawMessage{},
	}

	for rows.Next() {
		var props, geomJSON string
		if err := rows.Scan(&props, &geomJSON); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		feature := fmt.Sprintf(`{"type":"Feature","geometry":%s,"properties":%s}`, geomJSON, props)
		fc.Features = append(fc.Features, json.RawMessage(feature))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return fc, nil
}

// Count returns the number of stored features.
func (s *FeatureStore) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM map_features").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count features: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *FeatureStore) Close() error {
	return s.db.Close()
}
