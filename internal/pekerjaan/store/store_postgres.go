package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/models"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
)

// PostgresStore persists resident job records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed record store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectRecord = `
	SELECT id, rt, rw, umur, jenis_kelamin, status_pekerjaan_utama, nama_anggota,
		COALESCE(id_keluarga, ''), created_at
	FROM pekerjaan
`

func (s *PostgresStore) List(ctx context.Context, filter models.Filter) ([]*models.Record, error) {
	query := selectRecord + ` WHERE jenis_kelamin IS NOT NULL`
	var args []any
	if filter.Active() {
		query += ` AND rt = $1 AND rw = $2`
		args = append(args, *filter.RT, *filter.RW)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.RT, &r.RW, &r.Umur, &r.JenisKelamin,
			&r.StatusPekerjaanUtama, &r.NamaAnggota, &r.IDKeluarga, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// ListResidents returns the (RT, RW, gender) projection used by the map
// aggregation, in insertion order.
func (s *PostgresStore) ListResidents(ctx context.Context) ([]models.Resident, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rt, rw, jenis_kelamin
		FROM pekerjaan
		WHERE jenis_kelamin IS NOT NULL
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	defer rows.Close()

	var residents []models.Resident
	for rows.Next() {
		var r models.Resident
		if err := rows.Scan(&r.RT, &r.RW, &r.JenisKelamin); err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		residents = append(residents, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate residents: %w", err)
	}
	return residents, nil
}

func (s *PostgresStore) Create(ctx context.Context, r *models.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pekerjaan (id, rt, rw, umur, jenis_kelamin, status_pekerjaan_utama, nama_anggota, id_keluarga, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.ID, r.RT, r.RW, r.Umur, r.JenisKelamin, r.StatusPekerjaanUtama, r.NamaAnggota, r.IDKeluarga, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// Update overwrites the editable fields. Returns sentinel.ErrNotFound when
// no row has the id.
func (s *PostgresStore) Update(ctx context.Context, r *models.Record) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pekerjaan
		SET rt = $2, rw = $3, umur = $4, jenis_kelamin = $5, status_pekerjaan_utama = $6, nama_anggota = $7
		WHERE id = $1
	`, r.ID, r.RT, r.RW, r.Umur, r.JenisKelamin, r.StatusPekerjaanUtama, r.NamaAnggota)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return requireOneRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pekerjaan WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
