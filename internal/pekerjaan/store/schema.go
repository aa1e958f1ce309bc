package store

// Schema creates the resident job record table. jenis_kelamin is nullable
// because bulk-imported rows may lack it; such rows are never listed.
const Schema = `
CREATE TABLE IF NOT EXISTS pekerjaan (
	id                     TEXT PRIMARY KEY,
	rt                     INTEGER NOT NULL,
	rw                     INTEGER NOT NULL,
	umur                   INTEGER NOT NULL,
	jenis_kelamin          TEXT,
	status_pekerjaan_utama TEXT NOT NULL,
	nama_anggota           TEXT NOT NULL,
	id_keluarga            TEXT,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS pekerjaan_rt_rw_idx ON pekerjaan (rt, rw);
`
