package store

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
)

// SavePayload keeps a source response body, gzipped. A station that has not
// reported since the last poll returns the same body, so identical bodies are
// stored once: fresh is false when the returned id names an earlier copy.
func (s *Store) SavePayload(source string, body []byte, seenAt time.Time) (id int64, fresh bool, err error) {
	sum := sha256.Sum256(body)
	digest := hex.EncodeToString(sum[:])

	err = s.db.QueryRow(`SELECT id FROM source_payloads WHERE sha256 = ?`, digest).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("look up payload: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return 0, false, fmt.Errorf("gzip payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, false, fmt.Errorf("gzip payload: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO source_payloads (source, first_seen_at, size_bytes, gzip_body, sha256)
		VALUES (?, ?, ?, ?, ?)
	`, source, seenAt.UTC(), len(body), buf.Bytes(), digest)
	if err != nil {
		return 0, false, fmt.Errorf("insert payload: %w", err)
	}
	id, err = result.LastInsertId()
	return id, true, err
}

// Payload returns the decompressed body of a stored payload.
func (s *Store) Payload(id int64) ([]byte, error) {
	var body []byte
	if err := s.db.QueryRow(`SELECT gzip_body FROM source_payloads WHERE id = ?`, id).Scan(&body); err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("open payload %d: %w", id, err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// PayloadUsage is how much each source's stored responses take up.
type PayloadUsage struct {
	Source          string `json:"source"`
	Payloads        int    `json:"payloads"`
	RawBytes        int64  `json:"raw_bytes"`
	CompressedBytes int64  `json:"compressed_bytes"`
}

func (s *Store) GetPayloadUsage() ([]PayloadUsage, error) {
	rows, err := s.db.Query(`
		SELECT source, COUNT(*), SUM(size_bytes), SUM(LENGTH(gzip_body))
		FROM source_payloads
		GROUP BY source
		ORDER BY source
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []PayloadUsage
	for rows.Next() {
		var u PayloadUsage
		if err := rows.Scan(&u.Source, &u.Payloads, &u.RawBytes, &u.CompressedBytes); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

// PrunePayloads deletes payloads first seen before cutoff. Runs that pointed
// at them keep their other columns.
func (s *Store) PrunePayloads(cutoff time.Time) (int64, error) {
	if _, err := s.db.Exec(`
		UPDATE refresh_runs SET payload_id = NULL
		WHERE payload_id IN (SELECT id FROM source_payloads WHERE first_seen_at < ?)
	`, cutoff.UTC()); err != nil {
		return 0, err
	}
	result, err := s.db.Exec(`DELETE FROM source_payloads WHERE first_seen_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
