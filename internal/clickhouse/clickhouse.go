// Package clickhouse defines the benchmarked query and the three call
// paths used to execute it against the ClickHouse service.
package clickhouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"colbench/internal/bench"
	"colbench/internal/frame"
)

// Query is the fixed analytical query every method executes: healthy
// percentage per species over the alive trees of the 2015 NYC street
// tree census, ordered by descending count.
const Query = `
SELECT
    spc_latin,
    spc_common,
    count() AS count,
    round(countIf(health = 'Good') / count() * 100) AS healthy_pct
FROM tree_census_2015
WHERE status = 'Alive'
GROUP BY
    spc_latin,
    spc_common
ORDER BY count DESC
`

// Fixed connection identity. The benchmark takes no configuration.
const (
	serviceAddr = "127.0.0.1:9000"
	database    = "nyc_trees"
	username    = "colbench"
)

// openDB opens a fresh handle to the service. Every method invocation
// gets its own handle so that lifecycle differences stay observable.
func openDB() *sql.DB {
	return clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{serviceAddr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
		},
	})
}

// RowsScan fetches through a plain database/sql cursor and converts the
// result into an Arrow record explicitly.
func RowsScan(ctx context.Context, keepOpen bool) error {
	db := openDB()
	rows, err := db.QueryContext(ctx, Query)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	rec, err := frame.FromRows(rows)
	if closeErr := rows.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close cursor: %w", closeErr)
	}
	if err != nil {
		return err
	}
	rec.Release()
	if keepOpen {
		return nil
	}
	return db.Close()
}

// FrameDB hands the open handle straight to the frame reader.
func FrameDB(ctx context.Context, keepOpen bool) error {
	db := openDB()
	rec, err := frame.Read(ctx, db, Query)
	if err != nil {
		return err
	}
	rec.Release()
	if keepOpen {
		return nil
	}
	return db.Close()
}

// FrameConn checks a single connection out of the pool and hands that to
// the frame reader instead of the handle.
func FrameConn(ctx context.Context, keepOpen bool) error {
	db := openDB()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	rec, err := frame.Read(ctx, conn, Query)
	if err != nil {
		return err
	}
	rec.Release()
	if keepOpen {
		// The checkout stays unreleased for the life of the process.
		return nil
	}
	if err := conn.Close(); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return db.Close()
}

// Methods returns the three call paths in benchmark order.
func Methods() []bench.Method {
	return []bench.Method{
		{Name: "rows_scan", Call: RowsScan},
		{Name: "frame_db", Call: FrameDB},
		{Name: "frame_conn", Call: FrameConn},
	}
}

// OpenPhaseMethods returns the methods re-measured with connections left
// open. The plain cursor path always releases its handle, so only the
// frame readers participate.
func OpenPhaseMethods() []bench.Method {
	return Methods()[1:]
}
