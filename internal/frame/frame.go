// Package frame materializes database/sql result cursors into Arrow
// records.
package frame

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Querier is the subset of database/sql needed to produce a cursor.
// Both *sql.DB and *sql.Conn satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Read executes query on q and drains the full result set into an Arrow
// record. The caller owns the record and must Release it.
func Read(ctx context.Context, q Querier, query string) (arrow.Record, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	return FromRows(rows)
}

// FromRows drains an open cursor into an Arrow record. Column types are
// derived from the driver's scan types; anything without a native Arrow
// mapping is stored as a string column.
func FromRows(rows *sql.Rows) (arrow.Record, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types: %w", err)
	}

	fields := make([]arrow.Field, len(names))
	for i, name := range names {
		fields[i] = arrow.Field{Name: name, Type: arrowType(colTypes[i]), Nullable: true}
	}
	builder := array.NewRecordBuilder(memory.DefaultAllocator, arrow.NewSchema(fields, nil))
	defer builder.Release()

	dest := make([]any, len(names))
	for i := range dest {
		dest[i] = new(any)
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for i := range dest {
			if err := appendValue(builder.Field(i), *(dest[i].(*any))); err != nil {
				return nil, fmt.Errorf("column %s: %w", names[i], err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return builder.NewRecord(), nil
}

// arrowType maps a driver scan type to an Arrow data type.
func arrowType(ct *sql.ColumnType) arrow.DataType {
	st := ct.ScanType()
	if st == nil {
		return arrow.BinaryTypes.String
	}
	if st.Kind() == reflect.Ptr {
		st = st.Elem()
	}
	switch st.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return arrow.PrimitiveTypes.Int64
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return arrow.PrimitiveTypes.Uint64
	case reflect.Float32, reflect.Float64:
		return arrow.PrimitiveTypes.Float64
	case reflect.Bool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

// appendValue appends one scanned value to the builder for its column.
func appendValue(b array.Builder, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch fb := b.(type) {
	case *array.StringBuilder:
		switch s := v.(type) {
		case string:
			fb.Append(s)
		case []byte:
			fb.Append(string(s))
		default:
			fb.Append(fmt.Sprint(v))
		}
	case *array.Int64Builder:
		n, ok := asInt64(v)
		if !ok {
			return fmt.Errorf("cannot store %T in int64 column", v)
		}
		fb.Append(n)
	case *array.Uint64Builder:
		n, ok := asUint64(v)
		if !ok {
			return fmt.Errorf("cannot store %T in uint64 column", v)
		}
		fb.Append(n)
	case *array.Float64Builder:
		switch f := v.(type) {
		case float64:
			fb.Append(f)
		case float32:
			fb.Append(float64(f))
		default:
			return fmt.Errorf("cannot store %T in float64 column", v)
		}
	case *array.BooleanBuilder:
		t, ok := v.(bool)
		if !ok {
			return fmt.Errorf("cannot store %T in boolean column", v)
		}
		fb.Append(t)
	default:
		return fmt.Errorf("unsupported builder %T", b)
	}
	return nil
}

// asInt64 widens signed integer scan values.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// asUint64 widens unsigned integer scan values.
func asUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint32:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint:
		return uint64(n), true
	default:
		return 0, false
	}
}
