package xltables

import (
	"context"
	"time"

	"github.com/ukaji3/xltables-go/pkg/xltables/models"
	"github.com/ukaji3/xltables-go/pkg/xltables/parser"
)

// Open fetches and decodes the workbook. Every call reads the source again;
// nothing is cached between calls.
func Open(ctx context.Context, opts Options) (*models.Workbook, error) {
	fetcher, err := opts.fetcher()
	if err != nil {
		return nil, NewSourceError(opts.Source, "fetch", err)
	}
	location := fetcher.Location()

	start := time.Now()
	data, err := fetcher.Fetch(ctx)
	if err != nil {
		opts.warnf("fetch %s failed: %v", location, err)
		return nil, NewSourceError(location, "fetch", err)
	}
	opts.debugf("fetched %s (%d bytes) in %s", location, len(data), time.Since(start))

	start = time.Now()
	wb, err := parser.Decode(location, data)
	if err != nil {
		opts.warnf("decode %s failed: %v", location, err)
		return nil, NewSourceError(location, "decode", err)
	}
	opts.debugf("decoded %s (%d sheets) in %s", location, len(wb.Sheets), time.Since(start))

	return wb, nil
}

// ListTables returns the distinct table names of the workbook in the order
// they first appear.
func ListTables(ctx context.Context, opts Options) ([]string, error) {
	wb, err := Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return parser.ListTables(wb), nil
}

// TableRows returns the row labels of the named table.
func TableRows(ctx context.Context, opts Options, table string) (*models.TableRows, error) {
	wb, err := Open(ctx, opts)
	if err != nil {
		return nil, err
	}

	ref, ok := parser.LocateTable(wb, table, opts.locator())
	if !ok {
		return nil, tableNotFound(table)
	}
	opts.debugf("table %q located at %s row %d column %d", table, ref.Sheet, ref.HeaderRow, ref.Column)

	return &models.TableRows{
		Table: table,
		Rows:  parser.ExtractRows(wb.Sheet(ref.Sheet), ref),
	}, nil
}

// RowSum resolves the integer value of a row of the named table.
// Fractions are read as percentages; a value that is not a whole number
// after normalization is reported as ErrRowNotFound, never truncated.
func RowSum(ctx context.Context, opts Options, table, row string) (*models.RowSum, error) {
	wb, err := Open(ctx, opts)
	if err != nil {
		return nil, err
	}

	ref, ok := parser.LocateTable(wb, table, opts.locator())
	if !ok {
		return nil, tableNotFound(table)
	}

	raw, ok := parser.FindRowValue(wb.Sheet(ref.Sheet), ref, row)
	if !ok {
		return nil, rowNotFound(table, row, "")
	}
	resolved := parser.ResolveValue(raw)
	if resolved == "" {
		return nil, rowNotFound(table, row, "")
	}

	sum, err := parser.ParseSum(resolved)
	if err != nil {
		return nil, rowNotFound(table, row, resolved)
	}

	return &models.RowSum{Table: table, Row: row, Sum: sum}, nil
}
