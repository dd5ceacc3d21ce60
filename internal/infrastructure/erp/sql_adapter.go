package erp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// Field order used when building SELECT lists, kept stable so generated SQL
// is deterministic.
var (
	departmentFinancialFields = []string{
		FieldDepartment, FieldGrossSales, FieldDiscounts, FieldCostOfGoodsSold, FieldUnitsSold,
	}
	expenseAllocationFields = []string{
		FieldCategory, FieldDepartment, FieldAmount, FieldAllocationMethod,
	}
	operationalMetricFields = []string{
		FieldMetricName, FieldMetricCategory, FieldValue, FieldUnit,
	}
)

// sqlAdapter is the shared adapter implementation behind both supported ERP
// variants. Variant differences live entirely in the driver the factory
// opens and the column mapping of the tenant's schema; query construction
// and row translation are common.
//
// Every SELECT aliases physical columns back to logical field keys, so rows
// scan into logical names and the orchestrator never sees vendor schemas.
type sqlAdapter struct {
	db       *sqlx.DB
	erpType  syncdomain.ErpType
	schema   string
	resolver *ColumnResolver
	logger   *zap.Logger
}

func newSQLAdapter(db *sqlx.DB, erpType syncdomain.ErpType, schema string, resolver *ColumnResolver, logger *zap.Logger) *sqlAdapter {
	return &sqlAdapter{
		db:       db,
		erpType:  erpType,
		schema:   schema,
		resolver: resolver,
		logger:   logger.Named("erp-adapter").With(zap.String("erp_type", erpType.String())),
	}
}

// ErpType returns the ERP variant this adapter handles
func (a *sqlAdapter) ErpType() syncdomain.ErpType {
	return a.erpType
}

// TestConnection verifies the underlying connection is usable
func (a *sqlAdapter) TestConnection(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", syncdomain.ErrErpUnreachable, err)
	}
	return nil
}

// GetDepartmentFinancials pulls department financial rows for the period
func (a *sqlAdapter) GetDepartmentFinancials(ctx context.Context, start, end time.Time) ([]syncdomain.DepartmentFinancialRecord, error) {
	rows, err := a.queryPeriod(ctx, TableDepartmentFinancials, departmentFinancialFields, start, end)
	if err != nil {
		return nil, err
	}

	records := make([]syncdomain.DepartmentFinancialRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, syncdomain.DepartmentFinancialRecord{
			Department:      asString(row[FieldDepartment]),
			GrossSales:      asDecimal(row[FieldGrossSales]),
			Discounts:       asDecimal(row[FieldDiscounts]),
			CostOfGoodsSold: asDecimal(row[FieldCostOfGoodsSold]),
			UnitsSold:       asInt(row[FieldUnitsSold]),
		})
	}
	return records, nil
}

// GetExpenseAllocations pulls expense allocation rows for the period
func (a *sqlAdapter) GetExpenseAllocations(ctx context.Context, start, end time.Time) ([]syncdomain.ExpenseAllocationRecord, error) {
	rows, err := a.queryPeriod(ctx, TableExpenseAllocations, expenseAllocationFields, start, end)
	if err != nil {
		return nil, err
	}

	records := make([]syncdomain.ExpenseAllocationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, syncdomain.ExpenseAllocationRecord{
			Category:         asString(row[FieldCategory]),
			Department:       asString(row[FieldDepartment]),
			Amount:           asDecimal(row[FieldAmount]),
			AllocationMethod: asString(row[FieldAllocationMethod]),
		})
	}
	return records, nil
}

// GetOperationalMetrics pulls operational metric rows for the period
func (a *sqlAdapter) GetOperationalMetrics(ctx context.Context, start, end time.Time) ([]syncdomain.OperationalMetricRecord, error) {
	rows, err := a.queryPeriod(ctx, TableOperationalMetrics, operationalMetricFields, start, end)
	if err != nil {
		return nil, err
	}

	records := make([]syncdomain.OperationalMetricRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, syncdomain.OperationalMetricRecord{
			Name:     asString(row[FieldMetricName]),
			Category: asString(row[FieldMetricCategory]),
			Value:    asDecimal(row[FieldValue]),
			Unit:     asString(row[FieldUnit]),
		})
	}
	return records, nil
}

// GetFullReport pulls all three record kinds in one call
func (a *sqlAdapter) GetFullReport(ctx context.Context, start, end time.Time) (*syncdomain.FullReport, error) {
	financials, err := a.GetDepartmentFinancials(ctx, start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := a.GetExpenseAllocations(ctx, start, end)
	if err != nil {
		return nil, err
	}
	metrics, err := a.GetOperationalMetrics(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &syncdomain.FullReport{
		PeriodStart:          start,
		PeriodEnd:            end,
		DepartmentFinancials: financials,
		ExpenseAllocations:   expenses,
		OperationalMetrics:   metrics,
	}, nil
}

// Close releases the underlying connection
func (a *sqlAdapter) Close() error {
	return a.db.Close()
}

// queryPeriod builds and runs the period-restricted SELECT for one logical
// table, returning rows keyed by logical field names. Absent fields are
// omitted from the query entirely; the caller's zero value stands in.
func (a *sqlAdapter) queryPeriod(ctx context.Context, table string, fields []string, start, end time.Time) ([]map[string]any, error) {
	resolutions := a.resolver.ResolveMany(a.schema, table, fields...)

	selectParts := make([]string, 0, len(fields))
	for _, key := range fields {
		res := resolutions[key]
		if res.Absent {
			continue
		}
		selectParts = append(selectParts, fmt.Sprintf("%s AS %s", res.Column, key))
	}
	if len(selectParts) == 0 {
		a.logger.Warn("every requested field is absent for schema, skipping query",
			zap.String("schema", a.schema),
			zap.String("table", table),
		)
		return nil, nil
	}

	dateRes := a.resolver.Resolve(a.schema, table, FieldEntryDate)
	if dateRes.Absent {
		return nil, fmt.Errorf("%w: schema %q maps no date column for %s",
			syncdomain.ErrErpQueryFailed, a.schema, table)
	}

	physicalTable := a.resolver.TableName(a.schema, table)

	// Inclusive [start, end] becomes half-open [start, end+1d) so rows on the
	// last day are included regardless of their time component.
	endExclusive := end.AddDate(0, 0, 1)

	query := a.db.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s >= ? AND %s < ?",
		strings.Join(selectParts, ", "), physicalTable, dateRes.Column, dateRes.Column,
	))

	rows, err := a.db.QueryxContext(ctx, query, start, endExclusive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", syncdomain.ErrErpQueryFailed, err)
	}
	defer rows.Close()

	var results []map[string]any
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("%w: %v", syncdomain.ErrErpQueryFailed, err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", syncdomain.ErrErpQueryFailed, err)
	}
	return results, nil
}

// ---------------------------------------------------------------------------
// Row value coercion
// ---------------------------------------------------------------------------

// Drivers disagree on scan types (lib/pq returns []byte for numerics, mysql
// returns []byte for strings), so coercion is by value shape, not driver.

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case []byte:
		if d, err := decimal.NewFromString(string(n)); err == nil {
			return d
		}
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(n)
	case int64:
		return decimal.NewFromInt(n)
	}
	return decimal.Zero
}

func asInt(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	case []byte:
		return int(asDecimal(n).IntPart())
	case string:
		return int(asDecimal(n).IntPart())
	}
	return 0
}
