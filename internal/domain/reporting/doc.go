// Package reporting contains the Normalized Financial Model bounded context.
// The sync orchestrator is the sole writer; dashboard and report queries
// only read from it.
//
// Key concepts:
//   - ReportingPeriod: The normalized window all financial facts for a sync attach to,
//     unique per (tenant, period_start, period_end)
//   - DepartmentFinancial: Per-department financials with stored derived fields
//     (net_sales, gross_profit) recomputed on every write
//   - ExpenseAllocation / OperationalMetric: Append-only fact rows
package reporting
