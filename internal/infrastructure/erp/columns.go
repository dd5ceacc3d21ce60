package erp

// Logical table names used by adapters. Adapters query in terms of these and
// the logical field keys below; the resolver translates both into the
// physical names of a tenant's schema variant.
const (
	TableDepartmentFinancials = "department_financials"
	TableExpenseAllocations   = "expense_allocations"
	TableOperationalMetrics   = "operational_metrics"
)

// Logical field keys per table
const (
	FieldDepartment       = "department"
	FieldGrossSales       = "gross_sales"
	FieldDiscounts        = "discounts"
	FieldCostOfGoodsSold  = "cost_of_goods_sold"
	FieldUnitsSold        = "units_sold"
	FieldEntryDate        = "entry_date"
	FieldCategory         = "category"
	FieldAmount           = "amount"
	FieldAllocationMethod = "allocation_method"
	FieldMetricName       = "metric_name"
	FieldMetricCategory   = "metric_category"
	FieldValue            = "value"
	FieldUnit             = "unit"
)

// Absent marks a logical field that has no physical column in a schema
// variant. It is configuration, not an error: adapters must omit the field
// from their queries and output.
const Absent = ""

// DefaultSchemaID is the mapping used when a tenant's schema identifier is
// not recognized.
const DefaultSchemaID = "cdk_drive_2020"

type tableMapping map[string]string

type schemaMapping map[string]tableMapping

// columnMappings is the static column-mapping table, keyed by
// (schema identifier, logical table, logical field key). Every field key an
// adapter queries has an entry (possibly Absent) for every known schema.
// Loaded once at build time, read-only at runtime.
var columnMappings = map[string]schemaMapping{
	// CDK Drive, 2020 chart-of-accounts layout. Also the designated default.
	"cdk_drive_2020": {
		TableDepartmentFinancials: {
			FieldDepartment:      "dept_name",
			FieldGrossSales:      "gross_sales_amt",
			FieldDiscounts:       "discount_amt",
			FieldCostOfGoodsSold: "cogs_amt",
			FieldUnitsSold:       "units_sold",
			FieldEntryDate:       "posting_date",
		},
		TableExpenseAllocations: {
			FieldCategory:         "expense_category",
			FieldDepartment:       "dept_name",
			FieldAmount:           "expense_amt",
			FieldAllocationMethod: "alloc_method",
			FieldEntryDate:        "posting_date",
		},
		TableOperationalMetrics: {
			FieldMetricName:     "metric_name",
			FieldMetricCategory: "metric_group",
			FieldValue:          "metric_value",
			FieldUnit:           "uom",
			FieldEntryDate:      "snapshot_date",
		},
	},

	// CDK Drive, pre-2017 installs. No per-unit sales counts, expenses are
	// posted without an allocation method, KPIs carry no unit of measure.
	"cdk_drive_2016": {
		TableDepartmentFinancials: {
			FieldDepartment:      "department_desc",
			FieldGrossSales:      "total_sales",
			FieldDiscounts:       "total_discounts",
			FieldCostOfGoodsSold: "cost_of_sales",
			FieldUnitsSold:       Absent,
			FieldEntryDate:       "gl_date",
		},
		TableExpenseAllocations: {
			FieldCategory:         "acct_category",
			FieldDepartment:       "department_desc",
			FieldAmount:           "amount",
			FieldAllocationMethod: Absent,
			FieldEntryDate:        "gl_date",
		},
		TableOperationalMetrics: {
			FieldMetricName:     "kpi_name",
			FieldMetricCategory: "kpi_group",
			FieldValue:          "kpi_value",
			FieldUnit:           Absent,
			FieldEntryDate:      "gl_date",
		},
	},

	// Reynolds ERA Ignite
	"era_ignite": {
		TableDepartmentFinancials: {
			FieldDepartment:      "dept_description",
			FieldGrossSales:      "sales_gross",
			FieldDiscounts:       "sales_discounts",
			FieldCostOfGoodsSold: "sales_cost",
			FieldUnitsSold:       "unit_count",
			FieldEntryDate:       "accounting_date",
		},
		TableExpenseAllocations: {
			FieldCategory:         "expense_class",
			FieldDepartment:       "dept_description",
			FieldAmount:           "expense_total",
			FieldAllocationMethod: "distribution_code",
			FieldEntryDate:        "accounting_date",
		},
		TableOperationalMetrics: {
			FieldMetricName:     "measure_name",
			FieldMetricCategory: "measure_class",
			FieldValue:          "measure_value",
			FieldUnit:           "measure_unit",
			FieldEntryDate:      "accounting_date",
		},
	},

	// Reynolds ERA classic (green-screen era exports)
	"era_classic": {
		TableDepartmentFinancials: {
			FieldDepartment:      "dept_no_desc",
			FieldGrossSales:      "gross_amt",
			FieldDiscounts:       "disc_amt",
			FieldCostOfGoodsSold: "cost_amt",
			FieldUnitsSold:       Absent,
			FieldEntryDate:       "acct_date",
		},
		TableExpenseAllocations: {
			FieldCategory:         "exp_class",
			FieldDepartment:       "dept_no_desc",
			FieldAmount:           "exp_amt",
			FieldAllocationMethod: Absent,
			FieldEntryDate:        "acct_date",
		},
		TableOperationalMetrics: {
			FieldMetricName:     "measure",
			FieldMetricCategory: Absent,
			FieldValue:          "meas_value",
			FieldUnit:           Absent,
			FieldEntryDate:      "acct_date",
		},
	},
}

// tableNames maps logical tables to the physical tables of each schema variant
var tableNames = map[string]map[string]string{
	"cdk_drive_2020": {
		TableDepartmentFinancials: "gl_department_summary",
		TableExpenseAllocations:   "gl_expense_detail",
		TableOperationalMetrics:   "ops_metric_snapshot",
	},
	"cdk_drive_2016": {
		TableDepartmentFinancials: "gl_deptsum",
		TableExpenseAllocations:   "gl_expdetail",
		TableOperationalMetrics:   "ops_kpi",
	},
	"era_ignite": {
		TableDepartmentFinancials: "dept_financial_summary",
		TableExpenseAllocations:   "expense_ledger",
		TableOperationalMetrics:   "operational_kpis",
	},
	"era_classic": {
		TableDepartmentFinancials: "deptfin",
		TableExpenseAllocations:   "expledger",
		TableOperationalMetrics:   "opkpi",
	},
}

// KnownSchemas lists every configured schema identifier
func KnownSchemas() []string {
	schemas := make([]string, 0, len(columnMappings))
	for s := range columnMappings {
		schemas = append(schemas, s)
	}
	return schemas
}
