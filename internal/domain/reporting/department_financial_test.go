package reporting

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// DepartmentFinancial Tests
// ---------------------------------------------------------------------------

func TestNewDepartmentFinancial(t *testing.T) {
	tenantID := uuid.New()
	periodID := uuid.New()

	df := NewDepartmentFinancial(tenantID, periodID, "Service",
		decimal.NewFromFloat(125000.50),
		decimal.NewFromFloat(3200.25),
		decimal.NewFromFloat(78000.00),
		412)

	assert.Equal(t, tenantID, df.TenantID)
	assert.Equal(t, periodID, df.ReportingPeriodID)
	assert.Equal(t, "Service", df.Department)
	assert.Equal(t, 412, df.UnitsSold)

	// Derived fields are computed at construction.
	assert.True(t, df.NetSales.Equal(decimal.NewFromFloat(121800.25)),
		"net sales = gross - discounts, got %s", df.NetSales)
	assert.True(t, df.GrossProfit.Equal(decimal.NewFromFloat(43800.25)),
		"gross profit = net - cogs, got %s", df.GrossProfit)
}

func TestDepartmentFinancial_RecomputeDerived(t *testing.T) {
	t.Run("Derived fields track base fields exactly", func(t *testing.T) {
		df := NewDepartmentFinancial(uuid.New(), uuid.New(), "Parts",
			decimal.RequireFromString("10000.0001"),
			decimal.RequireFromString("0.0001"),
			decimal.RequireFromString("9999.99"),
			1)
		assert.True(t, df.NetSales.Equal(df.GrossSales.Sub(df.Discounts)))
		assert.True(t, df.GrossProfit.Equal(df.NetSales.Sub(df.CostOfGoodsSold)))
		assert.True(t, df.GrossProfit.Equal(decimal.RequireFromString("0.01")))
	})

	t.Run("Negative gross profit is representable", func(t *testing.T) {
		df := NewDepartmentFinancial(uuid.New(), uuid.New(), "Body Shop",
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(200), 3)
		assert.True(t, df.GrossProfit.Equal(decimal.NewFromInt(-110)))
	})
}

func TestDepartmentFinancial_ApplyBase(t *testing.T) {
	df := NewDepartmentFinancial(uuid.New(), uuid.New(), "Sales",
		decimal.NewFromInt(500), decimal.NewFromInt(50), decimal.NewFromInt(300), 10)
	require.True(t, df.NetSales.Equal(decimal.NewFromInt(450)))

	df.ApplyBase(decimal.NewFromInt(800), decimal.NewFromInt(100), decimal.NewFromInt(400), 16)

	assert.True(t, df.GrossSales.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, 16, df.UnitsSold)
	// Derived fields are recomputed, never carried over.
	assert.True(t, df.NetSales.Equal(decimal.NewFromInt(700)))
	assert.True(t, df.GrossProfit.Equal(decimal.NewFromInt(300)))
}

func TestDepartmentFinancial_GrossMarginRatio(t *testing.T) {
	t.Run("Normal ratio", func(t *testing.T) {
		df := NewDepartmentFinancial(uuid.New(), uuid.New(), "Parts",
			decimal.NewFromInt(1000), decimal.NewFromInt(0), decimal.NewFromInt(600), 5)
		assert.True(t, df.GrossMarginRatio().Equal(decimal.RequireFromString("0.4")))
	})

	t.Run("Zero net sales", func(t *testing.T) {
		df := NewDepartmentFinancial(uuid.New(), uuid.New(), "Parts",
			decimal.NewFromInt(100), decimal.NewFromInt(100), decimal.NewFromInt(30), 0)
		assert.True(t, df.GrossMarginRatio().Equal(decimal.Zero))
	})
}
