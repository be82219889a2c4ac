package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceSchemaValid(t *testing.T) {
	inv, errs := CreateInvoiceSchema().Validate(InvoiceFields{
		CustomerID: "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		Amount:     "15.50",
		Status:     "pending",
	})

	require.Empty(t, errs)
	require.NotNil(t, inv)
	assert.Equal(t, "3958dc9e-712f-4377-85e9-fec4b6a6442a", inv.CustomerID)
	assert.Equal(t, int64(1550), inv.AmountCents)
	assert.Equal(t, "pending", inv.Status)
}

func TestAmountCoercion(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		cents  int64
		valid  bool
	}{
		{"whole dollars", "42", 4200, true},
		{"dollars and cents", "15.50", 1550, true},
		{"minimum accepted", "0.01", 1, true},
		{"rounded to nearest cent", "10.999", 1100, true},
		{"zero", "0", 0, false},
		{"below one cent", "0.009", 0, false},
		{"negative", "-5", 0, false},
		{"not a number", "abc", 0, false},
		{"NaN", "NaN", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, errs := CreateInvoiceSchema().Validate(InvoiceFields{
				CustomerID: "c1",
				Amount:     tt.amount,
				Status:     "paid",
			})
			if tt.valid {
				require.Empty(t, errs)
				assert.Equal(t, tt.cents, inv.AmountCents)
			} else {
				require.Nil(t, inv)
				assert.Equal(t, []string{MsgAmountInvalid}, errs["amount"])
			}
		})
	}
}

func TestStatusEnum(t *testing.T) {
	for _, status := range []string{"pending", "paid"} {
		t.Run("accepts "+status, func(t *testing.T) {
			inv, errs := CreateInvoiceSchema().Validate(InvoiceFields{CustomerID: "c1", Amount: "10", Status: status})
			require.Empty(t, errs)
			assert.Equal(t, status, inv.Status)
		})
	}

	for _, status := range []string{"", "overdue", "Pending", "PAID"} {
		t.Run("rejects "+status, func(t *testing.T) {
			_, errs := CreateInvoiceSchema().Validate(InvoiceFields{CustomerID: "c1", Amount: "10", Status: status})
			assert.Equal(t, []string{MsgStatusInvalid}, errs["status"])
		})
	}
}

func TestFullInvoiceSchemaDate(t *testing.T) {
	valid := InvoiceFields{CustomerID: "c1", Amount: "10", Status: "paid"}

	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"well formed", "2026-08-23", true},
		{"pattern only, no calendar check", "9999-99-99", true},
		{"single digit month", "2026-8-23", false},
		{"slashes", "2026/08/23", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := valid
			fields.Date = tt.date
			inv, errs := FullInvoiceSchema().Validate(fields)
			if tt.ok {
				require.Empty(t, errs)
				assert.Equal(t, tt.date, inv.Date)
			} else {
				assert.Equal(t, []string{MsgDateInvalid}, errs["date"])
			}
		})
	}
}

func TestDerivedSchemasSkipDate(t *testing.T) {
	fields := InvoiceFields{CustomerID: "c1", Amount: "10", Status: "paid", Date: "not-a-date"}

	for name, schema := range map[string]Schema{
		"create": CreateInvoiceSchema(),
		"update": UpdateInvoiceSchema(),
	} {
		t.Run(name, func(t *testing.T) {
			inv, errs := schema.Validate(fields)
			require.Empty(t, errs)
			require.NotNil(t, inv)
		})
	}
}

func TestValidateCollectsAllFailures(t *testing.T) {
	inv, errs := CreateInvoiceSchema().Validate(InvoiceFields{})

	require.Nil(t, inv)
	assert.Equal(t, []string{MsgCustomerRequired}, errs["customerId"])
	assert.Equal(t, []string{MsgAmountInvalid}, errs["amount"])
	assert.Equal(t, []string{MsgStatusInvalid}, errs["status"])
	assert.NotContains(t, errs, "date")
}
