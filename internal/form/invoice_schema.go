package form

import (
	"math"
	"regexp"
	"strconv"

	"invoice-dashboard-backend/internal/domain"
)

// Messages shown next to the offending form inputs.
const (
	MsgCustomerRequired = "Please select a customer."
	MsgAmountInvalid    = "Please enter an amount greater than $0."
	MsgStatusInvalid    = "Please select an invoice status."
	MsgDateInvalid      = "Please enter a date in YYYY-MM-DD format."
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// InvoiceFields holds the raw values of an invoice form submission.
// A field the client did not send is an empty string.
type InvoiceFields struct {
	ID         string
	CustomerID string
	Amount     string
	Status     string
	Date       string
}

// Invoice is the validated output of an invoice schema, with the amount
// converted to cents.
type Invoice struct {
	CustomerID  string
	AmountCents int64
	Status      string
	Date        string
}

// Errors maps a field name to the validation messages recorded against it.
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// State reports a failed submission back to the client: field errors plus
// an operation-level message.
type State struct {
	Errors  Errors `json:"errors,omitempty"`
	Message string `json:"message"`
}

// Schema validates the fields of an invoice form submission.
type Schema struct {
	validateDate bool
}

// FullInvoiceSchema validates customerId, amount, status and date.
// The id field carries no constraint of its own.
func FullInvoiceSchema() Schema {
	return Schema{validateDate: true}
}

// CreateInvoiceSchema omits id and date from the full schema; create
// stamps its own date.
func CreateInvoiceSchema() Schema {
	return Schema{}
}

// UpdateInvoiceSchema omits id and date from the full schema; update
// receives the id separately and leaves the stored date untouched.
func UpdateInvoiceSchema() Schema {
	return Schema{}
}

// Validate checks every field and collects all failures; it does not stop
// at the first bad field. On success the returned Invoice carries the
// amount in cents.
func (s Schema) Validate(fields InvoiceFields) (*Invoice, Errors) {
	errs := Errors{}

	if fields.CustomerID == "" {
		errs.add("customerId", MsgCustomerRequired)
	}

	cents, ok := parseAmountCents(fields.Amount)
	if !ok {
		errs.add("amount", MsgAmountInvalid)
	}

	if fields.Status != domain.InvoiceStatusPending && fields.Status != domain.InvoiceStatusPaid {
		errs.add("status", MsgStatusInvalid)
	}

	if s.validateDate && !datePattern.MatchString(fields.Date) {
		errs.add("date", MsgDateInvalid)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Invoice{
		CustomerID:  fields.CustomerID,
		AmountCents: cents,
		Status:      fields.Status,
		Date:        fields.Date,
	}, nil
}

// parseAmountCents coerces a decimal string to cents, rounding to the
// nearest cent. Amounts below $0.01 are rejected.
func parseAmountCents(raw string) (int64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0.01 {
		return 0, false
	}
	return int64(math.Round(v * 100)), true
}
