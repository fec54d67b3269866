// Package schema holds the declarative field-rule tables for ledger records
// and the generic sanitize/validate functions that consume them. Rules are
// data, not code: the same two functions serve both record kinds and any
// intermediate shape the migration pipeline produces.
package schema

import "regexp"

type FieldType string

const (
	TypeString   FieldType = "string"
	TypeNumber   FieldType = "number"
	TypeDate     FieldType = "date"
	TypeDateTime FieldType = "datetime"
	TypeEmail    FieldType = "email"
	TypePhone    FieldType = "phone"
	TypeURL      FieldType = "url"
)

// Rule is the validation contract for a single field. Min/Max are nil when
// the field has no numeric range.
type Rule struct {
	Type      FieldType
	Required  bool
	Min       *float64
	Max       *float64
	MinLength int
	MaxLength int
	Enum      []string
	Pattern   *regexp.Regexp
	Default   interface{}
}

// Schema is an ordered rule table. Fields fixes the evaluation (and error
// reporting) order.
type Schema struct {
	Name   string
	Fields []string
	Rules  map[string]Rule
}

const (
	StatusConfirmed = "confirmed"
	StatusApproved  = "approved"

	FallbackCategory = "Miscellaneous"
)

var (
	donationIDPattern = regexp.MustCompile(`^GP\d{13}[A-Z]{3}$`)
	expenseIDPattern  = regexp.MustCompile(`^EX\d{13}[A-Z]{3}$`)
	phonePattern      = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,15}$`)
)

var PaymentModes = []string{"Cash", "UPI", "Bank Transfer", "Cheque", "Online"}

var ExpenseCategories = []string{
	"Decoration", "Food & Prasad", "Sound & Music", "Transportation",
	"Utilities", "Miscellaneous", "Donation", "Maintenance",
}

var Donation = &Schema{
	Name: "donation",
	Fields: []string{
		"id", "name", "email", "phone", "wing", "floor", "flat",
		"amount", "paymentMode", "date", "note", "timestamp", "status",
	},
	Rules: map[string]Rule{
		"id":          {Type: TypeString, Required: true, Pattern: donationIDPattern},
		"name":        {Type: TypeString, Required: true, MinLength: 2, MaxLength: 100},
		"email":       {Type: TypeEmail},
		"phone":       {Type: TypePhone, Pattern: phonePattern},
		"wing":        {Type: TypeString, Required: true, Enum: []string{"A", "B", "C", "D", "E"}},
		"floor":       {Type: TypeNumber, Required: true, Min: fptr(0), Max: fptr(50)},
		"flat":        {Type: TypeString, Required: true, MinLength: 1, MaxLength: 20},
		"amount":      {Type: TypeNumber, Required: true, Min: fptr(1), Max: fptr(1000000)},
		"paymentMode": {Type: TypeString, Required: true, Enum: PaymentModes},
		"date":        {Type: TypeDate, Required: true},
		"note":        {Type: TypeString, MaxLength: 500},
		"timestamp":   {Type: TypeDateTime, Required: true},
		"status":      {Type: TypeString, Enum: []string{"pending", "confirmed", "cancelled"}, Default: StatusConfirmed},
	},
}

var Expense = &Schema{
	Name: "expense",
	Fields: []string{
		"id", "item", "cost", "date", "reason", "category",
		"timestamp", "approvedBy", "receiptUrl", "status",
	},
	Rules: map[string]Rule{
		"id":         {Type: TypeString, Required: true, Pattern: expenseIDPattern},
		"item":       {Type: TypeString, Required: true, MinLength: 2, MaxLength: 200},
		"cost":       {Type: TypeNumber, Required: true, Min: fptr(0.01), Max: fptr(1000000)},
		"date":       {Type: TypeDate, Required: true},
		"reason":     {Type: TypeString, Required: true, MinLength: 5, MaxLength: 1000},
		"category":   {Type: TypeString, Required: true, Enum: ExpenseCategories},
		"timestamp":  {Type: TypeDateTime, Required: true},
		"approvedBy": {Type: TypeString, MaxLength: 100},
		"receiptUrl": {Type: TypeURL},
		"status":     {Type: TypeString, Enum: []string{"pending", "approved", "rejected"}, Default: StatusApproved},
	},
}

func fptr(v float64) *float64 { return &v }
