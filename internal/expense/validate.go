package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxAttachmentSize = 10 << 20 // 10 MiB
	dateLayout        = "2006-01-02"
)

var (
	minAmount = decimal.RequireFromString("0.01")
	maxAmount = decimal.RequireFromString("999999.99")
)

// allowedAttachmentTypes are the media types a receipt attachment may carry
var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// Code identifies the kind of constraint a field violated
type Code string

const (
	CodeRequired        Code = "Required"
	CodeTooLong         Code = "TooLong"
	CodeOutOfRange      Code = "OutOfRange"
	CodeWrongType       Code = "WrongType"
	CodeFutureDate      Code = "FutureDate"
	CodeInvalidChoice   Code = "InvalidChoice"
	CodeTooLarge        Code = "TooLarge"
	CodeUnsupportedType Code = "UnsupportedType"
)

// Violation describes a single field-level constraint failure
type Violation struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Submission carries the raw field values of a candidate expense as the UI
// delivers them, before the store assigns id, status and submission time.
// Amount and PurchaseDate arrive as text because the form boundary is text.
type Submission struct {
	Amount         string `json:"amount"`
	PurchaseDate   string `json:"purchase_date"`
	Vendor         string `json:"vendor"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	EmployeeName   string `json:"employee_name"`
	Department     string `json:"department"`
	AttachmentName string `json:"attachment_name"`
	AttachmentSize int64  `json:"attachment_size"`
	AttachmentType string `json:"attachment_type"`
}

// Fields is the typed value object produced by a successful validation
type Fields struct {
	Amount         decimal.Decimal
	PurchaseDate   time.Time
	Vendor         string
	Category       Category
	Description    string
	EmployeeName   string
	Department     Department
	AttachmentName string
}

// Policy configures validation behavior that varies by deployment.
// AttachmentRequired defaults to false: a submission without a receipt file
// is accepted unless the flag says otherwise.
type Policy struct {
	AttachmentRequired bool
}

// Validator checks candidate submissions against the expense constraints
type Validator struct {
	policy     Policy
	timeSource TimeSource
}

// NewValidator creates a Validator using the real clock
func NewValidator(policy Policy) *Validator {
	return &Validator{policy: policy, timeSource: &defaultTimeSource{}}
}

// NewValidatorWithDeps creates a Validator with a custom time source for testing
func NewValidatorWithDeps(policy Policy, timeSource TimeSource) *Validator {
	return &Validator{policy: policy, timeSource: timeSource}
}

// Validate checks every constraint and collects all violations so the caller
// can surface them together. A nil violation slice means the submission is
// valid and the returned Fields are safe to hand to the store.
func (v *Validator) Validate(sub Submission) (*Fields, []Violation) {
	var violations []Violation
	fields := &Fields{
		Vendor:         strings.TrimSpace(sub.Vendor),
		Description:    strings.TrimSpace(sub.Description),
		EmployeeName:   strings.TrimSpace(sub.EmployeeName),
		AttachmentName: strings.TrimSpace(sub.AttachmentName),
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(sub.Amount))
	if err != nil {
		violations = append(violations, Violation{
			Field:   "amount",
			Code:    CodeWrongType,
			Message: "amount must be a number",
		})
	} else if amount.LessThan(minAmount) || amount.GreaterThan(maxAmount) {
		violations = append(violations, Violation{
			Field:   "amount",
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("amount must be between %s and %s", minAmount, maxAmount),
		})
	} else {
		fields.Amount = amount
	}

	purchaseDate, err := time.Parse(dateLayout, strings.TrimSpace(sub.PurchaseDate))
	if err != nil {
		violations = append(violations, Violation{
			Field:   "purchase_date",
			Code:    CodeWrongType,
			Message: "purchase date must be a valid date (YYYY-MM-DD)",
		})
	} else if dayOf(purchaseDate).After(dayOf(v.timeSource.Now())) {
		// Comparison is by calendar day: a purchase dated today is fine
		violations = append(violations, Violation{
			Field:   "purchase_date",
			Code:    CodeFutureDate,
			Message: "purchase date cannot be in the future",
		})
	} else {
		fields.PurchaseDate = dayOf(purchaseDate)
	}

	if fields.Vendor == "" {
		violations = append(violations, Violation{
			Field:   "vendor",
			Code:    CodeRequired,
			Message: "vendor is required",
		})
	} else if len(fields.Vendor) > maxNameLen {
		violations = append(violations, Violation{
			Field:   "vendor",
			Code:    CodeTooLong,
			Message: fmt.Sprintf("vendor must be at most %d characters", maxNameLen),
		})
	}

	if fields.EmployeeName == "" {
		violations = append(violations, Violation{
			Field:   "employee_name",
			Code:    CodeRequired,
			Message: "employee name is required",
		})
	} else if len(fields.EmployeeName) > maxNameLen {
		violations = append(violations, Violation{
			Field:   "employee_name",
			Code:    CodeTooLong,
			Message: fmt.Sprintf("employee name must be at most %d characters", maxNameLen),
		})
	}

	if len(fields.Description) > maxDescriptionLen {
		violations = append(violations, Violation{
			Field:   "description",
			Code:    CodeTooLong,
			Message: fmt.Sprintf("description must be at most %d characters", maxDescriptionLen),
		})
	}

	category := Category(strings.TrimSpace(sub.Category))
	switch {
	case category == "":
		violations = append(violations, Violation{
			Field:   "category",
			Code:    CodeRequired,
			Message: "category is required",
		})
	case !ValidCategory(category):
		violations = append(violations, Violation{
			Field:   "category",
			Code:    CodeInvalidChoice,
			Message: fmt.Sprintf("unknown category %q", category),
		})
	default:
		fields.Category = category
	}

	department := Department(strings.TrimSpace(sub.Department))
	switch {
	case department == "":
		violations = append(violations, Violation{
			Field:   "department",
			Code:    CodeRequired,
			Message: "department is required",
		})
	case !ValidDepartment(department):
		violations = append(violations, Violation{
			Field:   "department",
			Code:    CodeInvalidChoice,
			Message: fmt.Sprintf("unknown department %q", department),
		})
	default:
		fields.Department = department
	}

	violations = append(violations, v.validateAttachment(sub, fields)...)

	if len(violations) > 0 {
		return nil, violations
	}
	return fields, nil
}

func (v *Validator) validateAttachment(sub Submission, fields *Fields) []Violation {
	if fields.AttachmentName == "" {
		if v.policy.AttachmentRequired {
			return []Violation{{
				Field:   "attachment",
				Code:    CodeRequired,
				Message: "a receipt attachment is required",
			}}
		}
		return nil
	}

	var violations []Violation
	if sub.AttachmentSize > maxAttachmentSize {
		violations = append(violations, Violation{
			Field:   "attachment",
			Code:    CodeTooLarge,
			Message: "attachment must be at most 10 MiB",
		})
	}
	if sub.AttachmentType != "" && !allowedAttachmentTypes[strings.ToLower(sub.AttachmentType)] {
		violations = append(violations, Violation{
			Field:   "attachment",
			Code:    CodeUnsupportedType,
			Message: "attachment must be a JPEG, PNG or PDF",
		})
	}
	return violations
}

// dayOf truncates a timestamp to its calendar day in UTC
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
