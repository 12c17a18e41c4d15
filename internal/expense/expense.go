package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the review state of an expense record
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Category classifies what an expense was for
type Category string

const (
	CategoryMeals          Category = "Meals"
	CategoryTravel         Category = "Travel"
	CategoryOfficeSupplies Category = "Office Supplies"
	CategoryOther          Category = "Other"
)

// Department identifies the submitting employee's department
type Department string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentSales       Department = "Sales"
	DepartmentMarketing   Department = "Marketing"
	DepartmentFinance     Department = "Finance"
	DepartmentHR          Department = "HR"
)

// Record represents a submitted expense receipt with its review metadata
type Record struct {
	ID             int             `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	Vendor         string          `json:"vendor"`
	Category       Category        `json:"category"`
	Description    string          `json:"description,omitempty"`
	EmployeeName   string          `json:"employee_name"`
	Department     Department      `json:"department"`
	Status         Status          `json:"status"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	AttachmentName string          `json:"attachment_name,omitempty"`
	Notes          []string        `json:"notes"`
}

// clone returns a deep copy so callers can never reach store-internal state
func (r *Record) clone() *Record {
	c := *r
	c.Notes = make([]string, len(r.Notes))
	copy(c.Notes, r.Notes)
	return &c
}

// ValidStatus reports whether s is one of the three review states
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ValidCategory reports whether c is a member of the closed category set
func ValidCategory(c Category) bool {
	switch c {
	case CategoryMeals, CategoryTravel, CategoryOfficeSupplies, CategoryOther:
		return true
	}
	return false
}

// ValidDepartment reports whether d is a member of the closed department set
func ValidDepartment(d Department) bool {
	switch d {
	case DepartmentEngineering, DepartmentSales, DepartmentMarketing, DepartmentFinance, DepartmentHR:
		return true
	}
	return false
}
