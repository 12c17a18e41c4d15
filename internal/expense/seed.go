package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// seedRecords is the sample collection the store starts from when the
// persistence layer has no usable snapshot, so a fresh install has
// something to show.
func seedRecords() []*Record {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	amount := decimal.RequireFromString

	return []*Record{
		{
			ID:           1,
			Amount:       amount("42.50"),
			PurchaseDate: day(2026, time.July, 14),
			Vendor:       "The Daily Grind",
			Category:     CategoryMeals,
			Description:  "Team lunch after sprint review",
			EmployeeName: "Priya Raman",
			Department:   DepartmentEngineering,
			Status:       StatusPending,
			SubmittedAt:  day(2026, time.July, 15).Add(9 * time.Hour),
			Notes:        []string{},
		},
		{
			ID:             2,
			Amount:         amount("318.20"),
			PurchaseDate:   day(2026, time.July, 2),
			Vendor:         "Skyline Air",
			Category:       CategoryTravel,
			Description:    "Return flight for the client workshop",
			EmployeeName:   "Marcus Webb",
			Department:     DepartmentSales,
			Status:         StatusApproved,
			SubmittedAt:    day(2026, time.July, 3).Add(11 * time.Hour),
			AttachmentName: "boarding-pass.pdf",
			Notes:          []string{"Approved per Q3 travel budget"},
		},
		{
			ID:           3,
			Amount:       amount("18.99"),
			PurchaseDate: day(2026, time.July, 20),
			Vendor:       "Paper Trail Supplies",
			Category:     CategoryOfficeSupplies,
			Description:  "Whiteboard markers",
			EmployeeName: "Priya Raman",
			Department:   DepartmentEngineering,
			Status:       StatusPending,
			SubmittedAt:  day(2026, time.July, 20).Add(16 * time.Hour),
			Notes:        []string{},
		},
		{
			ID:           4,
			Amount:       amount("95.00"),
			PurchaseDate: day(2026, time.June, 28),
			Vendor:       "Hotel Meridian",
			Category:     CategoryTravel,
			Description:  "One night stay, conference trip",
			EmployeeName: "Sofia Alvarez",
			Department:   DepartmentMarketing,
			Status:       StatusRejected,
			SubmittedAt:  day(2026, time.June, 30).Add(8 * time.Hour),
			Notes:        []string{"Missing itemized receipt", "Resubmit with the hotel folio"},
		},
		{
			ID:             5,
			Amount:         amount("63.75"),
			PurchaseDate:   day(2026, time.July, 18),
			Vendor:         "Bistro Quarante",
			Category:       CategoryMeals,
			Description:    "Dinner with candidate",
			EmployeeName:   "Daniel Okafor",
			Department:     DepartmentHR,
			Status:         StatusApproved,
			SubmittedAt:    day(2026, time.July, 19).Add(10 * time.Hour),
			AttachmentName: "dinner-receipt.jpg",
			Notes:          []string{},
		},
		{
			ID:           6,
			Amount:       amount("240.00"),
			PurchaseDate: day(2026, time.July, 22),
			Vendor:       "CloudHost Inc",
			Category:     CategoryOther,
			Description:  "Annual domain and hosting renewal",
			EmployeeName: "Marcus Webb",
			Department:   DepartmentSales,
			Status:       StatusPending,
			SubmittedAt:  day(2026, time.July, 22).Add(14 * time.Hour),
			Notes:        []string{},
		},
		{
			ID:           7,
			Amount:       amount("12.40"),
			PurchaseDate: day(2026, time.July, 25),
			Vendor:       "Metro Transit",
			Category:     CategoryTravel,
			Description:  "Airport transfer",
			EmployeeName: "Sofia Alvarez",
			Department:   DepartmentMarketing,
			Status:       StatusPending,
			SubmittedAt:  day(2026, time.July, 25).Add(18 * time.Hour),
			Notes:        []string{},
		},
		{
			ID:           8,
			Amount:       amount("530.10"),
			PurchaseDate: day(2026, time.July, 8),
			Vendor:       "Ergo Workspace",
			Category:     CategoryOfficeSupplies,
			Description:  "Standing desk for the finance office",
			EmployeeName: "Lena Fischer",
			Department:   DepartmentFinance,
			Status:       StatusApproved,
			SubmittedAt:  day(2026, time.July, 9).Add(9 * time.Hour),
			Notes:        []string{"Approved, capitalized under office equipment"},
		},
	}
}
