package expense

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

// viewFixture is a fixed fifteen-record collection with hand-computed
// expectations for the view tests. Ids 1 and 15 share an amount, as do
// 6 and 7, so tie stability is observable.
func viewFixture() []*Record {
	day := func(d int) time.Time {
		return time.Date(2026, time.July, d, 0, 0, 0, 0, time.UTC)
	}
	amount := decimal.RequireFromString

	fix := func(id int, amt string, purchase int, vendor string, cat Category, employee string, dept Department, status Status) *Record {
		return &Record{
			ID:           id,
			Amount:       amount(amt),
			PurchaseDate: day(purchase),
			Vendor:       vendor,
			Category:     cat,
			EmployeeName: employee,
			Department:   dept,
			Status:       status,
			SubmittedAt:  day(purchase).Add(24 * time.Hour),
			Notes:        []string{},
		}
	}

	return []*Record{
		fix(1, "12.00", 1, "Starbucks Coffee", CategoryMeals, "Alice Johnson", DepartmentEngineering, StatusPending),
		fix(2, "30.00", 3, "Chipotle", CategoryMeals, "Bob Smith", DepartmentSales, StatusPending),
		fix(3, "25.50", 5, "Olive Garden", CategoryMeals, "Carla Diaz", DepartmentMarketing, StatusApproved),
		fix(4, "120.00", 6, "Delta Airlines", CategoryTravel, "Alice Johnson", DepartmentEngineering, StatusPending),
		fix(5, "300.00", 7, "Hilton Hotels", CategoryTravel, "Daniel Cho", DepartmentFinance, StatusRejected),
		fix(6, "45.10", 8, "Staples", CategoryOfficeSupplies, "Erin Walsh", DepartmentHR, StatusPending),
		fix(7, "45.10", 9, "Office Depot", CategoryOfficeSupplies, "Frank Moore", DepartmentEngineering, StatusApproved),
		fix(8, "99.99", 10, "CloudHost", CategoryOther, "Grace Lee", DepartmentSales, StatusPending),
		fix(9, "75.25", 11, "Uber", CategoryTravel, "Henry Patel", DepartmentMarketing, StatusApproved),
		fix(10, "18.40", 12, "Panera Bread", CategoryMeals, "Isabel Torres", DepartmentFinance, StatusPending),
		fix(11, "55.00", 13, "Ruth Chris", CategoryMeals, "Jonathan Pierce", DepartmentHR, StatusRejected),
		fix(12, "210.75", 14, "United Airlines", CategoryTravel, "Karen Young", DepartmentEngineering, StatusPending),
		fix(13, "15.00", 15, "City Parking", CategoryOther, "Liam Brennan", DepartmentSales, StatusApproved),
		fix(14, "62.30", 16, "Amazon Business", CategoryOfficeSupplies, "Maya Singh", DepartmentMarketing, StatusPending),
		fix(15, "12.00", 17, "Subway", CategoryMeals, "Noah Williams", DepartmentFinance, StatusApproved),
	}
}

func idsOf(records []*Record) []int {
	ids := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

var _ = Describe("Apply", func() {
	var records []*Record

	BeforeEach(func() {
		records = viewFixture()
	})

	When("no parameters are given", func() {
		It("should return every record", func() {
			Expect(Apply(records, Params{})).To(HaveLen(15))
		})
	})

	Describe("filter composition", func() {
		It("should AND status and category filters", func() {
			view := Apply(records, Params{
				Statuses:   []Status{StatusPending},
				Categories: []Category{CategoryMeals},
			})
			Expect(idsOf(view)).To(Equal([]int{1, 2, 10}))
		})

		It("should OR values within the status dimension", func() {
			view := Apply(records, Params{
				Statuses: []Status{StatusApproved, StatusRejected},
			})
			Expect(idsOf(view)).To(Equal([]int{3, 5, 7, 9, 11, 13, 15}))
		})

		It("should treat an empty filter set as no restriction", func() {
			view := Apply(records, Params{Statuses: []Status{}})
			Expect(view).To(HaveLen(15))
		})
	})

	Describe("date range", func() {
		It("should keep records inside the inclusive purchase-date range", func() {
			from := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)
			to := time.Date(2026, time.July, 13, 0, 0, 0, 0, time.UTC)
			view := Apply(records, Params{DateFrom: &from, DateTo: &to})
			Expect(idsOf(view)).To(Equal([]int{8, 9, 10, 11}))
		})

		It("should compare by calendar day, ignoring time of day", func() {
			from := time.Date(2026, time.July, 17, 23, 59, 0, 0, time.UTC)
			view := Apply(records, Params{DateFrom: &from})
			Expect(idsOf(view)).To(Equal([]int{15}))
		})
	})

	Describe("free-text search", func() {
		It("should always match an exact substring", func() {
			view := Apply(records, Params{Query: "starbucks"})
			Expect(idsOf(view)).To(Equal([]int{1}))
		})

		It("should match regardless of case", func() {
			view := Apply(records, Params{Query: "STARBUCKS"})
			Expect(idsOf(view)).To(Equal([]int{1}))
		})

		It("should match employee names and descriptions too", func() {
			view := Apply(records, Params{Query: "alice"})
			Expect(idsOf(view)).To(Equal([]int{1, 4}))
		})

		It("should tolerate a one-character typo in a long token", func() {
			view := Apply(records, Params{Query: "starbacks"})
			Expect(idsOf(view)).To(Equal([]int{1}))
		})

		It("should not fuzz tokens shorter than four characters", func() {
			view := Apply(records, Params{Query: "ubr"})
			Expect(view).To(BeEmpty())
		})

		It("should require every token of a multi-word query to match", func() {
			view := Apply(records, Params{Query: "alice johnson"})
			Expect(idsOf(view)).To(Equal([]int{1, 4}))

			view = Apply(records, Params{Query: "alice subway"})
			Expect(view).To(BeEmpty())
		})

		It("should narrow before the other filters apply", func() {
			view := Apply(records, Params{
				Query:    "alice",
				Statuses: []Status{StatusPending},
			})
			Expect(idsOf(view)).To(Equal([]int{1, 4}))

			view = Apply(records, Params{
				Query:      "alice",
				Categories: []Category{CategoryTravel},
			})
			Expect(idsOf(view)).To(Equal([]int{4}))
		})
	})

	It("should never mutate the snapshot it is given", func() {
		before := idsOf(records)
		Apply(records, Params{Statuses: []Status{StatusRejected}})
		Expect(idsOf(records)).To(Equal(before))
	})
})

var _ = Describe("Sort", func() {
	var records []*Record

	BeforeEach(func() {
		records = viewFixture()
	})

	It("should sort by amount ascending with ties in original order", func() {
		sorted := Sort(records, SortByAmount, Ascending)
		Expect(idsOf(sorted)).To(Equal([]int{1, 15, 13, 10, 3, 2, 6, 7, 11, 14, 9, 8, 4, 12, 5}))
	})

	It("should be deterministic when re-sorting an already sorted set", func() {
		once := Sort(records, SortByAmount, Ascending)
		twice := Sort(once, SortByAmount, Ascending)
		Expect(idsOf(twice)).To(Equal(idsOf(once)))
	})

	It("should sort by amount descending", func() {
		sorted := Sort(records, SortByAmount, Descending)
		Expect(sorted[0].ID).To(Equal(5))
		Expect(sorted[len(sorted)-1].Amount.Equal(decimal.RequireFromString("12.00"))).To(BeTrue())
	})

	It("should preserve tie order under descending sort too", func() {
		sorted := Sort(records, SortByAmount, Descending)
		ids := idsOf(sorted)
		Expect(indexOf(ids, 6)).To(BeNumerically("<", indexOf(ids, 7)))
		Expect(indexOf(ids, 1)).To(BeNumerically("<", indexOf(ids, 15)))
	})

	It("should sort chronologically by purchase date", func() {
		sorted := Sort(records, SortByPurchaseDate, Ascending)
		Expect(sorted[0].ID).To(Equal(1))
		Expect(sorted[len(sorted)-1].ID).To(Equal(15))
	})

	It("should sort lexicographically by employee name", func() {
		sorted := Sort(records, SortByEmployee, Ascending)
		Expect(sorted[0].EmployeeName).To(Equal("Alice Johnson"))
		Expect(sorted[len(sorted)-1].EmployeeName).To(Equal("Noah Williams"))
	})

	It("should leave the input slice untouched", func() {
		before := idsOf(records)
		Sort(records, SortByAmount, Descending)
		Expect(idsOf(records)).To(Equal(before))
	})
})

var _ = Describe("Paginate", func() {
	var records []*Record

	BeforeEach(func() {
		records = viewFixture()
	})

	It("should fill the first page to the page size", func() {
		page := Paginate(records, 0, 10)
		Expect(page.Items).To(HaveLen(10))
		Expect(page.Page).To(Equal(0))
		Expect(page.TotalCount).To(Equal(15))
		Expect(page.TotalPages).To(Equal(2))
	})

	It("should put the remainder on the last page", func() {
		page := Paginate(records, 1, 10)
		Expect(page.Items).To(HaveLen(5))
		Expect(page.Items[0].ID).To(Equal(11))
	})

	It("should clamp an out-of-range page index to the last valid page", func() {
		page := Paginate(records, 5, 10)
		Expect(page.Page).To(Equal(1))
		Expect(page.Items).To(HaveLen(5))
	})

	It("should clamp a negative page index to the first page", func() {
		page := Paginate(records, -3, 10)
		Expect(page.Page).To(Equal(0))
		Expect(page.Items).To(HaveLen(10))
	})

	It("should handle an empty collection", func() {
		page := Paginate(nil, 0, 10)
		Expect(page.Items).To(BeEmpty())
		Expect(page.TotalCount).To(Equal(0))
		Expect(page.TotalPages).To(Equal(0))
	})

	It("should default the page size when none is given", func() {
		page := Paginate(records, 0, 0)
		Expect(page.Items).To(HaveLen(DefaultPageSize))
	})
})

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
