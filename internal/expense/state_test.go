package expense

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltStateStore", func() {
	var (
		dbPath string
		state  *BoltStateStore
	)

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "test.db")
		var err error
		state, err = NewBoltStateStore(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if state != nil {
			state.Close()
		}
	})

	Describe("Load", func() {
		When("nothing has been saved", func() {
			It("should return nil data and no error", func() {
				data, err := state.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(data).To(BeNil())
			})
		})

		When("a snapshot was saved", func() {
			BeforeEach(func() {
				Expect(state.Save([]byte(`[{"id":1}]`))).To(Succeed())
			})

			It("should return the saved bytes", func() {
				data, err := state.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal(`[{"id":1}]`))
			})
		})
	})

	Describe("Save", func() {
		It("should replace the previous snapshot", func() {
			Expect(state.Save([]byte("first"))).To(Succeed())
			Expect(state.Save([]byte("second"))).To(Succeed())

			data, err := state.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("second"))
		})
	})

	Describe("reopening the file", func() {
		It("should see the snapshot written before closing", func() {
			Expect(state.Save([]byte("durable"))).To(Succeed())
			Expect(state.Close()).To(Succeed())

			reopened, err := NewBoltStateStore(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer reopened.Close()

			data, err := reopened.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("durable"))
			state = nil
		})
	})
})
