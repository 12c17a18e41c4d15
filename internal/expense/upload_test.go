package expense

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Uploader", func() {
	var uploader *Uploader

	BeforeEach(func() {
		uploader = NewUploaderWithDelay(20 * time.Millisecond)
	})

	It("should complete after the delay", func() {
		ch := uploader.Start("receipt.pdf")

		var result UploadResult
		Eventually(ch).Should(Receive(&result))
		Expect(result.Name).To(Equal("receipt.pdf"))
		Expect(result.Err).NotTo(HaveOccurred())
	})

	It("should cancel an in-flight upload", func() {
		ch := uploader.Start("receipt.pdf")
		uploader.Cancel()

		var result UploadResult
		Eventually(ch).Should(Receive(&result))
		Expect(result.Err).To(MatchError(ErrUploadCanceled))
	})

	It("should cancel the previous upload when a new file is chosen", func() {
		first := uploader.Start("old.pdf")
		second := uploader.Start("new.pdf")

		var firstResult, secondResult UploadResult
		Eventually(first).Should(Receive(&firstResult))
		Expect(firstResult.Err).To(MatchError(ErrUploadCanceled))

		Eventually(second).Should(Receive(&secondResult))
		Expect(secondResult.Name).To(Equal("new.pdf"))
		Expect(secondResult.Err).NotTo(HaveOccurred())
	})

	It("should tolerate Cancel with nothing in flight", func() {
		Expect(uploader.Cancel).NotTo(Panic())
	})
})
