package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BusyTimeTracer", func() {
	var t *BusyTimeTracer

	BeforeEach(func() {
		t = NewBusyTimeTracer(nil)
	})

	It("should track busy time, one scope", func() {
		t.WriteRecord(ScopeRecord{Name: "f", Start: 1, End: 2})

		Expect(t.BusyTime()).To(BeEquivalentTo(1))
	})

	It("should track busy time, two scopes", func() {
		t.WriteRecord(ScopeRecord{Name: "f", Start: 1, End: 2})
		t.WriteRecord(ScopeRecord{Name: "f", Start: 3, End: 4})

		Expect(t.BusyTime()).To(BeEquivalentTo(2))
	})

	It("should track busy time, two scopes adjacent", func() {
		t.WriteRecord(ScopeRecord{Name: "f", Start: 1, End: 2})
		t.WriteRecord(ScopeRecord{Name: "f", Start: 2, End: 3})

		Expect(t.BusyTime()).To(BeEquivalentTo(2))
	})

	It("should track busy time, two scopes overlap", func() {
		t.WriteRecord(ScopeRecord{Name: "f", Start: 10, End: 20})
		t.WriteRecord(ScopeRecord{Name: "f", Start: 15, End: 25})

		Expect(t.BusyTime()).To(BeEquivalentTo(15))
	})

	It("should track busy time, contained scope", func() {
		t.WriteRecord(ScopeRecord{Name: "f", Start: 10, End: 40})
		t.WriteRecord(ScopeRecord{Name: "f", Start: 20, End: 30})

		Expect(t.BusyTime()).To(BeEquivalentTo(30))
	})

	It("should track busy time, out-of-order completion", func() {
		t.WriteRecord(ScopeRecord{Name: "f", Start: 30, End: 40})
		t.WriteRecord(ScopeRecord{Name: "f", Start: 10, End: 20})
		t.WriteRecord(ScopeRecord{Name: "f", Start: 15, End: 35})

		Expect(t.BusyTime()).To(BeEquivalentTo(30))
	})

	It("should ignore filtered records", func() {
		t = NewBusyTimeTracer(func(r ScopeRecord) bool {
			return r.Name == "keep"
		})

		t.WriteRecord(ScopeRecord{Name: "keep", Start: 1, End: 2})
		t.WriteRecord(ScopeRecord{Name: "drop", Start: 10, End: 20})

		Expect(t.BusyTime()).To(BeEquivalentTo(1))
	})
})
