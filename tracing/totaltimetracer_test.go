package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TotalTimeTracer", func() {
	It("should sum scope durations", func() {
		t := NewTotalTimeTracer(nil)

		t.WriteRecord(ScopeRecord{Name: "f", Start: 100, End: 150})
		t.WriteRecord(ScopeRecord{Name: "g", Start: 120, End: 180})

		Expect(t.TotalTime()).To(BeEquivalentTo(110))
	})

	It("should only count matching scopes", func() {
		t := NewTotalTimeTracer(func(r ScopeRecord) bool {
			return r.Name == "f"
		})

		t.WriteRecord(ScopeRecord{Name: "f", Start: 100, End: 150})
		t.WriteRecord(ScopeRecord{Name: "g", Start: 120, End: 180})

		Expect(t.TotalTime()).To(BeEquivalentTo(50))
	})
})

var _ = Describe("AverageTimeTracer", func() {
	It("should average scope durations", func() {
		t := NewAverageTimeTracer(nil)

		t.WriteRecord(ScopeRecord{Name: "f", Start: 0, End: 100})
		t.WriteRecord(ScopeRecord{Name: "f", Start: 100, End: 250})

		Expect(t.AverageTime()).To(BeNumerically("~", 125))
		Expect(t.TotalCount()).To(BeEquivalentTo(2))
	})

	It("should only count matching scopes", func() {
		t := NewAverageTimeTracer(func(r ScopeRecord) bool {
			return r.Name == "f"
		})

		t.WriteRecord(ScopeRecord{Name: "f", Start: 0, End: 100})
		t.WriteRecord(ScopeRecord{Name: "g", Start: 0, End: 300})

		Expect(t.AverageTime()).To(BeNumerically("~", 100))
		Expect(t.TotalCount()).To(BeEquivalentTo(1))
	})
})
