package tracing

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Session", func() {
	var (
		dir  string
		path string
		s    *Session
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path = filepath.Join(dir, "out.json")
		s = NewSession(nil)
	})

	It("should not create a file when ended without begin", func() {
		s.End()

		_, err := os.Stat(path)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("should produce a complete document over begin and end", func() {
		s.Begin("test", path)
		s.End()

		data, err := os.ReadFile(path)
		Expect(err).To(BeNil())
		Expect(string(data)).To(
			Equal(`{"otherData": {},"traceEvents":[]}`))
	})

	It("should tolerate double end", func() {
		s.Begin("test", path)
		s.End()
		s.End()

		doc, truncated, err := ReadTrace(path)
		Expect(err).To(BeNil())
		Expect(truncated).To(BeFalse())
		Expect(doc.TraceEvents).To(BeEmpty())
	})

	It("should drop records written after end", func() {
		s.Begin("test", path)
		s.End()

		s.WriteRecord(ScopeRecord{Name: "late", Start: 1, End: 2})

		doc, _, err := ReadTrace(path)
		Expect(err).To(BeNil())
		Expect(doc.TraceEvents).To(BeEmpty())
	})

	It("should abandon the previous sink when begun twice", func() {
		path2 := filepath.Join(dir, "out2.json")

		s.Begin("first", path)
		s.StartScope("f1").Stop()
		s.Begin("second", path2)
		s.End()

		// The first file never received its footer.
		data, err := os.ReadFile(path)
		Expect(err).To(BeNil())
		Expect(string(data)).NotTo(HaveSuffix("]}"))

		doc, truncated, err := ReadTrace(path)
		Expect(err).To(BeNil())
		Expect(truncated).To(BeTrue())
		Expect(doc.TraceEvents).To(HaveLen(1))

		doc2, truncated2, err := ReadTrace(path2)
		Expect(err).To(BeNil())
		Expect(truncated2).To(BeFalse())
		Expect(doc2.TraceEvents).To(BeEmpty())
	})

	It("should count the records written since begin", func() {
		s.Begin("test", path)
		Expect(s.RecordCount()).To(Equal(0))

		s.StartScope("f1").Stop()
		s.StartScope("f2").Stop()
		Expect(s.RecordCount()).To(Equal(2))

		s.End()
		Expect(s.RecordCount()).To(Equal(0))
	})

	It("should record nothing when the sink cannot be opened", func() {
		s.Begin("test", filepath.Join(dir, "no-such-dir", "out.json"))

		s.StartScope("f1").Stop()
		Expect(s.RecordCount()).To(Equal(0))

		s.End()

		_, err := os.Stat(path)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("should order nested scopes inner first", func() {
		s.Begin("test", path)

		outer := s.StartScope("outer")
		inner := s.StartScope("inner")
		inner.Stop()
		outer.Stop()

		s.End()

		doc, _, err := ReadTrace(path)
		Expect(err).To(BeNil())
		Expect(doc.TraceEvents).To(HaveLen(2))
		Expect(doc.TraceEvents[0].Name).To(Equal("inner"))
		Expect(doc.TraceEvents[1].Name).To(Equal("outer"))

		innerEnd := doc.TraceEvents[0].Timestamp + doc.TraceEvents[0].Duration
		outerEnd := doc.TraceEvents[1].Timestamp + doc.TraceEvents[1].Duration
		Expect(innerEnd).To(BeNumerically("<=", outerEnd))
	})

	It("should not interleave records from concurrent goroutines", func() {
		const goroutines = 8
		const scopesPerGoroutine = 100

		s.Begin("test", path)

		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < scopesPerGoroutine; i++ {
					s.StartScope(fmt.Sprintf("g%d", g)).Stop()
				}
			}(g)
		}
		wg.Wait()

		s.End()

		doc, truncated, err := ReadTrace(path)
		Expect(err).To(BeNil())
		Expect(truncated).To(BeFalse())
		Expect(doc.TraceEvents).To(
			HaveLen(goroutines * scopesPerGoroutine))

		for _, e := range doc.TraceEvents {
			Expect(e.Category).To(Equal("function"))
			Expect(e.Phase).To(Equal("X"))
			Expect(e.Duration).To(BeNumerically(">=", 0))
		}
	})

	It("should give the same thread ID to scopes on one goroutine", func() {
		s.Begin("test", path)

		s.StartScope("f1").Stop()
		s.StartScope("f2").Stop()

		done := make(chan struct{})
		go func() {
			defer close(done)
			s.StartScope("g1").Stop()
		}()
		<-done

		s.End()

		doc, _, err := ReadTrace(path)
		Expect(err).To(BeNil())
		Expect(doc.TraceEvents[0].TID).To(Equal(doc.TraceEvents[1].TID))
		Expect(doc.TraceEvents[2].TID).NotTo(Equal(doc.TraceEvents[0].TID))
	})

	It("should hand records to attached tracers", func() {
		total := NewTotalTimeTracer(nil)
		s.AttachTracer(total)

		s.Begin("test", path)
		s.WriteRecord(ScopeRecord{Name: "f", Start: 100, End: 150})
		s.WriteRecord(ScopeRecord{Name: "g", Start: 150, End: 210})
		s.End()

		Expect(total.TotalTime()).To(BeEquivalentTo(110))
	})
})
