package timeline

import (
	"bytes"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/asciiart/internal/art"
)

// counter is a minimal subject whose state is a single integer.
type counter struct {
	value    int
	restores int
}

func (c *counter) Clone() *counter          { return &counter{value: c.value} }
func (c *counter) Restore(snapshot *counter) { c.value = snapshot.value; c.restores++ }

var _ = Describe("Timeline", func() {
	var (
		subject *counter
		tl      *Timeline[*counter]
	)

	edit := func(v int) {
		subject.value = v
		tl.Capture()
	}

	BeforeEach(func() {
		subject = &counter{value: 0}
		var err error
		tl, err = New(subject, 3)
		Expect(err).NotTo(HaveOccurred())
	})

	It("logs through the logger it is given", func() {
		var buf bytes.Buffer
		tl.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
		edit(1)
		Expect(tl.Rollback()).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("timeline capture"))
		Expect(buf.String()).To(ContainSubstring("timeline restore"))

		buf.Reset()
		tl.SetLogger(nil)
		edit(2)
		Expect(buf.Len()).To(BeZero())
	})

	It("rejects a non-positive capacity", func() {
		_, err := New(subject, 0)
		Expect(err).To(HaveOccurred())
	})

	It("starts with one slot holding the initial state", func() {
		Expect(tl.Len()).To(Equal(1))
		Expect(tl.Cursor()).To(Equal(0))
		Expect(tl.CanRollback()).To(BeFalse())
		Expect(tl.CanRollforward()).To(BeFalse())
	})

	It("treats rollback and rollforward at the ends as no-ops", func() {
		Expect(tl.Rollback()).To(BeFalse())
		Expect(tl.Rollforward()).To(BeFalse())
		Expect(subject.restores).To(BeZero())
	})

	It("restores the subject in place", func() {
		edit(1)
		same := subject
		Expect(tl.Rollback()).To(BeTrue())
		Expect(tl.Subject()).To(BeIdenticalTo(same))
		Expect(subject.value).To(Equal(0))
		Expect(tl.Rollforward()).To(BeTrue())
		Expect(subject.value).To(Equal(1))
	})

	Context("when capacity is exceeded", func() {
		BeforeEach(func() {
			for v := 1; v <= 5; v++ {
				edit(v)
			}
		})

		It("keeps only the most recent states", func() {
			Expect(tl.Len()).To(Equal(3))
			Expect(tl.Cursor()).To(Equal(2))

			Expect(tl.Rollback()).To(BeTrue())
			Expect(tl.Rollback()).To(BeTrue())
			Expect(subject.value).To(Equal(3))
			Expect(tl.Rollback()).To(BeFalse())
		})

		It("rolls forward to the second-most-recent state", func() {
			tl.Rollback()
			tl.Rollback()
			tl.Rollforward()
			Expect(subject.value).To(Equal(4))
		})
	})

	Context("when capturing after a rollback", func() {
		It("discards the redo branch", func() {
			edit(1)
			edit(2)
			tl.Rollback()
			edit(7)

			Expect(tl.CanRollforward()).To(BeFalse())
			Expect(tl.Len()).To(Equal(3))
			tl.Rollback()
			Expect(subject.value).To(Equal(1))
		})
	})

	Context("with a one-slot timeline", func() {
		It("always holds the latest state", func() {
			one, err := New(subject, 1)
			Expect(err).NotTo(HaveOccurred())
			subject.value = 9
			one.Capture()
			Expect(one.Len()).To(Equal(1))
			Expect(one.Rollback()).To(BeFalse())
		})
	})
})

var _ = Describe("Timeline over a canvas", func() {
	It("keeps snapshots isolated from later edits", func() {
		c, err := art.NewCanvas(3, 1)
		Expect(err).NotTo(HaveOccurred())
		l, err := art.NewLayer("ink", 3, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.AddLayer(l)).To(Succeed())

		tl, err := New(c, 8)
		Expect(err).NotTo(HaveOccurred())

		Expect(l.Set(0, 0, 'a')).To(Succeed())
		tl.Capture()
		Expect(l.Set(1, 0, 'b')).To(Succeed())
		tl.Capture()

		var events int
		l.OnChange(func(art.LayerEvent) { events++ })

		Expect(tl.Rollback()).To(BeTrue())
		Expect(c.Render('.')).To(Equal("a..\n"))
		Expect(events).To(BeNumerically(">", 0))

		Expect(l.Set(2, 0, 'z')).To(Succeed())
		Expect(tl.Rollback()).To(BeTrue())
		Expect(tl.Rollforward()).To(BeTrue())
		Expect(c.Render('.')).To(Equal("a..\n"))

		current, err := c.Layer(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(current).To(BeIdenticalTo(l))
	})
})
