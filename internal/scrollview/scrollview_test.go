package scrollview_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scrollsim/internal/dynamo"
	"github.com/san-kum/scrollsim/internal/interpolator"
	"github.com/san-kum/scrollsim/internal/scrollview"
	"github.com/san-kum/scrollsim/internal/source"
)

var _ = Describe("Scrollview", func() {
	var sv *scrollview.Scrollview

	BeforeEach(func() {
		sv = scrollview.New()
		sv.SetGeometry(4000, 800, 800, 600)
	})

	Describe("SetGeometry", func() {
		It("derives axis bounds from content minus viewport", func() {
			Expect(sv.X().Bounds()).To(Equal(dynamo.Bounds{Lower: 0, Upper: 200}))
			Expect(sv.Y().Bounds()).To(Equal(dynamo.Bounds{Lower: 0, Upper: 3200}))
		})

		It("clamps content smaller than the viewport to an empty range", func() {
			sv.SetGeometry(100, 100, 800, 600)
			Expect(sv.X().Bounds()).To(Equal(dynamo.Bounds{}))
			Expect(sv.Y().Bounds()).To(Equal(dynamo.Bounds{}))
			Expect(sv.Geometry().ContentHeight).To(Equal(100.0))
		})
	})

	Describe("SetSource", func() {
		It("starts undefined", func() {
			Expect(sv.Source()).To(Equal(source.Undefined))
		})

		It("forwards the source to both axes", func() {
			sv.SetSource(source.Touchpad)
			Expect(sv.Source()).To(Equal(source.Touchpad))
			Expect(sv.X().Source()).To(Equal(source.Touchpad))
			Expect(sv.Y().Source()).To(Equal(source.Touchpad))
		})

		It("keeps the current source for Previous", func() {
			sv.SetSource(source.Touchscreen)
			sv.SetSource(source.Previous)
			Expect(sv.Source()).To(Equal(source.Touchscreen))
			Expect(sv.Y().Source()).To(Equal(source.Touchscreen))
		})

		It("honours a source passed as an interpolator option", func() {
			sv = scrollview.New(interpolator.WithSource(source.Mousewheel))
			Expect(sv.Source()).To(Equal(source.Mousewheel))
		})
	})

	Describe("gestures", func() {
		pan := func(axis scrollview.Axis) {
			sv.PushPan(axis, 5, 10)
			sv.Sample(10)
			sv.PushPan(axis, 5, 20)
			sv.Sample(20)
		}

		It("moves only the panned axis", func() {
			pan(scrollview.Vertical)
			Expect(sv.Y().Animating()).To(BeTrue())
			Expect(sv.X().Animating()).To(BeFalse())
			Expect(sv.Y().Events()).To(HaveLen(2))
			Expect(sv.X().Events()).To(BeEmpty())
		})

		It("flings a kinetic source", func() {
			sv.SetSource(source.Touchscreen)
			pan(scrollview.Vertical)
			sv.PushFling(20)

			at, ok := sv.Y().Phase().ReleasedAt()
			Expect(ok).To(BeTrue())
			Expect(at).To(Equal(20.0))
			Expect(sv.Animating()).To(BeTrue())

			before := sv.Sample(30)
			after := sv.Sample(60)
			Expect(after.Y).To(BeNumerically(">", before.Y))
		})

		It("turns a fling from a non-kinetic source into an interrupt", func() {
			sv.SetSource(source.Mousewheel)
			pan(scrollview.Vertical)
			Expect(sv.Animating()).To(BeTrue())

			sv.PushFling(20)
			Expect(sv.Animating()).To(BeFalse())
			Expect(sv.Y().Phase().Kind()).To(Equal(interpolator.Inactive))
		})

		It("stops both axes on interrupt", func() {
			sv.SetSource(source.Touchpad)
			pan(scrollview.Horizontal)
			pan(scrollview.Vertical)
			sv.PushInterrupt(21)
			Expect(sv.Animating()).To(BeFalse())
		})
	})

	Describe("InputRate", func() {
		It("is zero before any frame", func() {
			Expect(sv.InputRate()).To(BeZero())
		})

		It("averages pans per frame", func() {
			sv.PushPan(scrollview.Vertical, 1, 1)
			sv.PushPan(scrollview.Vertical, 1, 2)
			sv.Sample(2)
			sv.Sample(3)
			Expect(sv.InputRate()).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("forgets frames older than the log window", func() {
			for i := 1; i <= 5; i++ {
				sv.PushPan(scrollview.Vertical, 1, float64(i))
				sv.PushPan(scrollview.Vertical, 1, float64(i)+0.5)
				sv.Sample(float64(i) + 0.5)
			}
			for i := 0; i < scrollview.InputLogFrames; i++ {
				sv.Sample(10 + float64(i))
			}
			Expect(sv.InputRate()).To(BeZero())
		})
	})
})

var _ = Describe("AxisVector", func() {
	It("adds and scales component-wise", func() {
		v := scrollview.AxisVector{X: 1, Y: 2}.Add(scrollview.AxisVector{X: 3, Y: -4})
		Expect(v).To(Equal(scrollview.AxisVector{X: 4, Y: -2}))
		Expect(v.Scale(0.5)).To(Equal(scrollview.AxisVector{X: 2, Y: -1}))
		Expect(v.Get(scrollview.Horizontal)).To(Equal(4.0))
		Expect(v.String()).To(Equal("(4, -2)"))
	})

	DescribeTable("ParseAxis",
		func(in string, want scrollview.Axis, ok bool) {
			got, err := scrollview.ParseAxis(in)
			if !ok {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("x", "x", scrollview.Horizontal, true),
		Entry("vertical", "Vertical", scrollview.Vertical, true),
		Entry("diagonal", "z", scrollview.Vertical, false),
	)
})
