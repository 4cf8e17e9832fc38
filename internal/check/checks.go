package check

import (
	"image"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/rastercheck/internal/pixbuf"
)

// ChannelStdDev returns the population standard deviation of each channel
// of buf, in the buffer's channel order.
func ChannelStdDev(buf *pixbuf.Buffer) []float64 {
	nc := buf.Channels()
	hists := make([][256]float64, nc)
	data := buf.Data()
	for i, v := range data {
		hists[i%nc][v]++
	}

	values := make([]float64, 256)
	for i := range values {
		values[i] = float64(i)
	}
	out := make([]float64, nc)
	for c := range hists {
		_, variance := stat.PopMeanVariance(values, hists[c][:])
		if variance > 0 && !math.IsNaN(variance) {
			out[c] = math.Sqrt(variance)
		}
	}
	return out
}

// StdDev returns the largest per-channel standard deviation of buf. It is 0
// exactly when every pixel has the same color.
func StdDev(buf *pixbuf.Buffer) float64 {
	var std float64
	for _, s := range ChannelStdDev(buf) {
		std = max(std, s)
	}
	return std
}

// NonUniformity passes when buf is not a single flat color. A flat image is
// what a rendering or compositing bug usually leaves behind.
func NonUniformity(name string, buf *pixbuf.Buffer) Result {
	if buf == nil || len(buf.Data()) == 0 {
		return Fail("%s: no pixels", name)
	}
	std := StdDev(buf)
	if std > 0 {
		return OK("%s non-uniform (std=%.2f)", name, std)
	}
	return Fail("%s is uniform (std=0)", name)
}

// ChannelCount passes when buf has the expected number of channels.
func ChannelCount(name string, buf *pixbuf.Buffer, expected int) Result {
	if buf == nil {
		return Fail("%s: no buffer", name)
	}
	if got := buf.Channels(); got != expected {
		return Fail("%s has %d channels, expected %d (%s)", name, got, expected, buf.Format())
	}
	return OK("%s has %d channels (%s)", name, expected, buf.Format())
}

// DimensionMatch compares a pixel size with the expected one. A mismatch is
// only a warning: layout engines may trim or pad figures legitimately.
func DimensionMatch(name string, actual, expected image.Point) Result {
	if actual != expected {
		return Warn("%s size %dx%d differs from expected %dx%d",
			name, actual.X, actual.Y, expected.X, expected.Y)
	}
	return OK("%s size %dx%d as expected", name, actual.X, actual.Y)
}

// MeanAbsDiff returns the mean absolute difference over every sample of two
// buffers of the same shape.
func MeanAbsDiff(a, b *pixbuf.Buffer) float64 {
	da, db := a.Data(), b.Data()
	if len(da) == 0 {
		return 0
	}
	var sum uint64
	for i := range da {
		if da[i] > db[i] {
			sum += uint64(da[i] - db[i])
		} else {
			sum += uint64(db[i] - da[i])
		}
	}
	return float64(sum) / float64(len(da))
}

// FrameMotion passes when two consecutive frames differ. Frames of
// different shapes fail without comparing pixels.
func FrameMotion(name string, a, b *pixbuf.Buffer) Result {
	if a == nil || b == nil {
		return Fail("%s: missing frame", name)
	}
	ha, wa, ca := a.Shape()
	hb, wb, cb := b.Shape()
	if wa != wb || ha != hb || ca != cb {
		return Fail("%s: frame shapes differ (%dx%dx%d vs %dx%dx%d)", name, ha, wa, ca, hb, wb, cb)
	}

	mad := MeanAbsDiff(a, b)
	if mad > 0 {
		return OK("%s frames differ (mean abs diff=%.3f)", name, mad)
	}
	return Fail("%s frames are identical", name)
}

var printer = message.NewPrinter(language.English)

// FormatBytes renders n with English digit grouping, e.g. "1,234,567 bytes".
func FormatBytes(n int64) string {
	return printer.Sprintf("%d bytes", n)
}

// Written records the outcome of writing an artifact.
func Written(name, path string, n int64, err error) Result {
	switch {
	case err != nil:
		return Fail("%s not written: %v", name, err)
	case n <= 0:
		return Fail("%s written empty: %s", name, path)
	}
	return OK("%s written: %s (size=%s)", name, path, FormatBytes(n))
}
