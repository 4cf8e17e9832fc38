package pixbuf

// Format represents a pixel storage layout of 8-bit samples.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit straight-alpha RGBA (4 bytes per pixel).
	// This is the canonical layout for composition and PNG export.
	FormatRGBA8

	// FormatARGB8 is 32-bit straight-alpha ARGB (4 bytes per pixel).
	// Drawing surfaces hand out pixels in this alpha-first order.
	FormatARGB8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of samples per pixel.
	Channels int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsGrayscale indicates if this is a grayscale format.
	IsGrayscale bool

	// Red, Green, Blue and Alpha are the sample offsets within a pixel.
	// Alpha is -1 for formats without alpha. For grayscale all color
	// offsets are 0.
	Red, Green, Blue, Alpha int
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {Channels: 1, IsGrayscale: true, Alpha: -1},
	FormatRGB8:  {Channels: 3, Red: 0, Green: 1, Blue: 2, Alpha: -1},
	FormatRGBA8: {Channels: 4, HasAlpha: true, Red: 0, Green: 1, Blue: 2, Alpha: 3},
	FormatARGB8: {Channels: 4, HasAlpha: true, Red: 1, Green: 2, Blue: 3, Alpha: 0},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Channels returns the number of samples per pixel.
func (f Format) Channels() int {
	return f.Info().Channels
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes returns the number of bytes in a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.Channels()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatARGB8:
		return "ARGB8"
	default:
		return "Unknown"
	}
}

// FormatForChannels returns the canonical format for a channel count:
// 1 -> Gray8, 3 -> RGB8, 4 -> RGBA8.
func FormatForChannels(channels int) (Format, bool) {
	switch channels {
	case 1:
		return FormatGray8, true
	case 3:
		return FormatRGB8, true
	case 4:
		return FormatRGBA8, true
	default:
		return 0, false
	}
}
