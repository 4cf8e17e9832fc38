package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is an image file format.
type Format int

// Supported formats.
const (
	PNG Format = iota
	JPEG
	GIF
	BMP
	TIFF
)

var formatNames = map[Format]string{
	PNG:  "png",
	JPEG: "jpeg",
	GIF:  "gif",
	BMP:  "bmp",
	TIFF: "tiff",
}

// String returns the lower-case format name as reported by image.Decode.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the canonical file extension, including the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tif"
	}
	return "." + f.String()
}

func (f Format) imaging() (imaging.Format, error) {
	switch f {
	case PNG:
		return imaging.PNG, nil
	case JPEG:
		return imaging.JPEG, nil
	case GIF:
		return imaging.GIF, nil
	case BMP:
		return imaging.BMP, nil
	case TIFF:
		return imaging.TIFF, nil
	}
	return 0, fmt.Errorf("%w: unknown format %s", ErrCodecRejection, f)
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: unsupported extension %q",
			ErrCodecRejection, path, strings.ToLower(filepath.Ext(path)))
	}
	switch f {
	case imaging.PNG:
		return PNG, nil
	case imaging.JPEG:
		return JPEG, nil
	case imaging.GIF:
		return GIF, nil
	case imaging.BMP:
		return BMP, nil
	case imaging.TIFF:
		return TIFF, nil
	}
	return 0, fmt.Errorf("%w: %s: unsupported format %s", ErrCodecRejection, path, f)
}

func formatFromName(name string) (Format, bool) {
	for f, n := range formatNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}
