// Package surface selects the drawing surface for an output file.
package surface

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/v0idhrt/boxdiagram/internal/diagram"
	"github.com/v0idhrt/boxdiagram/internal/surface/raster"
	"github.com/v0idhrt/boxdiagram/internal/surface/vector"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format names an output file format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	SVG  Format = "svg"
)

// Extension is the canonical file extension, without the dot.
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// ContentType is the MIME type of files in this format.
func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case SVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{PNG, JPEG, SVG}
}

// ParseFormat accepts a format name or extension such as "jpg".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFor derives the format from a file name.
func FormatFor(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Open is a diagram.Opener choosing the surface by the extension of path.
func Open(c diagram.Canvas, path string) (diagram.Surface, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	if format == SVG {
		v, err := vector.New(c)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	encoding := raster.PNG
	if format == JPEG {
		encoding = raster.JPEG
	}
	r, err := raster.New(c, encoding)
	if err != nil {
		return nil, err
	}
	return r, nil
}
