package media

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Metadata holds what can be recovered from an image file on disk.
type Metadata struct {
	Width   *int   `json:"width,omitempty"`
	Height  *int   `json:"height,omitempty"`
	TakenAt *int64 `json:"taken_at,omitempty"` // Unix timestamp
}

// ExtractMetadata probes the file at path for dimensions and EXIF capture
// time. Callers treat a failure as "no metadata available"; it must never
// fail the surrounding create.
func ExtractMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta := &Metadata{}

	cfg, _, err := image.DecodeConfig(f)
	if err == nil {
		w, h := cfg.Width, cfg.Height
		meta.Width = &w
		meta.Height = &h
	} else if img, openErr := imaging.Open(path); openErr == nil {
		// formats DecodeConfig rejects (bmp, tiff) still decode fully
		bounds := img.Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		meta.Width = &w
		meta.Height = &h
	}

	if _, err := f.Seek(0, io.SeekStart); err == nil {
		if exifData, exifErr := exif.Decode(f); exifErr == nil {
			if dt, dtErr := exifData.DateTime(); dtErr == nil {
				ts := dt.Unix()
				meta.TakenAt = &ts
			}
		}
	}

	return meta, nil
}
