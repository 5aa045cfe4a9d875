package auth

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// maxPhotoDim caps profile photo dimensions; larger uploads are downscaled
// to fit within maxPhotoDim x maxPhotoDim preserving aspect ratio.
const maxPhotoDim = 300

var photoExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

func ValidPhotoExt(filename string) bool {
	_, ok := photoExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// DownscalePhoto rewrites the image at path so neither dimension exceeds
// maxPhotoDim. Images already within bounds are left untouched.
func DownscalePhoto(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxPhotoDim && h <= maxPhotoDim {
		return nil
	}

	dstW, dstH := fitWithin(w, h, maxPhotoDim)
	scaled := boxScale(img, dstW, dstH)

	// Encode to a temp file and rename, so a failed encode never corrupts the
	// stored original.
	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	switch format {
	case "png":
		err = png.Encode(out, scaled)
	default:
		err = jpeg.Encode(out, scaled, &jpeg.Options{Quality: 85})
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// fitWithin shrinks (w, h) proportionally so both fit in max.
func fitWithin(w, h, max int) (int, int) {
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}

// boxScale downsamples src to dstW x dstH by averaging the source pixels each
// destination pixel covers. Only ever used to shrink, so the boxes are at
// least one source pixel.
func boxScale(src image.Image, dstW, dstH int) *image.RGBA {
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	for dy := 0; dy < dstH; dy++ {
		y0 := bounds.Min.Y + dy*srcH/dstH
		y1 := bounds.Min.Y + (dy+1)*srcH/dstH
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for dx := 0; dx < dstW; dx++ {
			x0 := bounds.Min.X + dx*srcW/dstW
			x1 := bounds.Min.X + (dx+1)*srcW/dstW
			if x1 <= x0 {
				x1 = x0 + 1
			}

			var r, g, b, a, n uint64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					pr, pg, pb, pa := src.At(x, y).RGBA()
					r += uint64(pr)
					g += uint64(pg)
					b += uint64(pb)
					a += uint64(pa)
					n++
				}
			}
			dst.Set(dx, dy, color.RGBA64{
				R: uint16(r / n),
				G: uint16(g / n),
				B: uint16(b / n),
				A: uint16(a / n),
			})
		}
	}
	return dst
}
