// Package ico writes multi-resolution Windows icon files.
//
// Every image is stored as a 32-bit BGRA device-independent bitmap without an
// AND mask; the alpha channel carries the transparency.
package ico

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/draw"
	"math"

	"github.com/pkg/errors"
)

// Layout constants of the container and of each embedded bitmap.
const (
	headerSize     = 6
	dirEntrySize   = 16
	infoHeaderSize = 40
	bitsPerPixel   = 32
	bytesPerPixel  = bitsPerPixel / 8

	typeIcon  = 1
	maxSide   = 256
	maxImages = math.MaxUint16
)

var (
	// ErrInvalidImageSet is returned for an empty, oversized or malformed
	// list of images.
	ErrInvalidImageSet = errors.New("invalid image set")
	// ErrPayloadTooLarge is returned when a length or offset does not fit
	// the container's 32-bit fields.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// Image is a square raster in B, G, R, A byte order with straight alpha.
// Rows are stored top to bottom.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// FromImage converts img to BGRA.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*bytesPerPixel)
	for y := 0; y < h; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dst := pix[y*w*bytesPerPixel:]
		for x := 0; x < w; x++ {
			i := x * 4
			dst[i+0] = src[i+2] // B
			dst[i+1] = src[i+1] // G
			dst[i+2] = src[i+0] // R
			dst[i+3] = src[i+3] // A
		}
	}
	return &Image{Width: w, Height: h, Pix: pix}
}

// payloadSize returns the byte length of the bitmap stored for img.
func (img *Image) payloadSize() uint64 {
	return infoHeaderSize + uint64(img.Width)*uint64(img.Height)*bytesPerPixel
}

// Encode serializes images into one icon file. The order of images is kept.
func Encode(images []*Image) ([]byte, error) {
	if err := validate(images); err != nil {
		return nil, err
	}

	sizes := make([]uint64, len(images))
	for i, img := range images {
		sizes[i] = img.payloadSize()
	}
	offsets, err := layout(sizes)
	if err != nil {
		return nil, err
	}

	total := uint64(offsets[len(offsets)-1]) + sizes[len(sizes)-1]
	buf := bytes.NewBuffer(make([]byte, 0, total))

	// ICONDIR
	writeLE(buf, uint16(0))
	writeLE(buf, uint16(typeIcon))
	writeLE(buf, uint16(len(images)))

	// ICONDIRENTRY per image
	for i, img := range images {
		buf.WriteByte(sideByte(img.Width))
		buf.WriteByte(sideByte(img.Height))
		buf.WriteByte(0) // palette
		buf.WriteByte(0) // reserved
		writeLE(buf, uint16(1))
		writeLE(buf, uint16(bitsPerPixel))
		writeLE(buf, uint32(sizes[i]))
		writeLE(buf, offsets[i])
	}

	for _, img := range images {
		writeBitmap(buf, img)
	}
	return buf.Bytes(), nil
}

func validate(images []*Image) error {
	if len(images) == 0 {
		return errors.Wrap(ErrInvalidImageSet, "no images")
	}
	if len(images) > maxImages {
		return errors.Wrapf(ErrInvalidImageSet, "%d images exceed the limit of %d", len(images), maxImages)
	}
	for i, img := range images {
		if img == nil {
			return errors.Wrapf(ErrInvalidImageSet, "image %d is nil", i)
		}
		if img.Width != img.Height {
			return errors.Wrapf(ErrInvalidImageSet, "image %d is %dx%d, not square", i, img.Width, img.Height)
		}
		if img.Width < 1 || img.Width > maxSide {
			return errors.Wrapf(ErrInvalidImageSet, "image %d side %d is outside 1..%d", i, img.Width, maxSide)
		}
		if len(img.Pix) != img.Width*img.Height*bytesPerPixel {
			return errors.Wrapf(ErrInvalidImageSet, "image %d has %d pixel bytes, expected %d",
				i, len(img.Pix), img.Width*img.Height*bytesPerPixel)
		}
	}
	return nil
}

// layout computes the file offset of every payload. The first payload starts
// right after the directory.
func layout(sizes []uint64) ([]uint32, error) {
	offsets := make([]uint32, len(sizes))
	next := uint64(headerSize + dirEntrySize*len(sizes))
	for i, size := range sizes {
		if size > math.MaxUint32 {
			return nil, errors.Wrapf(ErrPayloadTooLarge, "image %d payload is %d bytes", i, size)
		}
		if next > math.MaxUint32 {
			return nil, errors.Wrapf(ErrPayloadTooLarge, "image %d offset %d", i, next)
		}
		offsets[i] = uint32(next)
		next += size
	}
	if next > math.MaxUint32 {
		return nil, errors.Wrapf(ErrPayloadTooLarge, "file size %d", next)
	}
	return offsets, nil
}

// writeBitmap emits a BITMAPINFOHEADER and the pixel rows bottom to top.
// The header height is doubled: readers expect room for an AND mask, which a
// 32-bit image with alpha leaves out.
func writeBitmap(buf *bytes.Buffer, img *Image) {
	writeLE(buf, uint32(infoHeaderSize))
	writeLE(buf, int32(img.Width))
	writeLE(buf, int32(img.Height*2))
	writeLE(buf, uint16(1))
	writeLE(buf, uint16(bitsPerPixel))
	writeLE(buf, uint32(0)) // BI_RGB
	writeLE(buf, uint32(img.Width*img.Height*bytesPerPixel))
	writeLE(buf, int32(0)) // x pixels per meter
	writeLE(buf, int32(0)) // y pixels per meter
	writeLE(buf, uint32(0))
	writeLE(buf, uint32(0))

	stride := img.Width * bytesPerPixel
	for y := img.Height - 1; y >= 0; y-- {
		buf.Write(img.Pix[y*stride : (y+1)*stride])
	}
}

// sideByte encodes a side length for the directory, where 0 means 256.
func sideByte(side int) byte {
	if side >= maxSide {
		return 0
	}
	return byte(side)
}

func writeLE(buf *bytes.Buffer, v any) {
	// Writes to a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, v)
}
