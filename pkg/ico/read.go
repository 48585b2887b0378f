package ico

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrMalformed is returned by ReadDirectory for data that is not a valid
// icon container.
var ErrMalformed = errors.New("malformed icon file")

// DirEntry is one parsed directory entry.
type DirEntry struct {
	Width        int // 0 in the file is reported as 256
	Height       int
	Planes       uint16
	BitsPerPixel uint16
	Size         uint32
	Offset       uint32
}

// ReadDirectory parses the header and directory of an icon file and checks
// that every payload lies inside data.
func ReadDirectory(data []byte) ([]DirEntry, error) {
	if len(data) < headerSize {
		return nil, errors.Wrap(ErrMalformed, "short header")
	}
	if binary.LittleEndian.Uint16(data[0:]) != 0 {
		return nil, errors.Wrap(ErrMalformed, "reserved field is not zero")
	}
	if typ := binary.LittleEndian.Uint16(data[2:]); typ != typeIcon {
		return nil, errors.Wrapf(ErrMalformed, "type %d is not an icon", typ)
	}

	count := int(binary.LittleEndian.Uint16(data[4:]))
	if len(data) < headerSize+count*dirEntrySize {
		return nil, errors.Wrapf(ErrMalformed, "directory of %d entries is truncated", count)
	}

	entries := make([]DirEntry, count)
	for i := range entries {
		raw := data[headerSize+i*dirEntrySize:]
		e := DirEntry{
			Width:        int(raw[0]),
			Height:       int(raw[1]),
			Planes:       binary.LittleEndian.Uint16(raw[4:]),
			BitsPerPixel: binary.LittleEndian.Uint16(raw[6:]),
			Size:         binary.LittleEndian.Uint32(raw[8:]),
			Offset:       binary.LittleEndian.Uint32(raw[12:]),
		}
		if e.Width == 0 {
			e.Width = maxSide
		}
		if e.Height == 0 {
			e.Height = maxSide
		}
		if uint64(e.Offset)+uint64(e.Size) > uint64(len(data)) {
			return nil, errors.Wrapf(ErrMalformed, "entry %d range %d+%d exceeds file size %d",
				i, e.Offset, e.Size, len(data))
		}
		entries[i] = e
	}
	return entries, nil
}
