package imageconv

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kovidgoyal/okcolor/colorconv"
)

var _ = fmt.Print

// CodingIndependentCodePoints are the ITU-T H.273 code points carried by
// the PNG cICP chunk.
type CodingIndependentCodePoints struct {
	ColorPrimaries, TransferCharacteristics, MatrixCoefficients, VideoFullRange uint8
}

func (c CodingIndependentCodePoints) String() string {
	return fmt.Sprintf("cICP(%d, %d, %d, %d)", c.ColorPrimaries, c.TransferCharacteristics, c.MatrixCoefficients, c.VideoFullRange)
}

// ColorSpace returns the built-in color space described by the code points,
// or nil if there is none. Only full range RGB is supported.
func (c CodingIndependentCodePoints) ColorSpace() *colorconv.ColorSpace {
	if c.MatrixCoefficients != 0 || c.VideoFullRange != 1 {
		return nil
	}
	switch c.TransferCharacteristics {
	case 13:
		switch c.ColorPrimaries {
		case 1:
			return colorconv.SRGB
		case 12:
			return colorconv.DisplayP3
		}
	case 8:
		switch c.ColorPrimaries {
		case 1:
			return colorconv.SRGBLinear
		case 12:
			return colorconv.DisplayP3Linear
		case 9:
			return colorconv.Rec2020Linear
		}
	case 1, 6, 14, 15:
		// the BT.709 curve, which BT.2020 uses at every bit depth
		if c.ColorPrimaries == 9 {
			return colorconv.Rec2020
		}
	}
	return nil
}

const png_signature = "\x89PNG\r\n\x1a\n"

// ReadPNGCICP looks for a cICP chunk in the PNG data. The chunk must
// precede the image data so the search stops at the first IDAT.
func ReadPNGCICP(data []byte) (ans CodingIndependentCodePoints, found bool, err error) {
	if !bytes.HasPrefix(data, []byte(png_signature)) {
		return ans, false, fmt.Errorf("not a PNG file")
	}
	r := bytes.NewReader(data[len(png_signature):])
	var header struct {
		Length uint32
		Type   [4]byte
	}
	for {
		if err = binary.Read(r, binary.BigEndian, &header); err != nil {
			if err == io.EOF {
				err = nil
			}
			return
		}
		switch string(header.Type[:]) {
		case "IDAT", "IEND":
			return
		case "cICP":
			if header.Length != 4 {
				return ans, false, fmt.Errorf("cICP chunk has length %d instead of 4", header.Length)
			}
			if err = binary.Read(r, binary.BigEndian, &ans); err != nil {
				return
			}
			return ans, true, nil
		}
		// skip the chunk data and its CRC
		if _, err = r.Seek(int64(header.Length)+4, io.SeekCurrent); err != nil {
			return
		}
	}
}
