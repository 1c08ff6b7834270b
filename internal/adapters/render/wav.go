package render

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteWAV writes interleaved 16-bit stereo samples as a RIFF/WAVE stream.
func WriteWAV(w io.Writer, samples []int16, rate int) error {
	dataLen := len(samples) * 2
	header := make([]byte, 44)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataLen))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(rate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(rate*channels*2)) // byte rate
	binary.LittleEndian.PutUint16(header[32:34], channels*2)              // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)                      // bits per sample

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLen))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	buf := make([]byte, dataLen)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	return nil
}
