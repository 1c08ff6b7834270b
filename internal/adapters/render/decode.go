package render

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// decodeFile decodes an MP3 file to interleaved 16-bit stereo samples,
// returning them with the stream's sample rate.
func decodeFile(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decode: %w", err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, 0, fmt.Errorf("read samples: %w", err)
	}
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}
	return samples, decoder.SampleRate(), nil
}

// decodeFileFunc allows tests to substitute synthetic PCM for real files.
var decodeFileFunc = decodeFile
