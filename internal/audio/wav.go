package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

const sampleRate = 22050

// EncodeTone returns a mono 16-bit PCM WAV of a sine tone with a short
// fade at both ends.
func EncodeTone(frequency float64, duration time.Duration) []byte {
	return EncodeToneGain(frequency, duration, 1)
}

// EncodeToneGain is EncodeTone with the samples scaled by gain in [0,1].
func EncodeToneGain(frequency float64, duration time.Duration, gain float64) []byte {
	gain = clamp(gain)
	samples := int(duration.Seconds() * sampleRate)
	fade := sampleRate / 100

	pcm := make([]int16, samples)
	for i := range pcm {
		envelope := 1.0
		if i < fade {
			envelope = float64(i) / float64(fade)
		} else if tail := samples - 1 - i; tail < fade {
			envelope = float64(tail) / float64(fade)
		}
		value := math.Sin(2*math.Pi*frequency*float64(i)/sampleRate) * envelope * 0.8 * gain
		pcm[i] = int16(value * math.MaxInt16)
	}

	dataSize := uint32(samples * 2)
	var buffer bytes.Buffer
	buffer.WriteString("RIFF")
	_ = binary.Write(&buffer, binary.LittleEndian, 36+dataSize)
	buffer.WriteString("WAVEfmt ")
	_ = binary.Write(&buffer, binary.LittleEndian, struct {
		ChunkSize     uint32
		Format        uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}{16, 1, 1, sampleRate, sampleRate * 2, 2, 16})
	buffer.WriteString("data")
	_ = binary.Write(&buffer, binary.LittleEndian, dataSize)
	_ = binary.Write(&buffer, binary.LittleEndian, pcm)
	return buffer.Bytes()
}
