package audio

import (
	"fmt"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/tilerun/constant"
)

// toneFrequencies are the synthesized stand-ins for sounds without a file
var toneFrequencies = map[string]float64{
	"jump":  660,
	"coin":  1320,
	"stomp": 220,
	"hurt":  110,
}

const defaultToneFrequency = 440

// toneFor renders the fallback tone of name into a buffer
func toneFor(name string, format beep.Format) (*beep.Buffer, error) {
	freq, ok := toneFrequencies[name]
	if !ok {
		freq = defaultToneFrequency
	}
	sine, err := generators.SineTone(format.SampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone %q: %w", name, err)
	}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(format.SampleRate.N(constant.ToneDuration), sine))
	return buf, nil
}
