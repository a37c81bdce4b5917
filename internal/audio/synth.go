package audio

import (
	"io"
	"math"
)

// Procedural sound generation. All buffers are stereo float32 LE.

const (
	SampleRate   = 44100
	ChannelCount = 2
	// FormatFloat32LE matches oto's float32 little endian sample format.
	FormatFloat32LE = 0

	bytesPerFrame = ChannelCount * 4
)

func makeBuf(frames int) []byte { return make([]byte, frames*bytesPerFrame) }

func frames(d float64) int { return int(d * SampleRate) }

// putStereo writes a [-1,1] sample to both channels of frame i.
func putStereo(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(max(-1, min(1, sample))))
	for ch := 0; ch < ChannelCount; ch++ {
		off := i*bytesPerFrame + ch*4
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
}

// adsr shapes an envelope over progress in [0,1].
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1 - (progress-attack)/decay*(1-sustain)
	case progress < 1-release:
		return sustain
	default:
		return sustain * (1 - (progress-(1-release))/release)
	}
}

// lcg is a tiny deterministic noise source in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// Generate renders a one shot cue. The background loop is streamed instead
// and yields nil.
func Generate(c Cue) []byte {
	switch c {
	case CueBubbles:
		return genBubbles()
	case CueClick:
		return genClick()
	case CueMistake:
		return genMistake()
	case CueWin:
		return genWin()
	default:
		return nil
	}
}

// genBubbles: three short rising sine chirps.
func genBubbles() []byte {
	const dur = 0.45
	n := frames(dur)
	buf := makeBuf(n)
	starts := []float64{0, 0.12, 0.27}
	bases := []float64{420, 560, 480}
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		var s float64
		for k, st := range starts {
			lt := t - st
			if lt < 0 || lt > 0.14 {
				continue
			}
			p := lt / 0.14
			freq := bases[k] * (1 + 1.8*p)
			s += math.Sin(2*math.Pi*freq*lt) * adsr(p, 0.05, 0.3, 0.4, 0.4) * 0.35
		}
		putStereo(buf, i, s)
	}
	return buf
}

// genClick: a short filtered noise tick.
func genClick() []byte {
	n := frames(0.04)
	buf := makeBuf(n)
	seed := uint64(7)
	var lp float64
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		lp += 0.35 * (lcg(&seed) - lp)
		s := lp*0.6 + math.Sin(2*math.Pi*1800*float64(i)/SampleRate)*0.2
		putStereo(buf, i, s*adsr(p, 0.02, 0.2, 0.3, 0.5))
	}
	return buf
}

// genMistake: a falling square-ish buzz.
func genMistake() []byte {
	const dur = 0.5
	n := frames(dur)
	buf := makeBuf(n)
	var phase float64
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := 320 - 200*p
		phase += freq / SampleRate
		s := math.Tanh(3*math.Sin(2*math.Pi*phase)) * 0.3
		putStereo(buf, i, s*adsr(p, 0.02, 0.2, 0.6, 0.3))
	}
	return buf
}

// genWin: an ascending major arpeggio.
func genWin() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	const step = 0.12
	n := frames(step*float64(len(notes)) + 0.3)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		var s float64
		for k, f := range notes {
			lt := t - float64(k)*step
			if lt < 0 || lt > 0.4 {
				continue
			}
			s += math.Sin(2*math.Pi*f*lt) * adsr(lt/0.4, 0.05, 0.25, 0.5, 0.5) * 0.25
		}
		putStereo(buf, i, s)
	}
	return buf
}

// NewAmbient returns an endless stream for the background loop.
func NewAmbient(seed uint64) io.Reader {
	return &ambientReader{seed: seed}
}

// ambientReader streams an endless underwater pad: a slow two-note drone
// with occasional bubble pops.
type ambientReader struct {
	t     int
	seed  uint64
	pop   int
	popHz float64
}

func (r *ambientReader) Read(p []byte) (int, error) {
	n := len(p) / bytesPerFrame
	for i := 0; i < n; i++ {
		t := float64(r.t) / SampleRate
		swell := 0.5 + 0.5*math.Sin(2*math.Pi*0.1*t)
		s := (math.Sin(2*math.Pi*110*t) + 0.6*math.Sin(2*math.Pi*164.81*t)) * 0.12 * swell

		if r.pop == 0 && lcg(&r.seed) > 0.99995 {
			r.pop = frames(0.08)
			r.popHz = 600 + 400*math.Abs(lcg(&r.seed))
		}
		if r.pop > 0 {
			lt := float64(frames(0.08)-r.pop) / SampleRate
			s += math.Sin(2*math.Pi*r.popHz*(1+6*lt)*lt) * 0.15 * (1 - lt/0.08)
			r.pop--
		}
		putStereo(p, i, s)
		r.t++
	}
	return n * bytesPerFrame, nil
}
