package audio

import (
	"math"
	"testing"
)

func TestGeneratedCuesAreNonEmptyAndBounded(t *testing.T) {
	for _, c := range []Cue{CueBubbles, CueClick, CueMistake, CueWin} {
		t.Run(c.String(), func(t *testing.T) {
			buf := Generate(c)
			if len(buf) == 0 || len(buf)%bytesPerFrame != 0 {
				t.Fatalf("buffer length %d", len(buf))
			}
			for i := 0; i < len(buf); i += 4 {
				bits := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16 | uint32(buf[i+3])<<24
				v := math.Float32frombits(bits)
				if v < -1 || v > 1 || math.IsNaN(float64(v)) {
					t.Fatalf("sample %d out of range: %v", i/4, v)
				}
			}
		})
	}
	if Generate(CueBackground) != nil {
		t.Error("background is streamed, not pre-generated")
	}
}

func TestAmbientReaderFillsWholeFrames(t *testing.T) {
	r := NewAmbient(1)
	p := make([]byte, 1000*bytesPerFrame+3)
	n, err := r.Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1000*bytesPerFrame {
		t.Errorf("read %d bytes, want %d", n, 1000*bytesPerFrame)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Player = &r
	p.Play(CueClick)
	p.Play(CueBubbles)
	p.Play(CueClick)
	p.StartAmbient()
	if r.Count(CueClick) != 2 || len(r.Cues()) != 3 {
		t.Errorf("cues = %v", r.Cues())
	}
	if !r.Ambient() {
		t.Error("ambient not recorded")
	}
	p.StopAmbient()
	if r.Ambient() {
		t.Error("ambient still on")
	}
}

func TestCueString(t *testing.T) {
	if CueMistake.String() != "mistake" || Cue(42).String() != "Cue(42)" {
		t.Errorf("names: %s %s", CueMistake, Cue(42))
	}
}
