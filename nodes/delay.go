package nodes

import (
	"math"

	graph "github.com/loomaudio/graph"
)

// delay is a fixed delay line of an integer number of samples, rounded
// from a time given in seconds. Input 0: signal. Output 0: signal
// delayed by round(seconds * sampleRate) samples.
//
// Grounded on original_source/src/delay.rs's Delay: a ring buffer of
// length N+1 where N is the delay in samples, written then immediately
// read one slot ahead, which yields exactly N samples of latency
// (verified against test scenario S3: a 1-second delay at sr=44100
// first re-emits its input at sample index 44100).
type delay struct {
	seconds float64
	sr      float64
	buf     []float32
	i       int
	samples int
}

// Delay returns a one-channel fixed delay of t seconds, t >= 0.
func Delay(t float64) graph.Node {
	if t < 0 {
		panic("nodes: delay: negative time")
	}
	return &delay{seconds: t}
}

func (d *delay) Inputs() int  { return 1 }
func (d *delay) Outputs() int { return 1 }

func (d *delay) Reset() {
	d.i = 0
	for i := range d.buf {
		d.buf[i] = 0
	}
}

func (d *delay) SetSampleRate(sr float64) {
	if d.sr == sr {
		return
	}
	d.sr = sr
	d.samples = int(math.Round(d.seconds * sr))
	d.buf = make([]float32, d.samples+1)
	d.Reset()
}

func (d *delay) Allocate() {}

func (d *delay) Tick(input graph.Frame) graph.Frame {
	d.buf[d.i] = input[0]
	d.i++
	if d.i >= len(d.buf) {
		d.i = 0
	}
	return graph.Frame{d.buf[d.i]}
}

func (d *delay) Process(input graph.BufferRef, output graph.BufferMut, size int) {
	for i := 0; i < size; i++ {
		out := d.Tick(graph.Frame{input.At(0, i)})
		output.Set(0, i, out[0])
	}
}

func (d *delay) Set(setting graph.Setting, addr graph.Address) {
	if setting.Kind == graph.SettingKindDelay && d.sr > 0 {
		d.seconds = float64(setting.DelaySamples) / d.sr
		sr := d.sr
		d.sr = 0
		d.SetSampleRate(sr)
	}
}

func (d *delay) Ping(probe bool, hash uint64) uint64 { return hash }

func (d *delay) Route(in []graph.Tag) []graph.Tag {
	latency := float64(d.samples)
	return []graph.Tag{in[0].Delay(latency)}
}

func (d *delay) Latency() float64 { return float64(d.samples) }
