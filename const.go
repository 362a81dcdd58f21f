package graph

// BlockSize is the fixed capacity, in frames, of a Buffer. It is a build
// time constant rather than a runtime parameter so that scratch buffers
// throughout the graph share one SIMD-friendly layout (see DESIGN.md,
// "block size").
const BlockSize = 64

// DefaultSampleRate is the sample rate a freshly constructed node assumes
// until SetSampleRate is called.
const DefaultSampleRate = 44100.0
