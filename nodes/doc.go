// Package nodes provides a minimal set of concrete signal-processing
// leaves - an oscillator, a delay line, a one-pole lowpass filter,
// a noise source, a decibel-to-gain scale and a sample player - just
// enough to exercise the root graph package's combinators and analysis
// engine end to end. It is deliberately not a DSP algorithm catalog
// (see the root package's Non-goals): each node here is grounded on
// exactly one component from the reference implementation
// (oscillator.rs, delay.rs, filter.rs, noise.rs, gen.rs) rather than
// assembled into a library of effects.
package nodes
