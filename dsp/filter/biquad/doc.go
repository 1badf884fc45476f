// Package biquad implements second-order IIR filter sections (biquads) in
// Direct Form II Transposed, and cascades of sections for higher-order
// filters.
//
// Sections and chains are single-goroutine values: the audio domain owns them
// and processes blocks without locking. Coefficient updates preserve the
// delay-line state where possible so a running filter can be retuned without
// an output discontinuity.
package biquad
