// Package design computes biquad coefficients from the RBJ Audio EQ Cookbook
// formulas. All functions are pure and return normalized coefficients
// (a0 = 1); invalid inputs (non-positive or out-of-Nyquist frequencies,
// non-finite values) degrade to a silent all-zero biquad or a default Q
// rather than producing non-finite coefficients, so a bad parameter can
// never poison a running filter.
package design
