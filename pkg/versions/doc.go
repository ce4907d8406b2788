// Package versions holds the version algebra shared by the target normalizer
// and the requirement decider.
//
// Every version that takes part in a comparison is first brought into strict
// "major.minor.patch" form by Semverify. Comparison then happens field by field
// on integers, so "6.10.0" sorts after "6.9.0" even though 6.10 < 6.9 as a
// decimal. Raw user input may be an integer, a float or a string; floats are a
// known trap ("6.10" parses as 6.1) and are reported by IsAmbiguousDecimal.
package versions
