// Package protocol owns the scoreboard controller wire contract.
//
// Ownership boundary:
// - frame: STX/ETX delimited frame extraction from the serial byte stream
// - layout: fixed-width field carving for tagged frames
package protocol
