// Package cycle derives cycle phases, next-start predictions and confidence
// grades from a last period start and average lengths. It performs no I/O and
// never reads the clock: every operation takes the current date as input.
package cycle
