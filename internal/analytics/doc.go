// Package analytics derives streaks, consistency scores and monthly
// breakdowns from habit completion records.
//
// Every function takes the reference instant explicitly; nothing in this
// package reads the wall clock. The only code that performs I/O is Loader,
// which fetches histories from a Source before handing them to the pure
// functions.
package analytics
