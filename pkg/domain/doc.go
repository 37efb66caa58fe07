// Package domain is pure data: Address, Amount, Node and Edge carry no
// behaviour beyond comparison and arithmetic, and no package in this module
// performs I/O through them. See pkg/apperror for the error types raised
// when callers misuse these values.
package domain
