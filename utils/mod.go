// Package utils holds small generic helpers shared across packages.
package utils

// FindIndex returns the index of the first occurrence of item in slice,
// or -1 when absent.
func FindIndex[T comparable](slice []T, item T) int {
	for i := range slice {
		if slice[i] == item {
			return i
		}
	}
	return -1
}
