// Package utils provides small helpers shared by the CLI layer.
package utils
