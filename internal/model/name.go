package model

import "golang.org/x/text/cases"

// SameName reports whether two names match ignoring case.
func SameName(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
