//go:build !race

package auth

func passwordHashCost() int {
	// Cost 12 keeps offline brute force expensive while staying usable for
	// interactive logins.
	return 12
}
