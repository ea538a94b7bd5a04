package content

import "strings"

// FormatAuthors renders an ordered author list for display. One author is
// the bare name, two are joined with "and", and three or more use an Oxford
// comma join: "Ann, Bo, and Cy". An empty list is ErrNoAuthors.
func FormatAuthors(authors []string) (string, error) {
	switch len(authors) {
	case 0:
		return "", ErrNoAuthors
	case 1:
		return authors[0], nil
	case 2:
		return authors[0] + " and " + authors[1], nil
	default:
		return strings.Join(authors[:len(authors)-1], ", ") + ", and " + authors[len(authors)-1], nil
	}
}
