// Package assoc resolves the many-to-many relationship between posts and
// projects: a post declares which projects it belongs to, and each project
// page lists its associated posts.
package assoc

import (
	"github.com/ALescoulie/sitegen/internal/site"
	"github.com/ALescoulie/sitegen/internal/util/sets"
)

// PostsForProject returns the built posts whose projects field contains the
// given project identifier. A post with no projects belongs to no project.
// Results are deduplicated by stable page identity (kind plus directory) and
// keep their encounter order.
func PostsForProject(project string, posts []site.BuiltPage) []site.BuiltPage {
	seen := sets.New[string]()
	var matched []site.BuiltPage
	for _, p := range posts {
		if !declaresProject(p, project) {
			continue
		}
		if seen.Has(p.Key()) {
			continue
		}
		seen.Add(p.Key())
		matched = append(matched, p)
	}
	return matched
}

func declaresProject(p site.BuiltPage, project string) bool {
	for _, name := range p.Meta.Projects {
		if name == project {
			return true
		}
	}
	return false
}
