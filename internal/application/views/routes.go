package views

import (
	"strconv"
	"strings"
)

// Route is one entry of the navigation surface. Paths are the ones the
// existing frontend exposed, Turkish segments included, so deep links
// keep working.
type Route struct {
	Path      string
	Name      string
	Protected bool
}

// Routes is the full route table in sidebar order.
var Routes = []Route{
	{Path: "/", Name: "register"},
	{Path: "/giris", Name: "login"},
	{Path: "/home", Name: "home", Protected: true},
	{Path: "/projeler", Name: "projects", Protected: true},
	{Path: "/gorevler", Name: "tasks", Protected: true},
	{Path: "/calisanlar", Name: "users", Protected: true},
	{Path: "/calisanlar/details/:id", Name: "user-details", Protected: true},
	{Path: "/profil", Name: "profile", Protected: true},
}

// Match resolves a concrete path against the route table, extracting
// the :id parameter when the pattern carries one. The boolean is false
// for unknown paths.
func Match(path string) (Route, int64, bool) {
	for _, route := range Routes {
		if id, ok := matchPattern(route.Path, path); ok {
			return route, id, true
		}
	}
	return Route{}, 0, false
}

func matchPattern(pattern, path string) (int64, bool) {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return 0, false
	}

	var id int64
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			parsed, err := strconv.ParseInt(pathParts[i], 10, 64)
			if err != nil {
				return 0, false
			}
			id = parsed
			continue
		}
		if part != pathParts[i] {
			return 0, false
		}
	}
	return id, true
}

// Sidebar returns the navigation entries shown on every protected
// page.
func Sidebar() []Route {
	var entries []Route
	for _, route := range Routes {
		if route.Protected && !strings.Contains(route.Path, ":") {
			entries = append(entries, route)
		}
	}
	return entries
}
