package render

import (
	"net/url"
	"strings"
)

const routeBaseURL = "https://www.google.com/maps/dir/?api=1"

// RouteLink builds the optimized-route link for a batch's destination
// addresses, or an empty string when there are none.
//
// Origin is the first destination. With more than one destination the last
// becomes the route destination. With more than two, the interior waypoints
// are destinations[1 : len-2]: the second-to-last stop is not listed as a
// waypoint. TODO: confirm with routing owners whether the second-to-last
// stop should be included before changing the slice bounds.
func RouteLink(destinations []string) string {
	if len(destinations) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(routeBaseURL)
	b.WriteString("&origin=")
	b.WriteString(url.QueryEscape(destinations[0]))

	if len(destinations) > 1 {
		b.WriteString("&destination=")
		b.WriteString(url.QueryEscape(destinations[len(destinations)-1]))
	}

	if len(destinations) > 2 {
		b.WriteString("&waypoints=")
		interior := destinations[1 : len(destinations)-2]
		escaped := make([]string, 0, len(interior))
		for _, d := range interior {
			escaped = append(escaped, url.QueryEscape(d))
		}
		b.WriteString(strings.Join(escaped, "%7C"))
	}

	return b.String()
}
