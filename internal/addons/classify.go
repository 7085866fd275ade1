package addons

import "strings"

// toleratedInstallMarkers classify a failed install as a pre-existing
// installation. The install tools expose no structured status channel, so
// substring containment on their combined output is the only classification
// mechanism available.
var toleratedInstallMarkers = []string{
	"already exists",
	"alreadyexists",
	"already installed",
}

// installTolerated reports whether failed install output indicates the
// add-on's resources already exist. Matching is case-insensitive.
func installTolerated(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range toleratedInstallMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
