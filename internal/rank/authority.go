package rank

import (
	"strings"

	"studypal/internal/core"
)

// Authority tables used for the rerank source bonus. These differ from the
// credibility tables in the quality package: credibility is a per-item
// quality signal, while the authority bonus steers the merged ordering
// toward known educational sources.

// trustedChannels earn the authority bonus for videos, matched
// case-insensitively against the channel title.
var trustedChannels = []string{
	"khan academy", "crash course", "3blue1brown", "ted-ed",
	"mit opencourseware", "stanford", "harvard",
}

// educationalDomains earn the authority bonus for documents, matched as
// substrings of the source URL.
var educationalDomains = []string{
	"edu", "ac.", "mit.edu", "stanford.edu", "harvard.edu",
}

func hasAuthority(item core.ContentItem) bool {
	switch item.Type {
	case core.ContentTypeVideo:
		channel := strings.ToLower(item.Channel)
		for _, trusted := range trustedChannels {
			if channel != "" && strings.Contains(channel, trusted) {
				return true
			}
		}
	case core.ContentTypeDocument:
		link := strings.ToLower(item.Link)
		for _, domain := range educationalDomains {
			if link != "" && strings.Contains(link, domain) {
				return true
			}
		}
	}
	return false
}
