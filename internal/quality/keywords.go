package quality

// Fixed keyword tables for quality assessment. Kept apart from the scoring
// logic so they can be tested and extended independently.

// clickbaitKeywords disqualify a title from the non-clickbait bonus.
var clickbaitKeywords = []string{"click", "amazing"}

// depthKeywords indicate substantial content depth in a snippet.
var depthKeywords = []string{"comprehensive", "detailed"}

// educationalIndicators mark content that is explicitly instructional.
var educationalIndicators = []string{"tutorial", "guide", "explanation", "course", "lesson"}

// learningKeywords each contribute a fractional educational-value increment,
// counted at most once per keyword.
var learningKeywords = []string{"learn", "understand", "explain", "teach", "study", "concept"}

// structureMarkers indicate the content is organized into steps or sections.
var structureMarkers = []string{"step", "chapter", "section"}

// credibleDomains are substrings of document source URLs granted the
// credibility bonus.
var credibleDomains = []string{"edu", "gov", "ac.", "org"}

// credibleChannels are video channels granted the credibility bonus,
// matched case-insensitively against the channel title.
var credibleChannels = []string{"khan academy", "crash course", "ted", "mit", "stanford"}
