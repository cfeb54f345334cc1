package analyze

// Static word lists backing the heuristic scorers. Deterministic by
// construction; no model, no randomness.

var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "because": true, "been": true, "but": true,
	"by": true, "can": true, "could": true, "do": true, "for": true,
	"from": true, "had": true, "has": true, "have": true, "he": true,
	"her": true, "his": true, "how": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true,
	"more": true, "most": true, "my": true, "no": true, "not": true,
	"of": true, "on": true, "one": true, "only": true, "or": true,
	"other": true, "our": true, "out": true, "over": true, "she": true,
	"so": true, "some": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "to": true, "up": true, "was": true,
	"we": true, "were": true, "what": true, "when": true, "which": true,
	"who": true, "will": true, "with": true, "would": true, "you": true,
	"your": true,
}

var positiveWords = map[string]bool{
	"advance": true, "benefit": true, "breakthrough": true, "effective": true,
	"excellent": true, "gain": true, "good": true, "great": true,
	"growth": true, "improve": true, "improved": true, "innovative": true,
	"positive": true, "progress": true, "promising": true, "strong": true,
	"success": true, "successful": true, "win": true, "winning": true,
}

var negativeWords = map[string]bool{
	"bad": true, "concern": true, "controversy": true, "crisis": true,
	"damage": true, "decline": true, "fail": true, "failed": true,
	"failure": true, "loss": true, "negative": true, "poor": true,
	"problem": true, "risk": true, "threat": true, "weak": true,
	"worse": true, "worst": true, "wrong": true, "harm": true,
}

// Cue sets for content-type classification. Checked in a fixed order so
// ties resolve the same way every run.
var contentTypeCues = []struct {
	label string
	cues  []string
}{
	{"academic", []string{
		"abstract", "study", "research", "journal", "methodology",
		"hypothesis", "peer-reviewed", "findings", "et al", "doi",
	}},
	{"news", []string{
		"breaking", "reported", "according to", "announced", "officials",
		"reuters", "associated press", "correspondent", "press release",
	}},
	{"technical", []string{
		"api", "algorithm", "implementation", "documentation", "software",
		"configuration", "tutorial", "source code", "repository", "deploy",
	}},
	{"opinion", []string{
		"i think", "i believe", "in my view", "opinion", "editorial",
		"argue", "arguably", "should", "ought to",
	}},
}
