package lexicon

import "strings"

var moodTokens = map[string]string{
	"ind": "indicatif",
	"imp": "impératif",
	"sub": "subjonctif",
	"par": "participe",
	"cnd": "conditionnel",
	"inf": "infinitif",
}

var tenseTokens = map[string]string{
	"pre": "présent",
	"pas": "passé",
	"imp": "imparfait",
	"fut": "future",
}

// parseConjugationSegment parses one ':'-separated "mood:tense:persNum"
// segment into its ordered, non-empty component tokens.
//
// infinitif segments stop at the mood token; participe segments stop at
// the tense token (French infinitives and participles have no person or
// number marking). When present, a trailing person/number code such as
// "1s" yields two tokens: "pers_1" and "nbr_s".
func parseConjugationSegment(segment string) []string {
	parts := strings.Split(segment, ":")
	var tuple []string

	if len(parts) == 0 || parts[0] == "" {
		return nil
	}
	mood, ok := moodTokens[parts[0]]
	if !ok {
		return nil
	}
	tuple = append(tuple, mood)
	if parts[0] == "inf" {
		return tuple
	}

	if len(parts) < 2 || parts[1] == "" {
		return tuple
	}
	tense, ok := tenseTokens[parts[1]]
	if !ok {
		return tuple
	}
	tuple = append(tuple, tense)
	if parts[0] == "par" {
		return tuple
	}

	if len(parts) < 3 || parts[2] == "" {
		return tuple
	}
	if pers, nbr, ok := parsePersNum(parts[2]); ok {
		if pers != "" {
			tuple = append(tuple, "pers_"+pers)
		}
		if nbr != "" {
			tuple = append(tuple, "nbr_"+nbr)
		}
	}
	return tuple
}

// parsePersNum parses a persNum code such as "1s" or "3p" into its person
// digit and number letter.
func parsePersNum(code string) (pers, nbr string, ok bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", "", false
	}
	for _, r := range code {
		switch {
		case r >= '1' && r <= '3':
			pers = string(r)
		case r == 's' || r == 'p':
			nbr = string(r)
		}
	}
	return pers, nbr, pers != "" || nbr != ""
}

// conjugationFeatures parses a semicolon-separated infoVerb field into the
// full set of powerset-derived feature strings (deduplicated).
func conjugationFeatures(infoVerb string) []string {
	if infoVerb == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, segment := range strings.Split(infoVerb, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		tuple := parseConjugationSegment(segment)
		for _, f := range powersetJoin(tuple, ":") {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				out = append(out, f)
			}
		}
	}
	return out
}

// powersetJoin returns every non-empty subset of items (order preserved
// within each subset), each subset joined by sep. At most 2^4-1 = 15
// items per conjugation record.
func powersetJoin(items []string, sep string) []string {
	n := len(items)
	if n == 0 {
		return nil
	}
	var out []string
	for mask := 1; mask < (1 << n); mask++ {
		var subset []string
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, items[i])
			}
		}
		out = append(out, strings.Join(subset, sep))
	}
	return out
}
