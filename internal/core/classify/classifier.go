package classify

import (
	"sort"
	"strings"
)

// Match is a single rule hit inside scanned text.
type Match struct {
	Type        string
	Level       Level
	Text        string
	Start       int
	End         int
	Description string
}

// ruleSet pairs a sensitivity level with the rules that assign it.
type ruleSet struct {
	level Level
	rules []Rule
}

// orderedRuleSets is evaluated most-restrictive first. This ordering is the
// classification invariant: the first level with any match wins.
var orderedRuleSets = []ruleSet{
	{LevelPrivate, privateRules},
	{LevelPersonal, personalRules},
	{LevelBusiness, businessRules},
}

// Scan runs every rule of every level against text and returns all matches
// sorted by start offset. Overlapping matches from different rules are all
// retained; Scan never decides the level, it only reports the evidence.
func Scan(text string) []Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var matches []Match
	for _, set := range orderedRuleSets {
		for _, rule := range set.rules {
			for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
				matches = append(matches, Match{
					Type:        rule.Type,
					Level:       set.level,
					Text:        text[loc[0]:loc[1]],
					Start:       loc[0],
					End:         loc[1],
					Description: rule.Description,
				})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

// Classify returns the sensitivity level for text. Levels are checked in
// priority order and the first level with at least one match is returned
// immediately; text matching no rule is ideas.
func Classify(text string) Level {
	if strings.TrimSpace(text) == "" {
		return LevelIdeas
	}

	for _, set := range orderedRuleSets {
		for _, rule := range set.rules {
			if rule.Pattern.MatchString(text) {
				return set.level
			}
		}
	}
	return LevelIdeas
}
