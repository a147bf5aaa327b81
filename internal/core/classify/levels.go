// Package classify assigns sensitivity levels to card content using
// ordered pattern rule sets.
package classify

// Level is a card sensitivity level. Levels are totally ordered, most
// restrictive first: private > personal > business > ideas. Ideas is the
// default when no rule matches.
type Level string

const (
	LevelPrivate  Level = "private"
	LevelPersonal Level = "personal"
	LevelBusiness Level = "business"
	LevelIdeas    Level = "ideas"
)

// Publishable reports whether content at this level may leave the machine.
// Only business and ideas cards are ever eligible for publishing.
func (l Level) Publishable() bool {
	return l == LevelBusiness || l == LevelIdeas
}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelPrivate, LevelPersonal, LevelBusiness, LevelIdeas:
		return true
	}
	return false
}
