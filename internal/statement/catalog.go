package statement

import "math/rand"

// Statement is one swipeable prompt. Catalog entries are loaded once at
// startup and never mutated.
type Statement struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Topic string `json:"topic"`
}

type Catalog struct {
	statements []Statement
	byID       map[string]Statement
}

func NewCatalog(statements []Statement) *Catalog {
	byID := make(map[string]Statement, len(statements))
	for _, s := range statements {
		byID[s.ID] = s
	}
	return &Catalog{statements: statements, byID: byID}
}

func (c *Catalog) Get(id string) (Statement, bool) {
	s, ok := c.byID[id]
	return s, ok
}

func (c *Catalog) Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Catalog) All() []Statement {
	out := make([]Statement, len(c.statements))
	copy(out, c.statements)
	return out
}

func (c *Catalog) Topics() []string {
	seen := make(map[string]struct{})
	topics := []string{}
	for _, s := range c.statements {
		if _, ok := seen[s.Topic]; !ok {
			seen[s.Topic] = struct{}{}
			topics = append(topics, s.Topic)
		}
	}
	return topics
}

// Sample returns up to count statements drawn at random, restricted to the
// given topics when any are provided. A topic filter matching nothing
// yields an empty slice, not a fallback to the full catalog.
func (c *Catalog) Sample(topics []string, count int) []Statement {
	if count < 0 {
		count = 0
	}
	pool := c.statements
	if len(topics) > 0 {
		wanted := make(map[string]struct{}, len(topics))
		for _, t := range topics {
			wanted[t] = struct{}{}
		}
		pool = nil
		for _, s := range c.statements {
			if _, ok := wanted[s.Topic]; ok {
				pool = append(pool, s)
			}
		}
	}

	shuffled := make([]Statement, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled
}
