package statement

// DefaultCatalog returns the built-in statement set.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Statement{
		{ID: "food-01", Text: "Pineapple belongs on pizza", Topic: "food"},
		{ID: "food-02", Text: "Breakfast is the most important meal of the day", Topic: "food"},
		{ID: "food-03", Text: "Cooking at home beats eating out", Topic: "food"},
		{ID: "food-04", Text: "Spicy food makes everything better", Topic: "food"},
		{ID: "food-05", Text: "Coffee is overrated", Topic: "food"},
		{ID: "travel-01", Text: "Window seats are better than aisle seats", Topic: "travel"},
		{ID: "travel-02", Text: "A packed itinerary beats wandering aimlessly", Topic: "travel"},
		{ID: "travel-03", Text: "Camping is a real vacation", Topic: "travel"},
		{ID: "travel-04", Text: "Beach holidays beat city trips", Topic: "travel"},
		{ID: "travel-05", Text: "Airport food is part of the travel experience", Topic: "travel"},
		{ID: "lifestyle-01", Text: "Mornings are the best part of the day", Topic: "lifestyle"},
		{ID: "lifestyle-02", Text: "Working from home beats the office", Topic: "lifestyle"},
		{ID: "lifestyle-03", Text: "Making your bed every morning matters", Topic: "lifestyle"},
		{ID: "lifestyle-04", Text: "Phones should be banned at the dinner table", Topic: "lifestyle"},
		{ID: "lifestyle-05", Text: "Owning fewer things makes you happier", Topic: "lifestyle"},
		{ID: "fun-01", Text: "Board games are better than video games", Topic: "fun"},
		{ID: "fun-02", Text: "Spoilers ruin a movie", Topic: "fun"},
		{ID: "fun-03", Text: "Karaoke is fun even if you can't sing", Topic: "fun"},
		{ID: "fun-04", Text: "Rewatching a favorite show beats starting a new one", Topic: "fun"},
		{ID: "fun-05", Text: "The book is always better than the movie", Topic: "fun"},
		{ID: "values-01", Text: "It's okay to be five minutes late", Topic: "values"},
		{ID: "values-02", Text: "Money spent on experiences beats money spent on things", Topic: "values"},
		{ID: "values-03", Text: "Honesty matters more than politeness", Topic: "values"},
		{ID: "values-04", Text: "Talent matters more than hard work", Topic: "values"},
	})
}
