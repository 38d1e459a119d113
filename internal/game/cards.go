package game

import "math/rand/v2"

// The fixed spectrum deck. Cards are drawn uniformly; repeats across
// rounds are fine.
var deck = []Card{
	{"Hot", "Cold"},
	{"Underrated", "Overrated"},
	{"Scary", "Not scary"},
	{"Round", "Pointy"},
	{"Smells bad", "Smells good"},
	{"Loved", "Hated"},
	{"Rare", "Common"},
	{"Useless", "Useful"},
	{"Normal", "Weird"},
	{"Guilty pleasure", "Openly loved"},
	{"Fantasy", "Sci-Fi"},
	{"Dry", "Wet"},
	{"Drink", "Food"},
	{"Low calorie", "High calorie"},
	{"Feels bad", "Feels good"},
	{"Bad movie", "Good movie"},
	{"Dangerous job", "Safe job"},
	{"Quiet place", "Loud place"},
	{"Famous", "Obscure"},
	{"Dog person thing", "Cat person thing"},
	{"Cheap", "Expensive"},
	{"Short-lived", "Long-lived"},
	{"Historically important", "Historically irrelevant"},
	{"Bad superpower", "Good superpower"},
	{"Hard to spell", "Easy to spell"},
	{"Villain", "Hero"},
	{"Casual", "Formal"},
	{"Easy to kill", "Hard to kill"},
	{"Mainstream", "Niche"},
	{"Bad habit", "Good habit"},
	{"Sad song", "Happy song"},
	{"Worst day of the year", "Best day of the year"},
	{"Requires luck", "Requires skill"},
	{"Overpaid", "Underpaid"},
	{"Ugly animal", "Beautiful animal"},
	{"Bad pizza topping", "Good pizza topping"},
	{"Forgettable", "Memorable"},
	{"Temporary", "Permanent"},
	{"Unethical", "Ethical"},
	{"Introvert activity", "Extrovert activity"},
}

func RandomCard() Card {
	return deck[rand.IntN(len(deck))]
}

func RandomTarget() int {
	return SpectrumMin + rand.IntN(SpectrumMax-SpectrumMin+1)
}
