// Package category classifies identified objects and supplies the follow-up
// questions each category needs for enrichment.
package category

import "strings"

const (
	Food    = "food"
	Package = "package"
	Pet     = "pet"
	Person  = "person"
	General = "general"
)

type keywordSet struct {
	category string
	keywords []string
}

// Checked in order; the first category with a keyword inside the label wins.
var keywordTable = []keywordSet{
	{Food, []string{
		"apple", "banana", "fruit", "vegetable", "meat", "chicken", "fish", "bread",
		"food", "meal", "sandwich", "burger", "pizza", "salad", "rice", "pasta",
		"egg", "cheese", "milk", "yogurt", "beef", "pork", "turkey", "salmon",
		"potato", "tomato", "carrot", "orange", "grape", "strawberry", "mango",
		"pineapple", "watermelon", "avocado", "broccoli", "lettuce", "cucumber",
		"onion", "pepper", "spinach", "cake", "cookie", "chocolate",
	}},
	{Package, []string{
		"box", "package", "parcel", "carton", "envelope", "container", "crate",
		"shipment", "mail", "delivery", "shipping box", "cardboard", "packaging",
	}},
	{Pet, []string{
		"dog", "cat", "puppy", "kitten", "rabbit", "bird", "hamster", "guinea pig",
		"pet", "animal", "canine", "feline", "retriever", "shepherd", "bulldog",
		"poodle", "beagle", "husky", "chihuahua", "persian", "siamese", "parrot",
	}},
	{Person, []string{
		"person", "man", "woman", "human", "body", "people", "adult", "child",
		"male", "female", "guy", "girl", "boy", "individual",
	}},
}

// Detect maps an object label to food, package, pet, person or general.
func Detect(label string) string {
	l := strings.ToLower(label)
	if strings.TrimSpace(l) == "" {
		return General
	}
	for _, set := range keywordTable {
		for _, kw := range set.keywords {
			if strings.Contains(l, kw) {
				return set.category
			}
		}
	}
	return General
}

// Valid reports whether c is one of the known categories.
func Valid(c string) bool {
	switch c {
	case Food, Package, Pet, Person, General:
		return true
	}
	return false
}

// All lists every category in detection order, general last.
func All() []string {
	return []string{Food, Package, Pet, Person, General}
}
