package reference

// Seed returns the curated reference rows loaded into a fresh database.
// IDs are stable so the in-memory store and a seeded database agree.
func Seed() Data {
	return Data{
		Foods:         seedFoods(),
		Carriers:      seedCarriers(),
		Breeds:        seedBreeds(),
		BMICategories: seedBMICategories(),
	}
}

func seedFoods() []FoodNutrition {
	return []FoodNutrition{
		{ID: 1, Name: "apple", Aliases: []string{"red apple", "green apple", "granny smith"}, FoodCategory: "fruit", CaloriesPer100g: 52, ProteinPer100g: 0.3, CarbsPer100g: 14, FatPer100g: 0.2, FiberPer100g: 2.4},
		{ID: 2, Name: "banana", Aliases: []string{"ripe banana", "plantain"}, FoodCategory: "fruit", CaloriesPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 23, FatPer100g: 0.3, FiberPer100g: 2.6},
		{ID: 3, Name: "orange", Aliases: []string{"navel orange", "blood orange"}, FoodCategory: "fruit", CaloriesPer100g: 47, ProteinPer100g: 0.9, CarbsPer100g: 12, FatPer100g: 0.1, FiberPer100g: 2.4},
		{ID: 4, Name: "grape", Aliases: []string{"grapes", "green grape", "red grape"}, FoodCategory: "fruit", CaloriesPer100g: 69, ProteinPer100g: 0.7, CarbsPer100g: 18, FatPer100g: 0.2, FiberPer100g: 0.9},
		{ID: 5, Name: "watermelon", Aliases: []string{"water melon"}, FoodCategory: "fruit", CaloriesPer100g: 30, ProteinPer100g: 0.6, CarbsPer100g: 8, FatPer100g: 0.2, FiberPer100g: 0.4},
		{ID: 6, Name: "strawberry", Aliases: []string{"strawberries"}, FoodCategory: "fruit", CaloriesPer100g: 32, ProteinPer100g: 0.7, CarbsPer100g: 8, FatPer100g: 0.3, FiberPer100g: 2},
		{ID: 7, Name: "mango", Aliases: []string{"mangoes"}, FoodCategory: "fruit", CaloriesPer100g: 60, ProteinPer100g: 0.8, CarbsPer100g: 15, FatPer100g: 0.4, FiberPer100g: 1.6},
		{ID: 8, Name: "pineapple", Aliases: []string{"pine apple"}, FoodCategory: "fruit", CaloriesPer100g: 50, ProteinPer100g: 0.5, CarbsPer100g: 13, FatPer100g: 0.1, FiberPer100g: 1.4},
		{ID: 9, Name: "avocado", Aliases: []string{"avacado"}, FoodCategory: "fruit", CaloriesPer100g: 160, ProteinPer100g: 2, CarbsPer100g: 9, FatPer100g: 15, FiberPer100g: 7},
		{ID: 10, Name: "peach", Aliases: []string{"peaches"}, FoodCategory: "fruit", CaloriesPer100g: 39, ProteinPer100g: 0.9, CarbsPer100g: 10, FatPer100g: 0.3, FiberPer100g: 1.5},
		{ID: 11, Name: "tomato", Aliases: []string{"tomatoes", "cherry tomato"}, FoodCategory: "vegetable", CaloriesPer100g: 18, ProteinPer100g: 0.9, CarbsPer100g: 4, FatPer100g: 0.2, FiberPer100g: 1.2},
		{ID: 12, Name: "carrot", Aliases: []string{"carrots"}, FoodCategory: "vegetable", CaloriesPer100g: 41, ProteinPer100g: 0.9, CarbsPer100g: 10, FatPer100g: 0.2, FiberPer100g: 2.8},
		{ID: 13, Name: "broccoli", Aliases: []string{"brocoli"}, FoodCategory: "vegetable", CaloriesPer100g: 34, ProteinPer100g: 2.8, CarbsPer100g: 7, FatPer100g: 0.4, FiberPer100g: 2.6},
		{ID: 14, Name: "lettuce", Aliases: []string{"iceberg lettuce", "romaine"}, FoodCategory: "vegetable", CaloriesPer100g: 15, ProteinPer100g: 1.4, CarbsPer100g: 3, FatPer100g: 0.2, FiberPer100g: 1.3},
		{ID: 15, Name: "cucumber", Aliases: []string{"cucumbers"}, FoodCategory: "vegetable", CaloriesPer100g: 16, ProteinPer100g: 0.7, CarbsPer100g: 4, FatPer100g: 0.1, FiberPer100g: 0.5},
		{ID: 16, Name: "potato", Aliases: []string{"potatoes", "russet potato"}, FoodCategory: "vegetable", CaloriesPer100g: 77, ProteinPer100g: 2, CarbsPer100g: 17, FatPer100g: 0.1, FiberPer100g: 2.2},
		{ID: 17, Name: "onion", Aliases: []string{"onions", "yellow onion", "red onion"}, FoodCategory: "vegetable", CaloriesPer100g: 40, ProteinPer100g: 1.1, CarbsPer100g: 9, FatPer100g: 0.1, FiberPer100g: 1.7},
		{ID: 18, Name: "bell pepper", Aliases: []string{"pepper", "red pepper", "green pepper"}, FoodCategory: "vegetable", CaloriesPer100g: 31, ProteinPer100g: 1, CarbsPer100g: 6, FatPer100g: 0.3, FiberPer100g: 2.1},
		{ID: 19, Name: "spinach", Aliases: []string{"baby spinach"}, FoodCategory: "vegetable", CaloriesPer100g: 23, ProteinPer100g: 2.9, CarbsPer100g: 4, FatPer100g: 0.4, FiberPer100g: 2.2},
		{ID: 20, Name: "cauliflower", Aliases: nil, FoodCategory: "vegetable", CaloriesPer100g: 25, ProteinPer100g: 1.9, CarbsPer100g: 5, FatPer100g: 0.3, FiberPer100g: 2},
		{ID: 21, Name: "chicken breast", Aliases: []string{"chicken", "grilled chicken", "chicken meat"}, FoodCategory: "meat", CaloriesPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatPer100g: 3.6, FiberPer100g: 0},
		{ID: 22, Name: "salmon", Aliases: []string{"salmon fillet", "grilled salmon"}, FoodCategory: "seafood", CaloriesPer100g: 208, ProteinPer100g: 20, CarbsPer100g: 0, FatPer100g: 13, FiberPer100g: 0},
		{ID: 23, Name: "beef", Aliases: []string{"steak", "ground beef", "beef steak"}, FoodCategory: "meat", CaloriesPer100g: 250, ProteinPer100g: 26, CarbsPer100g: 0, FatPer100g: 17, FiberPer100g: 0},
		{ID: 24, Name: "egg", Aliases: []string{"eggs", "chicken egg", "whole egg"}, FoodCategory: "protein", CaloriesPer100g: 155, ProteinPer100g: 13, CarbsPer100g: 1.1, FatPer100g: 11, FiberPer100g: 0},
		{ID: 25, Name: "tofu", Aliases: []string{"bean curd"}, FoodCategory: "protein", CaloriesPer100g: 76, ProteinPer100g: 8, CarbsPer100g: 1.9, FatPer100g: 4.8, FiberPer100g: 0.3},
		{ID: 26, Name: "pork", Aliases: []string{"pork chop", "pork meat"}, FoodCategory: "meat", CaloriesPer100g: 242, ProteinPer100g: 27, CarbsPer100g: 0, FatPer100g: 14, FiberPer100g: 0},
		{ID: 27, Name: "turkey", Aliases: []string{"turkey breast", "turkey meat"}, FoodCategory: "meat", CaloriesPer100g: 135, ProteinPer100g: 30, CarbsPer100g: 0, FatPer100g: 1.5, FiberPer100g: 0},
		{ID: 28, Name: "shrimp", Aliases: []string{"prawns", "prawn"}, FoodCategory: "seafood", CaloriesPer100g: 99, ProteinPer100g: 24, CarbsPer100g: 0.2, FatPer100g: 0.3, FiberPer100g: 0},
		{ID: 29, Name: "white rice", Aliases: []string{"rice", "cooked rice", "steamed rice"}, FoodCategory: "grain", CaloriesPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28, FatPer100g: 0.3, FiberPer100g: 0.4},
		{ID: 30, Name: "brown rice", Aliases: []string{"whole grain rice"}, FoodCategory: "grain", CaloriesPer100g: 111, ProteinPer100g: 2.6, CarbsPer100g: 23, FatPer100g: 0.9, FiberPer100g: 1.8},
		{ID: 31, Name: "white bread", Aliases: []string{"bread", "bread slice"}, FoodCategory: "grain", CaloriesPer100g: 265, ProteinPer100g: 9, CarbsPer100g: 49, FatPer100g: 3.2, FiberPer100g: 2.7},
		{ID: 32, Name: "pasta", Aliases: []string{"cooked pasta", "spaghetti"}, FoodCategory: "grain", CaloriesPer100g: 158, ProteinPer100g: 5.8, CarbsPer100g: 31, FatPer100g: 0.9, FiberPer100g: 1.8},
		{ID: 33, Name: "oatmeal", Aliases: []string{"oats", "cooked oatmeal"}, FoodCategory: "grain", CaloriesPer100g: 68, ProteinPer100g: 2.4, CarbsPer100g: 12, FatPer100g: 1.4, FiberPer100g: 1.7},
		{ID: 34, Name: "quinoa", Aliases: []string{"cooked quinoa"}, FoodCategory: "grain", CaloriesPer100g: 120, ProteinPer100g: 4.4, CarbsPer100g: 21, FatPer100g: 1.9, FiberPer100g: 2.8},
		{ID: 35, Name: "milk", Aliases: []string{"whole milk", "cow milk"}, FoodCategory: "dairy", CaloriesPer100g: 61, ProteinPer100g: 3.2, CarbsPer100g: 4.8, FatPer100g: 3.3, FiberPer100g: 0},
		{ID: 36, Name: "cheddar cheese", Aliases: []string{"cheese", "cheddar"}, FoodCategory: "dairy", CaloriesPer100g: 403, ProteinPer100g: 25, CarbsPer100g: 1.3, FatPer100g: 33, FiberPer100g: 0},
		{ID: 37, Name: "yogurt", Aliases: []string{"plain yogurt", "greek yogurt"}, FoodCategory: "dairy", CaloriesPer100g: 59, ProteinPer100g: 10, CarbsPer100g: 3.6, FatPer100g: 0.4, FiberPer100g: 0},
		{ID: 38, Name: "butter", Aliases: nil, FoodCategory: "dairy", CaloriesPer100g: 717, ProteinPer100g: 0.9, CarbsPer100g: 0.1, FatPer100g: 81, FiberPer100g: 0},
		{ID: 39, Name: "almond", Aliases: []string{"almonds"}, FoodCategory: "nut", CaloriesPer100g: 579, ProteinPer100g: 21, CarbsPer100g: 22, FatPer100g: 50, FiberPer100g: 12.5},
		{ID: 40, Name: "peanut", Aliases: []string{"peanuts"}, FoodCategory: "nut", CaloriesPer100g: 567, ProteinPer100g: 26, CarbsPer100g: 16, FatPer100g: 49, FiberPer100g: 8.5},
		{ID: 41, Name: "walnut", Aliases: []string{"walnuts"}, FoodCategory: "nut", CaloriesPer100g: 654, ProteinPer100g: 15, CarbsPer100g: 14, FatPer100g: 65, FiberPer100g: 6.7},
		{ID: 42, Name: "chocolate", Aliases: []string{"chocolate bar", "dark chocolate"}, FoodCategory: "snack", CaloriesPer100g: 546, ProteinPer100g: 5, CarbsPer100g: 61, FatPer100g: 31, FiberPer100g: 7},
		{ID: 43, Name: "honey", Aliases: nil, FoodCategory: "sweetener", CaloriesPer100g: 304, ProteinPer100g: 0.3, CarbsPer100g: 82, FatPer100g: 0, FiberPer100g: 0.2},
	}
}

func seedCarriers() []ShippingCarrier {
	return []ShippingCarrier{
		{ID: 1, Name: "USPS", ServiceType: "First Class", BaseRate: 3.5, RatePerKg: 2, MaxWeightKg: 0.45, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 2, Name: "USPS", ServiceType: "Priority Mail", BaseRate: 7.5, RatePerKg: 3.5, MaxWeightKg: 31.5, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 3, Name: "USPS", ServiceType: "Priority Mail Express", BaseRate: 25, RatePerKg: 8, MaxWeightKg: 31.5, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 4, Name: "FedEx", ServiceType: "Ground", BaseRate: 8, RatePerKg: 3, MaxWeightKg: 68, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 5, Name: "FedEx", ServiceType: "2-Day", BaseRate: 15, RatePerKg: 6, MaxWeightKg: 68, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 6, Name: "FedEx", ServiceType: "Overnight", BaseRate: 30, RatePerKg: 12, MaxWeightKg: 68, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 7, Name: "UPS", ServiceType: "Ground", BaseRate: 8.5, RatePerKg: 3.25, MaxWeightKg: 68, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 8, Name: "UPS", ServiceType: "3-Day Select", BaseRate: 12, RatePerKg: 5, MaxWeightKg: 68, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 9, Name: "UPS", ServiceType: "2-Day Air", BaseRate: 18, RatePerKg: 7, MaxWeightKg: 68, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 10, Name: "UPS", ServiceType: "Next Day Air", BaseRate: 32, RatePerKg: 13, MaxWeightKg: 68, VolumetricDivisor: 5000, IsInternational: false, IsActive: true},
		{ID: 11, Name: "DHL", ServiceType: "Express Worldwide", BaseRate: 40, RatePerKg: 15, MaxWeightKg: 300, VolumetricDivisor: 5000, IsInternational: true, IsActive: true},
	}
}

func seedBreeds() []BreedReference {
	return []BreedReference{
		{ID: 1, Species: "dog", Breed: "Labrador Retriever", Aliases: []string{"lab", "labrador"}, AdultMinKg: 25, AdultMaxKg: 36, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Friendly, active, and outgoing"},
		{ID: 2, Species: "dog", Breed: "German Shepherd", Aliases: []string{"gsd", "shepherd"}, AdultMinKg: 22, AdultMaxKg: 40, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Confident, courageous, and smart"},
		{ID: 3, Species: "dog", Breed: "Golden Retriever", Aliases: []string{"golden"}, AdultMinKg: 25, AdultMaxKg: 34, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Friendly, intelligent, and devoted"},
		{ID: 4, Species: "dog", Breed: "Bulldog", Aliases: []string{"english bulldog"}, AdultMinKg: 18, AdultMaxKg: 25, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Calm, courageous, and friendly"},
		{ID: 5, Species: "dog", Breed: "Beagle", Aliases: nil, AdultMinKg: 9, AdultMaxKg: 11, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Merry, friendly, and curious"},
		{ID: 6, Species: "dog", Breed: "Poodle", Aliases: []string{"standard poodle"}, AdultMinKg: 20, AdultMaxKg: 32, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Active, proud, and very smart"},
		{ID: 7, Species: "dog", Breed: "Rottweiler", Aliases: []string{"rottie"}, AdultMinKg: 35, AdultMaxKg: 60, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Loyal, loving, and confident"},
		{ID: 8, Species: "dog", Breed: "Yorkshire Terrier", Aliases: []string{"yorkie"}, AdultMinKg: 2, AdultMaxKg: 3.5, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Affectionate, sprightly, and tomboyish"},
		{ID: 9, Species: "dog", Breed: "Boxer", Aliases: nil, AdultMinKg: 25, AdultMaxKg: 32, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Fun-loving, bright, and active"},
		{ID: 10, Species: "dog", Breed: "Dachshund", Aliases: []string{"wiener dog"}, AdultMinKg: 7, AdultMaxKg: 15, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Clever, lively, and courageous"},
		{ID: 11, Species: "dog", Breed: "Siberian Husky", Aliases: []string{"husky"}, AdultMinKg: 16, AdultMaxKg: 27, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Loyal, mischievous, and outgoing"},
		{ID: 12, Species: "dog", Breed: "Chihuahua", Aliases: nil, AdultMinKg: 1.5, AdultMaxKg: 3, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Charming, graceful, and sassy"},
		{ID: 13, Species: "dog", Breed: "Pomeranian", Aliases: []string{"pom"}, AdultMinKg: 1.9, AdultMaxKg: 3.5, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Inquisitive, bold, and lively"},
		{ID: 14, Species: "dog", Breed: "Shih Tzu", Aliases: nil, AdultMinKg: 4, AdultMaxKg: 7.2, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Affectionate, playful, and outgoing"},
		{ID: 15, Species: "dog", Breed: "Border Collie", Aliases: []string{"collie"}, AdultMinKg: 14, AdultMaxKg: 20, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Affectionate, smart, and energetic"},
		{ID: 16, Species: "cat", Breed: "Persian", Aliases: []string{"persian cat"}, AdultMinKg: 3, AdultMaxKg: 5.5, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Sweet, gentle, and calm"},
		{ID: 17, Species: "cat", Breed: "Maine Coon", Aliases: []string{"maine coon cat"}, AdultMinKg: 5, AdultMaxKg: 11, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Gentle, friendly, and sociable"},
		{ID: 18, Species: "cat", Breed: "Siamese", Aliases: []string{"siamese cat"}, AdultMinKg: 2.5, AdultMaxKg: 4.5, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Social, intelligent, and vocal"},
		{ID: 19, Species: "cat", Breed: "Ragdoll", Aliases: []string{"ragdoll cat"}, AdultMinKg: 4.5, AdultMaxKg: 9, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Docile, calm, and affectionate"},
		{ID: 20, Species: "cat", Breed: "British Shorthair", Aliases: []string{"british cat"}, AdultMinKg: 3.5, AdultMaxKg: 7, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Easygoing, calm, and loyal"},
		{ID: 21, Species: "cat", Breed: "Bengal", Aliases: []string{"bengal cat"}, AdultMinKg: 4, AdultMaxKg: 7, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Confident, active, and curious"},
		{ID: 22, Species: "cat", Breed: "Sphynx", Aliases: []string{"hairless cat"}, AdultMinKg: 3, AdultMaxKg: 5, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Loyal, social, and playful"},
		{ID: 23, Species: "cat", Breed: "Scottish Fold", Aliases: nil, AdultMinKg: 2.7, AdultMaxKg: 6, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Sweet, calm, and adaptable"},
		{ID: 24, Species: "cat", Breed: "Abyssinian", Aliases: []string{"abyssinian cat"}, AdultMinKg: 3.5, AdultMaxKg: 5.5, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Active, social, and intelligent"},
		{ID: 25, Species: "cat", Breed: "Russian Blue", Aliases: nil, AdultMinKg: 3, AdultMaxKg: 5.5, UnderweightThreshold: 0.85, OverweightThreshold: 1.15, Description: "Gentle, quiet, and reserved"},
	}
}

func seedBMICategories() []BMICategory {
	return []BMICategory{
		{
			ID:             1,
			Name:           "Underweight",
			MinBMI:         0,
			MaxBMI:         18.4,
			Description:    "Below normal weight range",
			Recommendation: "Consider consulting a healthcare provider about healthy weight gain strategies. Focus on nutrient-dense foods and strength training.",
			ColorCode:      "#3b82f6",
		},
		{
			ID:             2,
			Name:           "Normal",
			MinBMI:         18.5,
			MaxBMI:         24.9,
			Description:    "Healthy weight range",
			Recommendation: "You're in a healthy weight range. Maintain your current lifestyle with balanced nutrition and regular physical activity.",
			ColorCode:      "#10b981",
		},
		{
			ID:             3,
			Name:           "Overweight",
			MinBMI:         25,
			MaxBMI:         29.9,
			Description:    "Above normal weight range",
			Recommendation: "Consider moderate lifestyle changes for optimal health. Focus on balanced nutrition and increased physical activity.",
			ColorCode:      "#f59e0b",
		},
		{
			ID:             4,
			Name:           "Obese",
			MinBMI:         30,
			MaxBMI:         999,
			Description:    "Significantly above normal weight range",
			Recommendation: "Consulting a healthcare provider is recommended for personalized guidance on weight management and health optimization.",
			ColorCode:      "#ef4444",
		},
	}
}
