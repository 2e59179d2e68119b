// Package seed holds the built-in recipe collection shown whenever the store
// cannot supply published recipes.
package seed

import (
	"recipe_journal/internal/domain/models"
)

// Recipes returns a fresh copy of the fallback collection. Callers may mutate it.
func Recipes() []models.Recipe {
	out := make([]models.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Clone()
	}
	return out
}

// Recipe looks up one fallback recipe by id.
func Recipe(id string) (models.Recipe, bool) {
	for _, r := range recipes {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return models.Recipe{}, false
}

// IsSeedID reports whether id belongs to the fallback collection.
func IsSeedID(id string) bool {
	_, ok := Recipe(id)
	return ok
}

var recipes = []models.Recipe{
	{
		ContentItem: models.ContentItem{
			ID:          "1",
			Title:       "Classic Margherita Pizza",
			Description: "A timeless Italian classic with fresh basil, mozzarella, and tomato sauce on a perfectly crispy crust.",
			Category:    "Italian",
			Tags:        []string{"pizza", "italian", "vegetarian"},
			ImageURL:    "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=800&q=80",
			MediaURLs:   []string{},
			Published:   true,
		},
		Ingredients: []string{
			"2 cups all-purpose flour",
			"1 tsp active dry yeast",
			"1 tsp salt",
			"3/4 cup warm water",
			"2 tbsp olive oil",
			"1/2 cup pizza sauce",
			"8 oz fresh mozzarella, sliced",
			"Fresh basil leaves",
			"Salt and pepper to taste",
		},
		Instructions: []string{
			"In a large bowl, combine flour, yeast, and salt.",
			"Add warm water and olive oil, mix until a dough forms.",
			"Knead the dough on a floured surface for 8-10 minutes until smooth.",
			"Place in an oiled bowl, cover, and let rise for 1 hour.",
			"Preheat oven to 475°F (245°C).",
			"Roll out dough on a floured surface to desired thickness.",
			"Transfer to a pizza stone or baking sheet.",
			"Spread pizza sauce evenly over the dough.",
			"Add mozzarella slices and season with salt and pepper.",
			"Bake for 12-15 minutes until crust is golden and cheese is bubbly.",
			"Remove from oven and top with fresh basil leaves.",
			"Let cool for 2-3 minutes before slicing and serving.",
		},
		PrepTime:   15,
		CookTime:   15,
		Servings:   4,
		Difficulty: models.DifficultyMedium,
	},
	{
		ContentItem: models.ContentItem{
			ID:          "2",
			Title:       "Creamy Mushroom Risotto",
			Description: "Rich and creamy Arborio rice cooked with wild mushrooms and finished with Parmesan cheese.",
			Category:    "Italian",
			Tags:        []string{"risotto", "mushroom", "vegetarian"},
			ImageURL:    "https://images.unsplash.com/photo-1476124369491-e7addf5db371?w=800&q=80",
			MediaURLs:   []string{},
			Published:   true,
		},
		Ingredients: []string{
			"1 1/2 cups Arborio rice",
			"4-5 cups warm chicken or vegetable broth",
			"1 lb mixed mushrooms, sliced",
			"1 medium onion, finely chopped",
			"3 cloves garlic, minced",
			"1/2 cup dry white wine",
			"1/2 cup grated Parmesan cheese",
			"3 tbsp butter",
			"2 tbsp olive oil",
			"Salt and pepper to taste",
			"Fresh parsley for garnish",
		},
		Instructions: []string{
			"Heat olive oil in a large pan and sauté mushrooms until golden. Set aside.",
			"In the same pan, melt 1 tbsp butter and sauté onion until translucent.",
			"Add garlic and cook for 1 minute.",
			"Add Arborio rice and stir for 2 minutes until lightly toasted.",
			"Pour in white wine and stir until absorbed.",
			"Add warm broth one ladle at a time, stirring constantly.",
			"Continue adding broth and stirring for 18-20 minutes until rice is creamy.",
			"Stir in cooked mushrooms, remaining butter, and Parmesan cheese.",
			"Season with salt and pepper.",
			"Serve immediately garnished with fresh parsley.",
		},
		PrepTime:   10,
		CookTime:   35,
		Servings:   4,
		Difficulty: models.DifficultyMedium,
	},
	{
		ContentItem: models.ContentItem{
			ID:          "3",
			Title:       "Chocolate Lava Cake",
			Description: "Decadent individual chocolate cakes with a molten center, served warm with vanilla ice cream.",
			Category:    "Dessert",
			Tags:        []string{"chocolate", "dessert", "quick"},
			ImageURL:    "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?w=800&q=80",
			MediaURLs:   []string{},
			Published:   true,
		},
		Ingredients: []string{
			"4 oz dark chocolate, chopped",
			"4 tbsp unsalted butter",
			"2 large eggs",
			"2 tbsp granulated sugar",
			"Pinch of salt",
			"2 tbsp all-purpose flour",
			"Butter for ramekins",
			"Cocoa powder for dusting",
			"Vanilla ice cream for serving",
		},
		Instructions: []string{
			"Preheat oven to 425°F (220°C).",
			"Butter two 6-oz ramekins and dust with cocoa powder.",
			"Melt chocolate and butter in a double boiler until smooth.",
			"In a bowl, whisk eggs, sugar, and salt until thick.",
			"Stir in the melted chocolate mixture.",
			"Fold in flour until just combined.",
			"Divide batter between prepared ramekins.",
			"Bake for 10-12 minutes until edges are firm but center jiggles.",
			"Let cool for 1 minute, then run a knife around edges.",
			"Invert onto serving plates and serve immediately with ice cream.",
		},
		PrepTime:   15,
		CookTime:   10,
		Servings:   2,
		Difficulty: models.DifficultyEasy,
	},
	{
		ContentItem: models.ContentItem{
			ID:          "4",
			Title:       "Fresh Garden Salad",
			Description: "Crisp mixed greens with seasonal vegetables, cherry tomatoes, and homemade vinaigrette.",
			Category:    "Healthy",
			Tags:        []string{"salad", "healthy", "vegetarian"},
			ImageURL:    "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=800&q=80",
			MediaURLs:   []string{},
			Published:   true,
		},
		Ingredients: []string{
			"4 cups mixed greens (lettuce, spinach, arugula)",
			"1 cup cherry tomatoes, halved",
			"1 cucumber, sliced",
			"1/2 red onion, thinly sliced",
			"1/4 cup olive oil",
			"2 tbsp balsamic vinegar",
			"1 tsp Dijon mustard",
			"Salt and pepper to taste",
			"1/4 cup crumbled feta cheese (optional)",
		},
		Instructions: []string{
			"Wash and dry all greens thoroughly.",
			"In a large bowl, combine mixed greens, cherry tomatoes, cucumber, and red onion.",
			"In a small bowl, whisk together olive oil, balsamic vinegar, and Dijon mustard.",
			"Season dressing with salt and pepper.",
			"Drizzle dressing over salad and toss gently.",
			"Top with crumbled feta cheese if desired.",
			"Serve immediately.",
		},
		PrepTime:   15,
		CookTime:   0,
		Servings:   2,
		Difficulty: models.DifficultyEasy,
	},
	{
		ContentItem: models.ContentItem{
			ID:          "5",
			Title:       "Beef Bourguignon",
			Description: "Traditional French braised beef in red wine with pearl onions, mushrooms, and herbs.",
			Category:    "French",
			Tags:        []string{"beef", "french", "wine"},
			ImageURL:    "https://images.unsplash.com/photo-1574484284002-952d92456975?w=800&q=80",
			MediaURLs:   []string{},
			Published:   true,
		},
		Ingredients: []string{
			"3 lbs beef chuck, cut into 2-inch pieces",
			"6 slices bacon, chopped",
			"1 large onion, sliced",
			"2 carrots, sliced",
			"2 cloves garlic, minced",
			"3 tbsp tomato paste",
			"1 bottle red wine (Burgundy preferred)",
			"2 cups beef broth",
			"2 bay leaves",
			"Fresh thyme sprigs",
			"1 lb pearl onions",
			"1 lb mushrooms, quartered",
			"3 tbsp butter",
			"3 tbsp flour",
			"Salt and pepper to taste",
		},
		Instructions: []string{
			"Preheat oven to 325°F (165°C).",
			"Cook bacon in a large Dutch oven until crispy. Remove and set aside.",
			"Season beef with salt and pepper, then brown in bacon fat.",
			"Remove beef and sauté onions and carrots until softened.",
			"Add garlic and tomato paste, cook for 1 minute.",
			"Return beef and bacon to pot, add wine, broth, bay leaves, and thyme.",
			"Bring to a simmer, cover, and braise in oven for 2 hours.",
			"Meanwhile, sauté pearl onions and mushrooms in butter until golden.",
			"Add vegetables to the pot and continue cooking for 30 minutes.",
			"Mix flour with a little wine to make a slurry, stir into stew to thicken.",
			"Adjust seasoning and serve hot.",
		},
		PrepTime:   30,
		CookTime:   150,
		Servings:   6,
		Difficulty: models.DifficultyHard,
	},
	{
		ContentItem: models.ContentItem{
			ID:          "6",
			Title:       "Lemon Herb Salmon",
			Description: "Pan-seared salmon fillet with fresh herbs, lemon, and a light butter sauce.",
			Category:    "Seafood",
			Tags:        []string{"salmon", "seafood", "healthy"},
			ImageURL:    "https://images.unsplash.com/photo-1467003909585-2f8a72700288?w=800&q=80",
			MediaURLs:   []string{},
			Published:   true,
		},
		Ingredients: []string{
			"2 salmon fillets (6 oz each)",
			"2 tbsp olive oil",
			"2 tbsp butter",
			"2 cloves garlic, minced",
			"1 lemon (juiced and zested)",
			"2 tbsp fresh dill, chopped",
			"2 tbsp fresh parsley, chopped",
			"Salt and pepper to taste",
			"Lemon wedges for serving",
		},
		Instructions: []string{
			"Season salmon fillets with salt and pepper.",
			"Heat olive oil in a large skillet over medium-high heat.",
			"Cook salmon skin-side up for 4-5 minutes until golden.",
			"Flip and cook for another 3-4 minutes.",
			"Remove salmon and keep warm.",
			"Add butter and garlic to the same pan, cook for 30 seconds.",
			"Add lemon juice, zest, dill, and parsley.",
			"Return salmon to pan and spoon sauce over fillets.",
			"Serve immediately with lemon wedges.",
		},
		PrepTime:   10,
		CookTime:   10,
		Servings:   2,
		Difficulty: models.DifficultyEasy,
	},
}
