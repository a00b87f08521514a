package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/foxxcyber/recipe-box/internal/config"
	"github.com/foxxcyber/recipe-box/internal/models"
	"github.com/foxxcyber/recipe-box/internal/store"
)

func main() {
	// Command line flags
	dryRun := flag.Bool("dry-run", false, "Preview recipes without writing any files")
	dir := flag.String("dir", "", "Recipe folder to seed (defaults to RECIPES_DIR)")
	localFile := flag.String("file", "", "Seed from a JSON file of recipes instead of the built-in samples")
	flag.Parse()

	// Load .env
	godotenv.Load()

	// Load config
	cfg := config.Load()
	if *dir == "" {
		*dir = cfg.RecipesDir
	}

	// Collect recipes to seed
	recipes := sampleRecipes()
	if *localFile != "" {
		loaded, err := loadRecipeFile(*localFile)
		if err != nil {
			log.Fatalf("Failed to load recipe file: %v", err)
		}
		recipes = loaded
		log.Printf("Loaded %d recipe(s) from %s", len(recipes), *localFile)
	}

	if *dryRun {
		log.Println("DRY RUN - No files will be written")
		printPreview(recipes)
		return
	}

	// Open the recipe folder
	s, err := store.Open(*dir)
	if err != nil {
		log.Fatalf("Failed to open recipe folder: %v", err)
	}

	// Write recipes, skipping names that already exist
	existing := existingNames(s)
	created, skipped := 0, 0
	for i := range recipes {
		if existing[recipes[i].Name] {
			skipped++
			continue
		}
		if _, err := s.CreateRecipe(&recipes[i]); err != nil {
			log.Fatalf("Failed to create %q: %v", recipes[i].Name, err)
		}
		created++
	}

	log.Printf("Seed complete: %d new recipe(s), %d skipped, folder %s", created, skipped, s.Dir())
}

// loadRecipeFile reads a JSON array of create-recipe payloads
func loadRecipeFile(path string) ([]models.CreateRecipeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var recipes []models.CreateRecipeRequest
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("invalid recipe file: %w", err)
	}
	return recipes, nil
}

// existingNames indexes current recipe names so seeding is idempotent
func existingNames(s *store.Store) map[string]bool {
	names := make(map[string]bool)
	summaries, _ := s.ListRecipes(&models.RecipeListParams{Limit: 10000})
	for _, summary := range summaries {
		names[summary.Name] = true
	}
	return names
}

// printPreview shows the recipes that would be written
func printPreview(recipes []models.CreateRecipeRequest) {
	fmt.Printf("\n=== Preview of recipes to seed ===\n")
	fmt.Printf("Total: %d recipes\n\n", len(recipes))
	for _, r := range recipes {
		fmt.Printf("  %s - %d ingredient(s), %d step(s)\n", r.Name, len(r.Ingredients), len(r.Instructions))
	}
}

// sampleRecipes is a small starter set so a fresh install has something
// to build a shopping list from
func sampleRecipes() []models.CreateRecipeRequest {
	return []models.CreateRecipeRequest{
		{
			Name:        "Buttermilk Pancakes",
			Description: "Fluffy weekend pancakes",
			Ingredients: []string{
				"2 cups flour",
				"2 tbsp sugar",
				"2 eggs",
				"1.5 cups buttermilk",
				"0.25 cup butter",
			},
			Instructions: []string{
				"Whisk the dry ingredients together",
				"Beat in the eggs and buttermilk",
				"Cook on a buttered griddle until bubbles form, then flip",
			},
			Servings:    4,
			PrepMinutes: 10,
			CookMinutes: 15,
			Tags:        []string{"breakfast"},
		},
		{
			Name:        "Weeknight Stir Fry",
			Description: "Whatever vegetables are in the fridge, over rice",
			Ingredients: []string{
				"1 lb chicken",
				"2 cups broccoli",
				"1 onion",
				"3 cloves garlic, minced",
				"2 tbsp soy sauce",
				"1 cup rice",
			},
			Instructions: []string{
				"Start the rice",
				"Sear the chicken in a hot wok",
				"Add vegetables and garlic, then the soy sauce",
				"Serve over rice",
			},
			Servings:    3,
			PrepMinutes: 15,
			CookMinutes: 15,
			Tags:        []string{"dinner", "quick"},
		},
		{
			Name:        "Chocolate Chip Cookies",
			Description: "Crisp edges, chewy middles",
			Ingredients: []string{
				"2.25 cups flour",
				"1 cup butter",
				"0.75 cup sugar",
				"0.75 cup brown sugar",
				"2 eggs",
				"1 tsp vanilla",
				"2 cups chocolate chips",
			},
			Instructions: []string{
				"Cream the butter and sugars",
				"Beat in eggs and vanilla",
				"Fold in flour and chocolate chips",
				"Bake at 375F for 10 minutes",
			},
			Servings:    24,
			PrepMinutes: 20,
			CookMinutes: 10,
			Tags:        []string{"dessert", "baking"},
		},
	}
}
