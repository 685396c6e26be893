package reference

import (
	"context"
	"errors"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("reference not found")

// Data is a full snapshot of the reference tables.
type Data struct {
	Foods         []FoodNutrition
	Carriers      []ShippingCarrier
	Breeds        []BreedReference
	BMICategories []BMICategory
}

// Store is the read-only view of the reference tables used by the calculators.
// Every method returns rows in table order: foods by name, carriers by name
// then service, breeds by species then breed, BMI bands by lower bound.
type Store interface {
	Foods(ctx context.Context) ([]FoodNutrition, error)
	Carriers(ctx context.Context) ([]ShippingCarrier, error)
	Breeds(ctx context.Context) ([]BreedReference, error)
	BMICategories(ctx context.Context) ([]BMICategory, error)
}

// BreedsForSpecies narrows breeds to one species, case-insensitively.
func BreedsForSpecies(breeds []BreedReference, species string) []BreedReference {
	species = strings.ToLower(strings.TrimSpace(species))
	if species == "" {
		return nil
	}
	out := make([]BreedReference, 0, len(breeds))
	for _, b := range breeds {
		if strings.ToLower(b.Species) == species {
			out = append(out, b)
		}
	}
	return out
}

func sortData(d *Data) {
	sort.SliceStable(d.Foods, func(i, j int) bool {
		return d.Foods[i].Name < d.Foods[j].Name
	})
	sort.SliceStable(d.Carriers, func(i, j int) bool {
		if d.Carriers[i].Name != d.Carriers[j].Name {
			return d.Carriers[i].Name < d.Carriers[j].Name
		}
		return d.Carriers[i].ServiceType < d.Carriers[j].ServiceType
	})
	sort.SliceStable(d.Breeds, func(i, j int) bool {
		if d.Breeds[i].Species != d.Breeds[j].Species {
			return d.Breeds[i].Species < d.Breeds[j].Species
		}
		return d.Breeds[i].Breed < d.Breeds[j].Breed
	})
	sort.SliceStable(d.BMICategories, func(i, j int) bool {
		return d.BMICategories[i].MinBMI < d.BMICategories[j].MinBMI
	})
}
