// Package seed populates the dimension tables with the demo fixture set.
package seed

import (
	"context"
	"fmt"

	"github.com/Bojom/Warehouse/internal/model"
	"github.com/Bojom/Warehouse/internal/repository"

	"github.com/rs/zerolog/log"
)

// Repositories are the tables written by Run.
type Repositories struct {
	Brands    repository.LookupRepository[model.Brand]
	Models    repository.DeviceModelRepository
	PartTypes repository.LookupRepository[model.PartType]
	Colours   repository.LookupRepository[model.Colour]
}

type modelFixture struct {
	name, code, brand string
}

var (
	brandFixtures = []model.Brand{
		{Name: "Apple", Code: "AP"},
		{Name: "Samsung", Code: "SS"},
		{Name: "Google", Code: "GG"},
	}
	modelFixtures = []modelFixture{
		{"iPhone 16 Pro Max", "16PM", "Apple"},
		{"iPhone 16 Pro", "16P", "Apple"},
		{"iPhone 15", "15", "Apple"},
		{"Galaxy S25 Ultra", "S25U", "Samsung"},
		{"Galaxy Z Fold 6", "ZF6", "Samsung"},
		{"Pixel 9 Pro", "P9P", "Google"},
	}
	partTypeFixtures = []model.PartType{
		{Name: "Screen", Code: "SCR"},
		{Name: "Battery", Code: "BAT"},
		{Name: "Camera", Code: "CAM"},
		{Name: "Back Cover", Code: "BC"},
	}
	colourFixtures = []model.Colour{
		{Name: "Black", Code: "BLK"},
		{Name: "White", Code: "WHT"},
		{Name: "Blue", Code: "BLU"},
		{Name: "Titanium", Code: "TTN"},
	}
)

// Run inserts brands, models, part types and colours in that order. It stops
// at the first failing stage; rows written by earlier stages are kept.
func Run(ctx context.Context, repos Repositories) error {
	brands := append([]model.Brand(nil), brandFixtures...)
	if err := repos.Brands.CreateMany(ctx, brands); err != nil {
		return fmt.Errorf("seed brands: %w", err)
	}
	log.Info().Int("count", len(brands)).Msg("brands seeded")

	brandIDs := make(map[string]int64, len(brands))
	for _, b := range brands {
		brandIDs[b.Name] = b.ID
	}
	models := make([]model.DeviceModel, 0, len(modelFixtures))
	for _, f := range modelFixtures {
		id, ok := brandIDs[f.brand]
		if !ok || id == 0 {
			return fmt.Errorf("seed models: no id for brand %q", f.brand)
		}
		models = append(models, model.DeviceModel{Name: f.name, Code: f.code, BrandID: id})
	}
	if err := repos.Models.CreateMany(ctx, models); err != nil {
		return fmt.Errorf("seed models: %w", err)
	}
	log.Info().Int("count", len(models)).Msg("models seeded")

	partTypes := append([]model.PartType(nil), partTypeFixtures...)
	if err := repos.PartTypes.CreateMany(ctx, partTypes); err != nil {
		return fmt.Errorf("seed part types: %w", err)
	}
	log.Info().Int("count", len(partTypes)).Msg("part types seeded")

	colours := append([]model.Colour(nil), colourFixtures...)
	if err := repos.Colours.CreateMany(ctx, colours); err != nil {
		return fmt.Errorf("seed colours: %w", err)
	}
	log.Info().Int("count", len(colours)).Msg("colours seeded")

	log.Info().Msg("dimension data seeded")
	return nil
}
