package service

import (
	"context"
	"testing"
	"time"

	"github.com/Bojom/Warehouse/internal/infra"
	"github.com/Bojom/Warehouse/internal/seed"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dtoLookup(name, code string) dto.CreateLookupRequest {
	return dto.CreateLookupRequest{Name: name, Code: code}
}

func TestDimension_ListsSeeRowsWrittenOutsideService(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := infra.NewCache(rdb, 5*time.Minute)

	f := newDimensionFixture()
	f.svc = NewDimensionService(f.brands, f.models, f.partTypes, f.colours, cache)
	ctx := context.Background()

	brands, err := f.svc.ListBrands(ctx)
	require.NoError(t, err)
	assert.Empty(t, brands)
	models, err := f.svc.ListModels(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, models)

	require.NoError(t, seed.Run(ctx, seed.Repositories{
		Brands:    f.brands,
		Models:    f.models,
		PartTypes: f.partTypes,
		Colours:   f.colours,
	}))

	brands, err = f.svc.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 3)
	assert.Equal(t, "Apple", brands[0].Name)

	models, err = f.svc.ListModels(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, models, 6)

	partTypes, err := f.svc.ListPartTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, partTypes, 4)
	colours, err := f.svc.ListColours(ctx)
	require.NoError(t, err)
	assert.Len(t, colours, 4)
}

func TestDimension_ListReadsThroughWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	f := newDimensionFixture()
	f.svc = NewDimensionService(f.brands, f.models, f.partTypes, f.colours, infra.NewCache(rdb, time.Minute))
	ctx := context.Background()

	_, err := f.svc.CreateBrand(ctx, dtoLookup("Apple", "AP"))
	require.NoError(t, err)
	mr.Close()

	// Bump fails and is only logged; the next write and list still reflect the table.
	require.NoError(t, f.svc.DeleteBrand(ctx, 1))
	brands, err := f.svc.ListBrands(ctx)
	require.NoError(t, err)
	assert.Empty(t, brands)
}
