package pagination_test

import (
	"net/http/httptest"
	"testing"

	"fuelpass/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, url string) *pagination.Params {
	t.Helper()

	var params *pagination.Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		params = pagination.GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return params
}

func TestGetParamsDefaults(t *testing.T) {
	params := paramsFor(t, "/")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)
	assert.Equal(t, "created_at", params.SortBy)
	assert.Equal(t, "desc", params.SortDir)
}

func TestGetParamsClampsLimit(t *testing.T) {
	params := paramsFor(t, "/?limit=5000")
	assert.Equal(t, pagination.MaxLimit, params.Limit)

	params = paramsFor(t, "/?limit=-1")
	assert.Equal(t, pagination.DefaultLimit, params.Limit)
}

func TestGetParamsOffset(t *testing.T) {
	params := paramsFor(t, "/?page=3&limit=10")
	assert.Equal(t, 20, params.Offset)
}

func TestGetParamsSortDirSanitized(t *testing.T) {
	params := paramsFor(t, "/?sort_dir=ASC")
	assert.Equal(t, "asc", params.SortDir)

	params = paramsFor(t, "/?sort_dir=sideways")
	assert.Equal(t, "desc", params.SortDir)
}

func TestGetMeta(t *testing.T) {
	meta := pagination.GetMeta(&pagination.Params{Page: 2, Limit: 10}, 25)

	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = pagination.GetMeta(&pagination.Params{Page: 1, Limit: 10}, 5)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
