package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"
	"github.com/allisson/shepatra/internal/recipe/http/dto"
	"github.com/allisson/shepatra/internal/recipe/usecase/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestHandler(t *testing.T) (*RecipeHandler, *mocks.MockRecipeUseCase) {
	t.Helper()

	mockUseCase := &mocks.MockRecipeUseCase{}
	t.Cleanup(func() {
		mockUseCase.AssertExpectations(t)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRecipeHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		bodyReader = strings.NewReader(b)
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func recipeFixture(name string, layers ...recipeDomain.Algorithm) *recipeDomain.NamedRecipe {
	return &recipeDomain.NamedRecipe{Name: name, Recipe: recipeDomain.Recipe{Layers: layers}}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRecipeHandler_ListAlgorithmsHandler(t *testing.T) {
	handler, _ := setupTestHandler(t)
	c, w := createTestContext(http.MethodGet, "/v1/algorithms", nil)

	handler.ListAlgorithmsHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.ListAlgorithmsResponse](t, w)
	names := make([]string, 0, len(resp.Data))
	for _, alg := range resp.Data {
		names = append(names, alg.Name)
	}
	assert.Equal(t, recipeDomain.AlgorithmNames(), names)
}

func TestRecipeHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		expected := recipeFixture("web", recipeDomain.SHA256, recipeDomain.BLAKE3)
		mockUseCase.On("Create", mock.Anything, "web", expected.Recipe).Return(expected, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/recipes", dto.CreateRecipeRequest{
			Name:   "web",
			Layers: []string{"SHA-256", "BLAKE3"},
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decode[dto.RecipeResponse](t, w)
		assert.Equal(t, "web", resp.Name)
		assert.Equal(t, []string{"SHA-256", "Blake3"}, resp.Layers)
		assert.NotEmpty(t, resp.Fingerprint)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/recipes", "{invalid")
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", decode[map[string]any](t, w)["error"])
	})

	t.Run("Error_UnknownAlgorithm", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/recipes", dto.CreateRecipeRequest{
			Name:   "web",
			Layers: []string{"MD5"},
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decode[map[string]any](t, w)
		assert.Equal(t, "validation_error", body["error"])
		assert.Contains(t, body["message"], "MD5")
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/recipes", dto.CreateRecipeRequest{Name: "  "})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Conflict", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Create", mock.Anything, "web", mock.Anything).
			Return(nil, recipeDomain.ErrRecipeAlreadyExists).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/recipes", dto.CreateRecipeRequest{Name: "web"})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decode[map[string]any](t, w)["error"])
	})
}

func TestRecipeHandler_ReplaceHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		expected := recipeFixture("web", recipeDomain.SHA512)
		mockUseCase.On("Replace", mock.Anything, "web", expected.Recipe).Return(expected, nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/recipes/web", dto.ReplaceRecipeRequest{
			Layers: []string{"SHA512"},
		})
		c.Params = gin.Params{{Key: "name", Value: "web"}}
		handler.ReplaceHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"SHA-512"}, decode[dto.RecipeResponse](t, w).Layers)
	})

	t.Run("Error_InvalidName", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Replace", mock.Anything, " web", mock.Anything).
			Return(nil, recipeDomain.ErrInvalidRecipeName).
			Once()

		c, w := createTestContext(http.MethodPut, "/v1/recipes/%20web", dto.ReplaceRecipeRequest{})
		c.Params = gin.Params{{Key: "name", Value: " web"}}
		handler.ReplaceHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "invalid_input", decode[map[string]any](t, w)["error"])
	})
}

func TestRecipeHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Get", mock.Anything, "web").Return(recipeFixture("web", recipeDomain.SHA3_256), nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/recipes/web", nil)
		c.Params = gin.Params{{Key: "name", Value: "web"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"SHA3-256"}, decode[dto.RecipeResponse](t, w).Layers)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Get", mock.Anything, "missing").Return(nil, recipeDomain.ErrRecipeNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/recipes/missing", nil)
		c.Params = gin.Params{{Key: "name", Value: "missing"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRecipeHandler_ListHandler(t *testing.T) {
	recipes := []*recipeDomain.NamedRecipe{
		recipeFixture("a", recipeDomain.SHA256),
		recipeFixture("b"),
		recipeFixture("c", recipeDomain.BLAKE3),
	}

	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("List", mock.Anything).Return(recipes, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/recipes", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[dto.ListRecipesResponse](t, w).Data, 3)
	})

	t.Run("Success_Paginated", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("List", mock.Anything).Return(recipes, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/recipes?offset=1&limit=1", nil)
		handler.ListHandler(c)

		resp := decode[dto.ListRecipesResponse](t, w)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "b", resp.Data[0].Name)
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/recipes?limit=1000", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Store", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("List", mock.Anything).Return(nil, errors.New("bucket gone")).Once()

		c, w := createTestContext(http.MethodGet, "/v1/recipes", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRecipeHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Delete", mock.Anything, "web").Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/recipes/web", nil)
		c.Params = gin.Params{{Key: "name", Value: "web"}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Delete", mock.Anything, "missing").Return(recipeDomain.ErrRecipeNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/recipes/missing", nil)
		c.Params = gin.Params{{Key: "name", Value: "missing"}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRecipeHandler_HashHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Hash", mock.Anything, "web", "a").Return("ca97", nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/recipes/web/hash", dto.HashRequest{Input: "a"})
		c.Params = gin.Params{{Key: "name", Value: "web"}}
		handler.HashHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"recipe":"web","digest":"ca97"}`, w.Body.String())
	})

	t.Run("Success_Trace", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		trace := []recipeDomain.LayerResult{
			{Index: 0, Algorithm: recipeDomain.SHA256, Output: "aa"},
			{Index: 1, Algorithm: recipeDomain.BLAKE3, Output: "bb"},
		}
		mockUseCase.On("Trace", mock.Anything, "web", "a").Return(trace, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/recipes/web/hash", dto.HashRequest{Input: "a", Trace: true})
		c.Params = gin.Params{{Key: "name", Value: "web"}}
		handler.HashHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.HashResponse](t, w)
		assert.Equal(t, "bb", resp.Digest)
		require.Len(t, resp.Layers, 2)
		assert.Equal(t, "Blake3", resp.Layers[1].Algorithm)
	})

	t.Run("Error_InputTooLong", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/recipes/web/hash", dto.HashRequest{
			Input: strings.Repeat("x", recipeDomain.MaxInputSize+1),
		})
		c.Params = gin.Params{{Key: "name", Value: "web"}}
		handler.HashHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_RecipeNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Hash", mock.Anything, "missing", "a").Return("", recipeDomain.ErrRecipeNotFound).Once()

		c, w := createTestContext(http.MethodPost, "/v1/recipes/missing/hash", dto.HashRequest{Input: "a"})
		c.Params = gin.Params{{Key: "name", Value: "missing"}}
		handler.HashHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_UnknownStoredAlgorithm", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Hash", mock.Anything, "legacy", "a").
			Return("", &recipeDomain.UnknownAlgorithmError{Name: "MD5", Recipe: "legacy"}).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/recipes/legacy/hash", dto.HashRequest{Input: "a"})
		c.Params = gin.Params{{Key: "name", Value: "legacy"}}
		handler.HashHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `unknown algorithm \"MD5\" in recipe \"legacy\"`)
	})
}
