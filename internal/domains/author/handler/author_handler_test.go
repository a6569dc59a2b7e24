package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared"
	"library-backend/internal/shared/apperror"
)

// stubAuthorService records the filter/request it received and returns canned
// results, so the tests pin down the handler's parsing and status mapping.
type stubAuthorService struct {
	author     *model.Author
	authors    []model.Author
	total      int64
	err        error
	gotFilter  model.AuthorFilter
	gotRequest *model.UpdateAuthorRequest
}

func (s *stubAuthorService) Create(_ context.Context, _ *model.CreateAuthorRequest) (*model.Author, error) {
	return s.author, s.err
}

func (s *stubAuthorService) GetByID(_ context.Context, _ uuid.UUID) (*model.Author, error) {
	return s.author, s.err
}

func (s *stubAuthorService) List(_ context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	s.gotFilter = filter
	if err := shared.ValidatePageWindow(filter.Limit, filter.Offset); err != nil {
		return nil, 0, err
	}
	return s.authors, s.total, s.err
}

func (s *stubAuthorService) Search(_ context.Context, query string, filter model.AuthorFilter) ([]model.Author, int64, error) {
	filter.Search = query
	return s.List(context.Background(), filter)
}

func (s *stubAuthorService) Update(_ context.Context, _ uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	s.gotRequest = req
	return s.author, s.err
}

func (s *stubAuthorService) SoftDelete(_ context.Context, _ uuid.UUID) error { return s.err }

func (s *stubAuthorService) Restore(_ context.Context, _ uuid.UUID) (*model.Author, error) {
	return s.author, s.err
}

func (s *stubAuthorService) HardDelete(_ context.Context, _ uuid.UUID) error { return s.err }

func (s *stubAuthorService) Exists(_ context.Context, _ uuid.UUID) (bool, error) {
	return s.author != nil, s.err
}

func (s *stubAuthorService) Stats(_ context.Context) (*model.AuthorStats, error) {
	return &model.AuthorStats{Total: s.total}, s.err
}

func newTestRouter(svc *stubAuthorService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthorHandler(svc)
	r := gin.New()
	r.POST("/authors", h.Create)
	r.GET("/authors", h.List)
	r.GET("/authors/:id", h.GetByID)
	r.PATCH("/authors/:id", h.Update)
	r.DELETE("/authors/:id", h.Delete)
	return r
}

func doRequest(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthorHandlerCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubAuthorService{author: &model.Author{ID: uuid.New(), Name: "New Author"}}
		w := doRequest(newTestRouter(svc), http.MethodPost, "/authors", []byte(`{"name":"New Author"}`))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("malformed json is bad request", func(t *testing.T) {
		svc := &stubAuthorService{}
		w := doRequest(newTestRouter(svc), http.MethodPost, "/authors", []byte(`{"name":`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		svc := &stubAuthorService{err: model.ErrEmailTaken}
		w := doRequest(newTestRouter(svc), http.MethodPost, "/authors", []byte(`{"name":"Dup Author"}`))
		assert.Equal(t, http.StatusConflict, w.Code)

		var body struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "CONFLICT", body.Error.Code)
	})
}

func TestAuthorHandlerGetByID(t *testing.T) {
	t.Run("bad uuid is 400", func(t *testing.T) {
		svc := &stubAuthorService{}
		w := doRequest(newTestRouter(svc), http.MethodGet, "/authors/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found is 404", func(t *testing.T) {
		svc := &stubAuthorService{err: model.ErrAuthorNotFound}
		w := doRequest(newTestRouter(svc), http.MethodGet, "/authors/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorHandlerList(t *testing.T) {
	t.Run("defaults applied when params absent", func(t *testing.T) {
		svc := &stubAuthorService{}
		w := doRequest(newTestRouter(svc), http.MethodGet, "/authors", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, shared.DefaultLimit, svc.gotFilter.Limit)
		assert.Equal(t, 0, svc.gotFilter.Offset)
	})

	t.Run("explicit out-of-range limit is 400, not clamped", func(t *testing.T) {
		svc := &stubAuthorService{}
		w := doRequest(newTestRouter(svc), http.MethodGet, "/authors?limit=500", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric limit is 400", func(t *testing.T) {
		svc := &stubAuthorService{}
		w := doRequest(newTestRouter(svc), http.MethodGet, "/authors?limit=lots", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("meta carries total", func(t *testing.T) {
		svc := &stubAuthorService{
			authors: []model.Author{{ID: uuid.New(), Name: "Only Author"}},
			total:   42,
		}
		w := doRequest(newTestRouter(svc), http.MethodGet, "/authors?limit=1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Meta struct {
				Total int64 `json:"total"`
				Limit int   `json:"limit"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 42, body.Meta.Total)
		assert.Equal(t, 1, body.Meta.Limit)
	})
}

func TestAuthorHandlerUpdate(t *testing.T) {
	id := uuid.New()

	t.Run("absent and null fields reach the service distinctly", func(t *testing.T) {
		svc := &stubAuthorService{author: &model.Author{ID: id, Name: "Someone"}}
		w := doRequest(newTestRouter(svc), http.MethodPatch, "/authors/"+id.String(),
			[]byte(`{"name":"Someone","email":null}`))
		assert.Equal(t, http.StatusOK, w.Code)

		require.NotNil(t, svc.gotRequest)
		assert.False(t, svc.gotRequest.Bio.Set, "absent field stays unset")
		assert.True(t, svc.gotRequest.Email.Set)
		assert.False(t, svc.gotRequest.Email.Valid, "null field is set but invalid")
	})

	t.Run("validation error maps to 400 with field", func(t *testing.T) {
		svc := &stubAuthorService{err: apperror.ValidationField("name", "name must be 2-100 characters")}
		w := doRequest(newTestRouter(svc), http.MethodPatch, "/authors/"+id.String(), []byte(`{"name":"x"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Error struct {
				Field string `json:"field"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "name", body.Error.Field)
	})
}

func TestAuthorHandlerDelete(t *testing.T) {
	t.Run("no content on success", func(t *testing.T) {
		svc := &stubAuthorService{}
		w := doRequest(newTestRouter(svc), http.MethodDelete, "/authors/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		svc := &stubAuthorService{err: model.ErrAuthorNotFound}
		w := doRequest(newTestRouter(svc), http.MethodDelete, "/authors/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
