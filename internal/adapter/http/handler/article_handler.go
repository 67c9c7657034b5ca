package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgiordano/pymebooks/internal/adapter/http/dto"
	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// ArticleService defines the behavior needed by ArticleHandler.
type ArticleService interface {
	CreateArticle(ctx context.Context, input usecase.CreateArticleInput) (*domain.Article, error)
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	UpdateArticle(ctx context.Context, id string, input usecase.UpdateArticleInput) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	ListArticles(ctx context.Context, limit, offset int) ([]*domain.Article, error)
}

// ArticleHandler handles catalog HTTP requests.
type ArticleHandler struct {
	articleUC ArticleService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleUC ArticleService) *ArticleHandler {
	return &ArticleHandler{articleUC: articleUC}
}

// Create adds an article to the catalog.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	article, err := h.articleUC.CreateArticle(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create article", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ArticleFromDomain(article))
}

// Get retrieves an article by ID.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := h.articleUC.GetArticle(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get article", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ArticleFromDomain(article))
}

// Update applies a partial update to an article.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	article, err := h.articleUC.UpdateArticle(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update article", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ArticleFromDomain(article))
}

// Delete removes an article from the catalog.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.articleUC.DeleteArticle(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete article", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists catalog articles.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	articles, err := h.articleUC.ListArticles(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list articles", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ArticlesFromDomain(articles)))
}
