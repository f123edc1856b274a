package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogs     *services.BlogsClient
}

func newBlogHandler(blogs *services.BlogsClient) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogs:     blogs,
	}
}

// listBlogs returns one page of blog posts
// @Summary List blog posts
// @Tags Blogs
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Items to skip" default(0)
// @Param search query string false "Substring of title or short description"
// @Param status query string false "featured, published or draft"
// @Success 200 {object} models.BlogPage
// @Failure 500 {object} ErrorResponse
// @Router /api/blogs [get]
func (h blogHandler) listBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)
		q := r.URL.Query()
		if limit <= 0 {
			limit = models.DefaultPageLimit
		}

		page, err := h.blogs.GetAll(r.Context(), services.BlogListOptions{
			Search: q.Get("search"),
			Status: models.ParseBlogStatus(q.Get("status")),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("fetch", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, page)
	}
}

// @Router /api/blogs/{id} [get]
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := h.blogs.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("fetch", "blog", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, blog)
	}
}

// @Router /api/blogs/slug/{slug} [get]
func (h blogHandler) getBlogBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := h.blogs.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("fetch", "blog", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, blog)
	}
}

// createBlog creates a new blog post
// @Summary Create blog post
// @Description published defaults to true. Sections of an unknown type are stored as sent.
// @Tags Blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blog body models.BlogInput true "Blog post"
// @Success 201 {object} models.Blog
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse
// @Router /api/blogs [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.BlogInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogs.Create(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("create", "blog", err))
			return
		}

		h.logger.Info().Str("actor", ctxGetActor(r.Context())).Str("blogID", blog.ID).Msg("Created blog")
		h.responder.WriteJSON(w, http.StatusCreated, blog)
	}
}

// @Router /api/blogs/{id} [put]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.BlogPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogs.Update(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("update", "blog", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, blog)
	}
}

// @Router /api/blogs/{id} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := h.blogs.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapStoreError("delete", "blog", err))
			return
		}

		h.logger.Info().Str("actor", ctxGetActor(r.Context())).Str("blogID", id).Msg("Deleted blog")
		w.WriteHeader(http.StatusNoContent)
	}
}
