package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.ProjectsClient
}

func newProjectHandler(projects *services.ProjectsClient) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// listProjects returns one page of projects
// @Summary List projects
// @Description Newest first. total counts every match, not just the page.
// @Tags Projects
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Items to skip" default(0)
// @Param search query string false "Substring of title or description"
// @Param category query string false "Exact category"
// @Success 200 {object} models.ProjectPage
// @Failure 500 {object} ErrorResponse
// @Router /api/projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := pagination(r)
		q := r.URL.Query()

		page, err := h.projects.GetAll(r.Context(), services.ProjectListOptions{
			Search:        q.Get("search"),
			Category:      q.Get("category"),
			ExactCategory: true,
			Limit:         limit,
			Offset:        offset,
		})
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("fetch", "projects", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, page)
	}
}

// getProject
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projects.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("fetch", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

// @Router /api/projects/slug/{slug} [get]
func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projects.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("fetch", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description The slug is derived from the title when omitted.
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body models.ProjectInput true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.ProjectInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Create(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("create", "project", err))
			return
		}

		h.logger.Info().Str("actor", ctxGetActor(r.Context())).Str("projectID", project.ID).Msg("Created project")
		h.responder.WriteJSON(w, http.StatusCreated, project)
	}
}

// updateProject applies a partial update
// @Summary Update project
// @Description Only the fields present in the body change.
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param project body models.ProjectPatch true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/projects/{id} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.ProjectPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Update(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			h.responder.WriteError(w, wrapStoreError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, project)
	}
}

// deleteProject
// @Summary Delete project
// @Tags Projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 204
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 500 {object} ErrorResponse
// @Router /api/projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := h.projects.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapStoreError("delete", "project", err))
			return
		}

		h.logger.Info().Str("actor", ctxGetActor(r.Context())).Str("projectID", id).Msg("Deleted project")
		w.WriteHeader(http.StatusNoContent)
	}
}
