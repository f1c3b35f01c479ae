package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/blog-cms-backend/database"
	"github.com/rpupo63/blog-cms-backend/errs"
	"github.com/rpupo63/blog-cms-backend/models"
	"github.com/rpupo63/blog-cms-backend/query"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	postRepo  *database.PostRepo
}

func newPostHandler(postRepo *database.PostRepo) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		postRepo:  postRepo,
	}
}

// listViewOptions reads the optional view parameters off a list request.
// A bare request carries no constraint and returns the full ordered list.
func listViewOptions(r *http.Request) (query.Options, bool) {
	q := r.URL.Query()
	opts := query.Options{
		Section:   models.Section(q.Get("section")),
		Category:  q.Get("category"),
		Tag:       q.Get("tag"),
		Search:    q.Get("search"),
		StartDate: q.Get("from"),
		EndDate:   q.Get("to"),
		Sort:      query.Order(q.Get("sort")),
	}
	page, _ := strconv.Atoi(q.Get("page"))
	opts.Page = page

	hasView := opts.Section != "" || opts.Category != "" || opts.Tag != "" ||
		opts.Search != "" || opts.StartDate != "" || opts.EndDate != "" ||
		opts.Sort != "" || q.Get("page") != ""
	return opts, hasView
}

// listPosts returns all posts ordered newest first. With view parameters
// (section, category, tag, search, from, to, sort, page) the query engine
// narrows the list server-side; the response stays a plain array either way.
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.postRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}
		if posts == nil {
			posts = []models.Post{}
		}

		if opts, hasView := listViewOptions(r); hasView {
			result := query.Apply(posts, opts)
			h.responder.WriteJSON(w, result.Posts)
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getPost returns a single post by id, or 404 when no such post exists.
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")
		if postID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing postID"))
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}

		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// createPost validates and stores a new post. Title and content are required
// and checked before any store call.
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.PostDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("post", err))
			return
		}

		if strings.TrimSpace(draft.Title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if strings.TrimSpace(draft.Content) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		post, err := h.postRepo.Create(draft)
		if err != nil {
			h.responder.WriteError(w, passOrWrap(err, "create post", "post"))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// updatePost overwrites the supplied fields of an existing post. The admin
// editor always submits title and content, so both are required here even
// though the store itself accepts partial patches.
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")
		if postID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing postID"))
			return
		}

		var patch models.PostPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("post", err))
			return
		}

		if patch.Title == nil || strings.TrimSpace(*patch.Title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if patch.Content == nil || strings.TrimSpace(*patch.Content) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		post, err := h.postRepo.Update(postID, patch)
		if err != nil {
			h.responder.WriteError(w, passOrWrap(err, "update post", "post"))
			return
		}

		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deletePost removes a post by id. Success is a 204 with no body; an unknown
// id maps to 404.
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "postID")
		if postID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing postID"))
			return
		}

		removed, err := h.postRepo.Delete(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete post", "post", err))
			return
		}

		if !removed {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
