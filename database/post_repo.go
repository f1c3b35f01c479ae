package database

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rpupo63/blog-cms-backend/errs"
	"github.com/rpupo63/blog-cms-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// Post ids are millisecond timestamps rendered as text. The guard keeps them
// strictly increasing, so two posts created within the same millisecond (or
// on the same day) still order deterministically by id.
var (
	idMu   sync.Mutex
	lastID int64
)

func newPostID() string {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}

// FindAll returns all posts ordered by created_at descending, ties broken by
// id descending so the later-created post surfaces first. Ids are numeric
// text of varying width (seed rows are short, created rows are millisecond
// stamps), so the tie-break orders by length before text to get a numeric
// comparison.
func (r *PostRepo) FindAll() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Order("created_at DESC, length(id) DESC, id DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

// FindByID returns the post with the given id, or nil when no such row exists.
func (r *PostRepo) FindByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	post.Normalize()
	return &post, nil
}

// Create validates and inserts a new post. Title and content are required;
// every other field takes its documented default. The new id and both date
// stamps are assigned here.
func (r *PostRepo) Create(draft models.PostDraft) (*models.Post, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(draft.Content) == "" {
		return nil, errs.NewMissingRequiredFieldError("content")
	}

	today := models.Today()
	post := models.Post{
		ID:        newPostID(),
		Title:     draft.Title,
		Summary:   draft.Summary,
		Content:   draft.Content,
		Category:  draft.Category,
		Tags:      datatypes.NewJSONSlice(draft.Tags),
		Section:   models.Section(draft.Section),
		CreatedAt: today,
		UpdatedAt: today,
	}
	post.Normalize()

	if err := r.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update overwrites the stored values for each field present in the patch;
// absent fields keep their current value. UpdatedAt is refreshed regardless
// of which fields changed. Returns nil (no error) when the id is unknown.
func (r *PostRepo) Update(id string, patch models.PostPatch) (*models.Post, error) {
	post, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, errs.NewMissingRequiredFieldError("title")
		}
		post.Title = *patch.Title
	}
	if patch.Summary != nil {
		post.Summary = *patch.Summary
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, errs.NewMissingRequiredFieldError("content")
		}
		post.Content = *patch.Content
	}
	if patch.Category != nil {
		post.Category = *patch.Category
	}
	if patch.Tags != nil {
		post.Tags = datatypes.NewJSONSlice(*patch.Tags)
	}
	// An empty section string counts as absent, mirroring the admin form
	// leaving the selector untouched.
	if patch.Section != nil && *patch.Section != "" {
		post.Section = models.Section(*patch.Section)
	}

	post.UpdatedAt = models.Today()
	post.Normalize()

	if err := r.db.Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post if present and reports whether a row was actually
// removed. Deleting an unknown id is not an error.
func (r *PostRepo) Delete(id string) (bool, error) {
	res := r.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
