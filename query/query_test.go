package query

import (
	"fmt"
	"testing"

	"github.com/rpupo63/blog-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func post(id, title, summary, category string, tags []string, section models.Section, created string) models.Post {
	p := models.Post{
		ID:        id,
		Title:     title,
		Summary:   summary,
		Content:   "body",
		Category:  category,
		Tags:      datatypes.NewJSONSlice(tags),
		Section:   section,
		CreatedAt: created,
		UpdatedAt: created,
	}
	p.Normalize()
	return p
}

func samplePosts() []models.Post {
	return []models.Post{
		post("1", "React 筆記", "前端學習", "學習紀錄", []string{"React", "JavaScript"}, models.SectionBlog, "2024-01-31"),
		post("2", "交易檢討", "本週操作", "交易心得", []string{"交易"}, models.SectionTrading, "2024-02-01"),
		post("3", "個人網站", "作品介紹", "作品", []string{"網站", "React"}, models.SectionWork, "2024-01-10"),
		post("4", "Go 筆記", "", "學習紀錄", nil, models.SectionBlog, "2024-03-15"),
	}
}

func TestSectionFilterPartition(t *testing.T) {
	posts := samplePosts()

	total := 0
	for _, section := range []models.Section{models.SectionBlog, models.SectionWork, models.SectionTrading} {
		res := Apply(posts, Options{Section: section})
		for _, p := range res.Posts {
			assert.Equal(t, section, p.Section)
		}
		total += res.Total
	}

	// The three section subsets are disjoint and exhaustive.
	assert.Equal(t, len(posts), total)
}

func TestCategoryFilter(t *testing.T) {
	posts := samplePosts()

	res := Apply(posts, Options{Category: "學習紀錄"})
	assert.Equal(t, 2, res.Total)

	// The sentinel imposes no constraint.
	res = Apply(posts, Options{Category: AllFilter})
	assert.Equal(t, len(posts), res.Total)
}

func TestTagFilter(t *testing.T) {
	posts := samplePosts()

	res := Apply(posts, Options{Tag: "React"})
	require.Equal(t, 2, res.Total)
	for _, p := range res.Posts {
		assert.Contains(t, []string(p.Tags), "React")
	}

	res = Apply(posts, Options{Tag: AllFilter})
	assert.Equal(t, len(posts), res.Total)
}

func TestCategoryOptionsDerivedInInsertionOrder(t *testing.T) {
	posts := samplePosts()

	options := CategoryOptions(posts)
	assert.Equal(t, []string{AllFilter, "學習紀錄", "交易心得", "作品"}, options)
}

func TestTagOptionsFlattenedAndDeduplicated(t *testing.T) {
	posts := samplePosts()

	options := TagOptions(posts)
	assert.Equal(t, []string{AllFilter, "React", "JavaScript", "交易", "網站"}, options)
}

func TestSearchCaseInsensitive(t *testing.T) {
	posts := samplePosts()

	res := Apply(posts, Options{Search: "react"})
	assert.Equal(t, 1, res.Total)

	// Search also covers the summary.
	res = Apply(posts, Options{Search: "本週"})
	assert.Equal(t, 1, res.Total)

	res = Apply(posts, Options{Search: ""})
	assert.Equal(t, len(posts), res.Total)
}

func TestDateRangeEndInclusiveAtDayGranularity(t *testing.T) {
	posts := []models.Post{
		post("1", "in range", "", "", nil, models.SectionBlog, "2024-01-31"),
		post("2", "past end", "", "", nil, models.SectionBlog, "2024-02-01"),
		post("3", "before start", "", "", nil, models.SectionBlog, "2023-12-31"),
	}

	res := Apply(posts, Options{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "1", res.Posts[0].ID)
}

func TestDateRangeUnparseableBoundsImposeNoConstraint(t *testing.T) {
	posts := samplePosts()

	res := Apply(posts, Options{StartDate: "not-a-date", EndDate: ""})
	assert.Equal(t, len(posts), res.Total)
}

func TestUnparseablePostDateTreatedAsOldest(t *testing.T) {
	posts := []models.Post{
		post("1", "good", "", "", nil, models.SectionBlog, "2024-01-05"),
		post("2", "bad date", "", "", nil, models.SectionBlog, "soon"),
	}

	// Timestamp 0 falls before any modern start bound.
	res := Apply(posts, Options{StartDate: "2000-01-01"})
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "1", res.Posts[0].ID)

	// And sorts to the oldest end.
	res = Apply(posts, Options{Sort: OrderAsc})
	assert.Equal(t, "2", res.Posts[0].ID)
}

func TestSortOrder(t *testing.T) {
	posts := samplePosts()

	res := Apply(posts, Options{})
	require.Equal(t, 4, res.Total)
	assert.Equal(t, "4", res.Posts[0].ID) // 2024-03-15, default descending

	res = Apply(posts, Options{Sort: OrderAsc})
	assert.Equal(t, "3", res.Posts[0].ID) // 2024-01-10
}

func TestPagination(t *testing.T) {
	var posts []models.Post
	for i := 0; i < 25; i++ {
		posts = append(posts, post(
			fmt.Sprintf("%d", i+1), fmt.Sprintf("post %d", i+1), "", "", nil,
			models.SectionBlog, "2024-01-15",
		))
	}

	res := Apply(posts, Options{Page: 1})
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Posts, PageSize)

	res = Apply(posts, Options{Page: 3})
	assert.Len(t, res.Posts, 5)

	// Out-of-range pages clamp to the valid window.
	res = Apply(posts, Options{Page: 0})
	assert.Equal(t, 1, res.Page)

	res = Apply(posts, Options{Page: 99})
	assert.Equal(t, 3, res.Page)
	assert.Len(t, res.Posts, 5)
}

func TestPaginationEmptyList(t *testing.T) {
	res := Apply(nil, Options{Page: 5})
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 1, res.TotalPages)
	assert.Equal(t, 1, res.Page)
	assert.Empty(t, res.Posts)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	posts := samplePosts()
	first := posts[0].ID

	Apply(posts, Options{Sort: OrderAsc})
	assert.Equal(t, first, posts[0].ID)
}

func TestGroupByMonth(t *testing.T) {
	posts := []models.Post{
		post("1", "a", "", "", nil, models.SectionBlog, "2024-03-20"),
		post("2", "b", "", "", nil, models.SectionBlog, "2024-03-01"),
		post("3", "c", "", "", nil, models.SectionBlog, "2024-02-10"),
		post("4", "d", "", "", nil, models.SectionBlog, "not-a-date"),
	}

	groups := GroupByMonth(posts)
	require.Len(t, groups, 3)

	assert.Equal(t, "2024-03", groups[0].Month)
	assert.Len(t, groups[0].Posts, 2)
	assert.Equal(t, "2024-02", groups[1].Month)
	assert.Len(t, groups[1].Posts, 1)
	assert.Equal(t, UnclassifiedGroup, groups[2].Month)
	assert.Len(t, groups[2].Posts, 1)
}
