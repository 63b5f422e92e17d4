package store_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sadi-dev/skillhub/backend/internal/apperr"
	"github.com/sadi-dev/skillhub/backend/internal/models"
	"github.com/sadi-dev/skillhub/backend/internal/query"
	"github.com/sadi-dev/skillhub/backend/internal/store"
)

var testDB *gorm.DB

// startPostgres isolates the container bootstrap: testcontainers panics
// instead of returning an error when no Docker host can be resolved, and
// that must still land on the skip path below.
func startPostgres(ctx context.Context) (container *tcpostgres.PostgresContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("skillhub_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := startPostgres(ctx)
	if err != nil {
		log.Printf("skipping store tests: postgres container unavailable: %v", err)
		os.Exit(0)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("container connection string: %v", err)
	}

	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("open test database: %v", err)
	}

	err = testDB.AutoMigrate(
		&models.User{},
		&models.ContentTopic{},
		&models.Content{},
		&models.ContentVote{},
		&models.Project{},
		&models.ProjectResponse{},
	)
	if err != nil {
		log.Fatalf("migrate test database: %v", err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(t *testing.T, fullName string, score int64) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.NewString(),
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		FullName: fullName,
		Role:     models.RoleUser,
		Score:    score,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func newTopic(t *testing.T) *models.ContentTopic {
	t.Helper()
	topic := &models.ContentTopic{ID: uuid.NewString(), Description: "test topic"}
	require.NoError(t, testDB.Create(topic).Error)
	return topic
}

func newContent(t *testing.T, author *models.User, topic *models.ContentTopic, title string) *models.Content {
	t.Helper()
	content := &models.Content{
		UserID:     author.ID,
		TopicID:    topic.ID,
		Title:      title,
		CoverPhoto: "cover.png",
		Summary:    "summary",
		Body:       "body",
	}
	require.NoError(t, testDB.Create(content).Error)
	return content
}

func reloadContent(t *testing.T, id uuid.UUID) *models.Content {
	t.Helper()
	var content models.Content
	require.NoError(t, testDB.First(&content, "id = ?", id).Error)
	return &content
}

func voteRows(t *testing.T, contentID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, testDB.Model(&models.ContentVote{}).
		Where("content_id = ?", contentID).Count(&n).Error)
	return n
}

// resetUsers clears the whole population for tests that rank over all users.
// Tests in this package run sequentially, so this is safe.
func resetUsers(t *testing.T) {
	t.Helper()
	require.NoError(t, testDB.Exec("TRUNCATE TABLE users CASCADE").Error)
}

func TestToggleVote_Scenario(t *testing.T) {
	author := newUser(t, "Author", 0)
	v1 := newUser(t, "Voter One", 0)
	v2 := newUser(t, "Voter Two", 0)
	content := newContent(t, author, newTopic(t), "toggle scenario")

	delta, err := store.ToggleVote(testDB, content.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, store.VoteApplied, delta)
	assert.Equal(t, 1, reloadContent(t, content.ID).UpvoteCount)

	delta, err = store.ToggleVote(testDB, content.ID, v2.ID)
	require.NoError(t, err)
	assert.Equal(t, store.VoteApplied, delta)
	assert.Equal(t, 2, reloadContent(t, content.ID).UpvoteCount)

	delta, err = store.ToggleVote(testDB, content.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, store.VoteRevoked, delta)
	assert.Equal(t, 1, reloadContent(t, content.ID).UpvoteCount)

	assert.EqualValues(t, 1, voteRows(t, content.ID), "counter must equal vote rows")
}

func TestToggleVote_DoubleToggleIdempotent(t *testing.T) {
	author := newUser(t, "Author", 0)
	voter := newUser(t, "Voter", 0)
	content := newContent(t, author, newTopic(t), "double toggle")

	delta, err := store.ToggleVote(testDB, content.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, store.VoteApplied, delta)

	delta, err = store.ToggleVote(testDB, content.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, store.VoteRevoked, delta)

	assert.Equal(t, 0, reloadContent(t, content.ID).UpvoteCount)
	assert.EqualValues(t, 0, voteRows(t, content.ID))
}

func TestToggleVote_ContentNotFound(t *testing.T) {
	voter := newUser(t, "Voter", 0)

	_, err := store.ToggleVote(testDB, uuid.New(), voter.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestToggleVote_ConcurrentDistinctVoters(t *testing.T) {
	author := newUser(t, "Author", 0)
	content := newContent(t, author, newTopic(t), "concurrent votes")

	const voters = 8
	ids := make([]string, voters)
	for i := range ids {
		ids[i] = newUser(t, fmt.Sprintf("Voter %d", i), 0).ID
	}

	var wg sync.WaitGroup
	errs := make([]error, voters)
	for i, voterID := range ids {
		wg.Add(1)
		go func(i int, voterID string) {
			defer wg.Done()
			_, errs[i] = store.ToggleVote(testDB, content.ID, voterID)
		}(i, voterID)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "voter %d", i)
	}
	assert.Equal(t, voters, reloadContent(t, content.ID).UpvoteCount,
		"no increment may be lost under concurrency")
	assert.EqualValues(t, voters, voteRows(t, content.ID))
}

func TestCreateTopic_DuplicateIsConflict(t *testing.T) {
	topic := newTopic(t)

	dup := &models.ContentTopic{ID: topic.ID, Description: "second claim on the same id"}
	err := store.CreateTopic(testDB, dup)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var n int64
	require.NoError(t, testDB.Model(&models.ContentTopic{}).
		Where("id = ?", topic.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n, "the losing create must not overwrite or duplicate")
}

func TestListContents_ConjunctiveFilters(t *testing.T) {
	topic := newTopic(t)
	authorA := newUser(t, "Alice Ahmed", 0)
	authorB := newUser(t, "Bob Baker", 0)
	match := newContent(t, authorA, topic, "My Foo Guide")
	newContent(t, authorA, topic, "Bar Notes")
	newContent(t, authorB, topic, "Another foo thing")

	spec, err := query.ContentCriteria{AuthorID: authorA.ID, Title: "FOO"}.Compose()
	require.NoError(t, err)

	page, err := store.ListContents(testDB, spec, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1, "filters combine with AND")
	assert.Equal(t, match.ID, page.Items[0].ID)
	assert.EqualValues(t, 1, page.TotalCount)
}

func TestListContents_AuthorNameFilter(t *testing.T) {
	topic := newTopic(t)
	author := newUser(t, "Zulfikar Rahman", 0)
	content := newContent(t, author, topic, "name filter target")

	spec, err := query.ContentCriteria{AuthorName: "zulfikar"}.Compose()
	require.NoError(t, err)

	page, err := store.ListContents(testDB, spec, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, content.ID, page.Items[0].ID)
	assert.Equal(t, "Zulfikar Rahman", page.Items[0].AuthorName)
}

func TestListContents_VotedByViewer(t *testing.T) {
	topic := newTopic(t)
	author := newUser(t, "Author", 0)
	viewer := newUser(t, "Viewer", 0)
	voted := newContent(t, author, topic, "viewer voted here")
	skipped := newContent(t, author, topic, "viewer skipped this")

	_, err := store.ToggleVote(testDB, voted.ID, viewer.ID)
	require.NoError(t, err)

	spec, err := query.ContentCriteria{AuthorID: author.ID}.Compose()
	require.NoError(t, err)

	page, err := store.ListContents(testDB, spec, viewer.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	byID := map[uuid.UUID]*uuid.UUID{}
	for _, item := range page.Items {
		byID[item.ID] = item.VoteByUser
	}
	assert.NotNil(t, byID[voted.ID], "voted row carries the vote id")
	assert.Nil(t, byID[skipped.ID], "unvoted row stays null")

	// Anonymous viewers never see a vote id.
	anon, err := store.ListContents(testDB, spec, "", 0, 10)
	require.NoError(t, err)
	for _, item := range anon.Items {
		assert.Nil(t, item.VoteByUser)
	}
}

func TestListContents_CountInvariantUnderPaging(t *testing.T) {
	topic := newTopic(t)
	author := newUser(t, "Paging Author", 0)
	for i := 0; i < 5; i++ {
		newContent(t, author, topic, fmt.Sprintf("paged %d", i))
	}

	spec, err := query.ContentCriteria{AuthorID: author.ID}.Compose()
	require.NoError(t, err)

	seen := map[uuid.UUID]bool{}
	total := 0
	for p := 0; p < 3; p++ {
		page, err := store.ListContents(testDB, spec, "", p, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 5, page.TotalCount, "count must not depend on page/size")
		for _, item := range page.Items {
			assert.False(t, seen[item.ID], "pages must not overlap")
			seen[item.ID] = true
		}
		total += len(page.Items)
	}
	assert.Equal(t, 5, total, "page sizes must sum to the total count")
}

func TestListContents_StableOrderOnTies(t *testing.T) {
	topic := newTopic(t)
	author := newUser(t, "Tie Author", 0)
	for i := 0; i < 4; i++ {
		newContent(t, author, topic, fmt.Sprintf("tied %d", i))
	}

	// All rows tie on upvote_count, so ordering falls through to the id
	// tie-break and pagination stays stable across requests.
	spec, err := query.ContentCriteria{AuthorID: author.ID}.Compose()
	require.NoError(t, err)

	page, err := store.ListContents(testDB, spec, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	assert.True(t, sort.SliceIsSorted(page.Items, func(i, j int) bool {
		return bytes.Compare(page.Items[i].ID[:], page.Items[j].ID[:]) < 0
	}), "ties must be ordered by id")
}

func TestGetContent_WithViewerVote(t *testing.T) {
	topic := newTopic(t)
	author := newUser(t, "Author", 0)
	viewer := newUser(t, "Viewer", 0)
	content := newContent(t, author, topic, "full fetch")

	_, err := store.ToggleVote(testDB, content.ID, viewer.ID)
	require.NoError(t, err)

	full, err := store.GetContent(testDB, content.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, content.ID, full.ID)
	assert.Equal(t, "body", full.Body)
	assert.NotNil(t, full.VoteByUser)
	assert.Equal(t, 1, full.UpvoteCount)

	_, err = store.GetContent(testDB, uuid.New(), viewer.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteContent_CascadesVotes(t *testing.T) {
	topic := newTopic(t)
	author := newUser(t, "Author", 0)
	voter := newUser(t, "Voter", 0)
	content := newContent(t, author, topic, "cascade target")

	_, err := store.ToggleVote(testDB, content.ID, voter.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, voteRows(t, content.ID))

	require.NoError(t, testDB.Delete(&models.Content{}, "id = ?", content.ID).Error)
	assert.EqualValues(t, 0, voteRows(t, content.ID), "votes must not outlive their content")
}

func TestRankOf_DenseRank(t *testing.T) {
	resetUsers(t)
	scores := []int64{100, 100, 90, 80, 80}
	wantRanks := []int64{1, 1, 2, 3, 3}

	users := make([]*models.User, len(scores))
	for i, s := range scores {
		users[i] = newUser(t, fmt.Sprintf("Ranked %d", i), s)
	}

	for i, u := range users {
		rank, err := store.RankOf(testDB, u.ID)
		require.NoError(t, err)
		assert.Equal(t, wantRanks[i], rank, "score %d", scores[i])
	}
}

func TestRankOf_UnknownUser(t *testing.T) {
	_, err := store.RankOf(testDB, "no-such-user")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLeaderboard_DenseRankAndStablePaging(t *testing.T) {
	resetUsers(t)
	scores := []int64{50, 40, 40, 30}
	for i, s := range scores {
		newUser(t, fmt.Sprintf("Board %d", i), s)
	}

	page0, err := store.Leaderboard(testDB, 0, 2)
	require.NoError(t, err)
	page1, err := store.Leaderboard(testDB, 1, 2)
	require.NoError(t, err)

	assert.EqualValues(t, 4, page0.TotalCount)
	assert.EqualValues(t, 4, page1.TotalCount)
	require.Len(t, page0.Items, 2)
	require.Len(t, page1.Items, 2)

	seen := map[string]bool{}
	var all []models.LeaderboardEntry
	for _, entry := range append(page0.Items, page1.Items...) {
		assert.False(t, seen[entry.ID], "pages must not overlap")
		seen[entry.ID] = true
		all = append(all, entry)
	}

	assert.Equal(t, []int64{50, 40, 40, 30}, scoresOf(all))
	assert.Equal(t, []int64{1, 2, 2, 3}, ranksOf(all), "ranks are dense over the whole population")

	// The page ranks agree with single-user lookups.
	for _, entry := range all {
		rank, err := store.RankOf(testDB, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.Rank, rank)
	}
}

func scoresOf(entries []models.LeaderboardEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func ranksOf(entries []models.LeaderboardEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}

func TestListProjects_FilterAndPrioritySort(t *testing.T) {
	author := newUser(t, "Project Author", 0)
	low := &models.Project{UserID: author.ID, Title: "low paid", Body: "b", Type: models.ProjectTypePaid, Priority: 1}
	high := &models.Project{UserID: author.ID, Title: "high paid", Body: "b", Type: models.ProjectTypePaid, Priority: 9}
	free := &models.Project{UserID: author.ID, Title: "free one", Body: "b", Type: models.ProjectTypeFree, Priority: 5}
	for _, p := range []*models.Project{low, high, free} {
		require.NoError(t, testDB.Create(p).Error)
	}

	spec, err := query.ProjectCriteria{AuthorID: author.ID, Type: models.ProjectTypePaid}.Compose()
	require.NoError(t, err)

	page, err := store.ListProjects(testDB, spec, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, high.ID, page.Items[0].ID, "default order is priority descending")
	assert.Equal(t, low.ID, page.Items[1].ID)
	assert.EqualValues(t, 2, page.TotalCount)
}

func TestListProjectResponses_VerifiedFilter(t *testing.T) {
	owner := newUser(t, "Owner", 0)
	responder := newUser(t, "Responder", 0)
	project := &models.Project{UserID: owner.ID, Title: "p", Body: "b", Type: models.ProjectTypeFree}
	require.NoError(t, testDB.Create(project).Error)

	verified := &models.ProjectResponse{UserID: responder.ID, ProjectID: project.ID, Body: "done", Verified: true}
	pending := &models.ProjectResponse{UserID: responder.ID, ProjectID: project.ID, Body: "wip"}
	require.NoError(t, testDB.Create(verified).Error)
	require.NoError(t, testDB.Create(pending).Error)

	wantVerified := true
	page, err := store.ListProjectResponses(testDB, project.ID, &wantVerified, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, verified.ID, page.Items[0].ID)

	all, err := store.ListProjectResponses(testDB, project.ID, nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.TotalCount)
}
