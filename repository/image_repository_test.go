package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FireFly4ik/db-kr-1/database"
	"github.com/FireFly4ik/db-kr-1/media"
	"github.com/FireFly4ik/db-kr-1/models"
)

// seedHierarchy creates one experiment with one run, so image tests can refer
// to run 1 under experiment 1.
func seedHierarchy(t *testing.T, deps *testDeps) {
	t.Helper()
	require.NoError(t, deps.experiments.Create("E1", nil))
	require.NoError(t, deps.runs.Create(1, float64Ptr(0.95), boolPtr(false)))
}

type testDeps struct {
	experiments *ExperimentRepository
	runs        *RunRepository
	images      *ImageRepository
}

func newDeps(t *testing.T) *testDeps {
	db := newTestDB(t)
	return &testDeps{
		experiments: NewExperimentRepository(db),
		runs:        NewRunRepository(db),
		images:      NewImageRepository(db),
	}
}

func TestImageCreateUnknownRun(t *testing.T) {
	deps := newDeps(t)

	err := deps.images.Create(5, "/a/b.png", models.AttackTypeNoAttack, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Run with id=5 not found")
}

func TestImageCreateRejectsDuplicatePath(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Create(1, "/a/b.png", models.AttackTypeNoAttack, nil, nil, nil))
	assert.Error(t, deps.images.Create(1, "/a/b.png", models.AttackTypeBlur, nil, nil, nil))
}

func TestImageCreateDefaultsAddedDateToWholeSeconds(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Create(1, "/a/b.png", models.AttackTypeNoAttack, nil, nil, nil))

	img, err := deps.images.GetByPath("/a/b.png")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Zero(t, img.AddedDate.Nanosecond())
}

func TestImageScenarioCreateAndListFiltered(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Create(1, "/a/b.png", models.AttackTypeNoAttack, nil, nil, models.Coordinates{10, 20, 30, 40}))

	rows, err := deps.images.ListFiltered(ImageFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ExperimentID)
	assert.Equal(t, "/a/b.png", rows[0].FilePath)
	assert.Equal(t, models.Coordinates{10, 20, 30, 40}, rows[0].Coordinates)
}

func TestImageListFilteredOrdering(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	paths := []string{"/d/one.png", "/d/two.png", "/d/three.png"}
	for _, p := range paths {
		require.NoError(t, deps.images.Create(1, p, models.AttackTypeNoAttack, nil, nil, nil))
	}

	desc := database.SortIDDesc
	rows, err := deps.images.ListFiltered(ImageFilters{SortID: &desc})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].ID > rows[1].ID && rows[1].ID > rows[2].ID, "expected strictly decreasing ids")

	asc := database.SortIDAsc
	rows, err = deps.images.ListFiltered(ImageFilters{SortID: &asc})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].ID < rows[1].ID && rows[1].ID < rows[2].ID, "expected strictly increasing ids")

	// absent sort_id also means ascending
	rows, err = deps.images.ListFiltered(ImageFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].ID < rows[1].ID && rows[1].ID < rows[2].ID)
}

func TestImageListFilteredSuffixIsLiteral(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Create(1, "/data/run1/img_001.png", models.AttackTypeNoAttack, nil, nil, nil))
	require.NoError(t, deps.images.Create(1, "/data/run1/img_001.pngx", models.AttackTypeNoAttack, nil, nil, nil))
	require.NoError(t, deps.images.Create(1, "/data/run1/img_002.PNG", models.AttackTypeNoAttack, nil, nil, nil))

	suffix := ".png"
	rows, err := deps.images.ListFiltered(ImageFilters{FileType: &suffix})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "/data/run1/img_001.png", rows[0].FilePath)
}

func TestImageListFilteredByAttackType(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Create(1, "/a/clean.png", models.AttackTypeNoAttack, nil, nil, nil))
	require.NoError(t, deps.images.Create(1, "/a/adv.png", models.AttackTypeAdversarial, nil, nil, nil))

	at := models.AttackTypeAdversarial
	rows, err := deps.images.ListFiltered(ImageFilters{AttackType: &at})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "/a/adv.png", rows[0].FilePath)
}

func TestImageListFilteredNaturalPathOrder(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Create(1, "/d/img_10.png", models.AttackTypeNoAttack, nil, nil, nil))
	require.NoError(t, deps.images.Create(1, "/d/img_2.png", models.AttackTypeNoAttack, nil, nil, nil))

	nat := database.SortPathNatural
	rows, err := deps.images.ListFiltered(ImageFilters{SortPath: &nat})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "/d/img_2.png", rows[0].FilePath)
	assert.Equal(t, "/d/img_10.png", rows[1].FilePath)
}

func TestImageUpdate(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)
	require.NoError(t, deps.runs.Create(1, nil, nil)) // run 2

	require.NoError(t, deps.images.Create(1, "/a/b.png", models.AttackTypeNoAttack, nil, nil, nil))
	require.NoError(t, deps.images.Update(1, 2, models.AttackTypeNoise))

	img, err := deps.images.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, int64(2), img.RunID)
	assert.Equal(t, models.AttackTypeNoise, img.AttackType)
}

func TestImageUpdateMissingIsNoOp(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Update(404, 1, models.AttackTypeBlur))

	all, err := deps.images.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImageUpdateMetadata(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Create(1, "/a/b.png", models.AttackTypeNoAttack, nil, nil, nil))

	w, h := 640, 480
	require.NoError(t, deps.images.UpdateMetadata(1, &media.Metadata{Width: &w, Height: &h}))

	img, err := deps.images.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, img)
	require.NotNil(t, img.Width)
	assert.Equal(t, 640, *img.Width)
	require.NotNil(t, img.Height)
	assert.Equal(t, 480, *img.Height)
	assert.Nil(t, img.TakenAt)
}

func TestImageDelete(t *testing.T) {
	deps := newDeps(t)
	seedHierarchy(t, deps)

	require.NoError(t, deps.images.Create(1, "/a/b.png", models.AttackTypeNoAttack, nil, nil, nil))
	require.NoError(t, deps.images.Delete(1))

	all, err := deps.images.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	// deleting again is a no-op
	assert.NoError(t, deps.images.Delete(1))
}
