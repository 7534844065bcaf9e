package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FireFly4ik/db-kr-1/models"
	"github.com/FireFly4ik/db-kr-1/schemas"
)

func TestRunCreateUnknownExperiment(t *testing.T) {
	db := newTestDB(t)
	runs := NewRunRepository(db)

	err := runs.Create(77, float64Ptr(0.5), boolPtr(false))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Experiment with id=77 not found")

	all, err := runs.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunCreateAccuracyBounds(t *testing.T) {
	db := newTestDB(t)
	experiments := NewExperimentRepository(db)
	runs := NewRunRepository(db)
	require.NoError(t, experiments.Create("E1", nil))

	require.NoError(t, runs.Create(1, float64Ptr(0.0), nil))
	require.NoError(t, runs.Create(1, float64Ptr(1.0), nil))

	err := runs.Create(1, float64Ptr(1.5), nil)
	require.Error(t, err)
	var ve *schemas.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestRunCreateSetsUTCDateNotInFuture(t *testing.T) {
	db := newTestDB(t)
	experiments := NewExperimentRepository(db)
	runs := NewRunRepository(db)
	require.NoError(t, experiments.Create("E1", nil))

	require.NoError(t, runs.Create(1, nil, nil))

	run, err := runs.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.False(t, run.RunDate.After(time.Now().UTC().Add(time.Second)))
	assert.Nil(t, run.Accuracy)
	assert.Nil(t, run.Flagged)
}

func TestRunUpdate(t *testing.T) {
	db := newTestDB(t)
	experiments := NewExperimentRepository(db)
	runs := NewRunRepository(db)
	require.NoError(t, experiments.Create("E1", nil))
	require.NoError(t, runs.Create(1, float64Ptr(0.5), boolPtr(false)))

	require.NoError(t, runs.Update(1, 1, 0.75, true))

	run, err := runs.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, run)
	require.NotNil(t, run.Accuracy)
	assert.Equal(t, 0.75, *run.Accuracy)
	require.NotNil(t, run.Flagged)
	assert.True(t, *run.Flagged)
}

func TestRunUpdateMissingIsNoOp(t *testing.T) {
	db := newTestDB(t)
	experiments := NewExperimentRepository(db)
	runs := NewRunRepository(db)
	require.NoError(t, experiments.Create("E1", nil))
	require.NoError(t, runs.Create(1, float64Ptr(0.9), boolPtr(false)))

	// run 999 does not exist: the operation succeeds and changes nothing
	require.NoError(t, runs.Update(1, 999, 0.5, true))

	all, err := runs.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Accuracy)
	assert.Equal(t, 0.9, *all[0].Accuracy)
	require.NotNil(t, all[0].Flagged)
	assert.False(t, *all[0].Flagged)
}

func TestRunDeleteCascadesOwnImagesOnly(t *testing.T) {
	db := newTestDB(t)
	experiments := NewExperimentRepository(db)
	runs := NewRunRepository(db)
	images := NewImageRepository(db)

	require.NoError(t, experiments.Create("E1", nil))
	require.NoError(t, runs.Create(1, nil, nil))
	require.NoError(t, runs.Create(1, nil, nil))
	require.NoError(t, images.Create(1, "/data/run1/a.png", models.AttackTypeNoAttack, nil, nil, nil))
	require.NoError(t, images.Create(2, "/data/run2/b.png", models.AttackTypeNoAttack, nil, nil, nil))

	require.NoError(t, runs.Delete(1))

	remainingRuns, err := runs.ListAll()
	require.NoError(t, err)
	require.Len(t, remainingRuns, 1)
	assert.Equal(t, int64(2), remainingRuns[0].ID)

	remainingImages, err := images.ListAll()
	require.NoError(t, err)
	require.Len(t, remainingImages, 1)
	assert.Equal(t, "/data/run2/b.png", remainingImages[0].FilePath)

	// the parent experiment is untouched
	exp, err := experiments.GetByID(1)
	require.NoError(t, err)
	assert.NotNil(t, exp)
}

func TestRunMaxID(t *testing.T) {
	db := newTestDB(t)
	experiments := NewExperimentRepository(db)
	runs := NewRunRepository(db)

	maxID, err := runs.MaxID()
	require.NoError(t, err)
	assert.Equal(t, int64(0), maxID)

	require.NoError(t, experiments.Create("E1", nil))
	require.NoError(t, runs.Create(1, nil, nil))
	require.NoError(t, runs.Create(1, nil, nil))

	maxID, err = runs.MaxID()
	require.NoError(t, err)
	assert.Equal(t, int64(2), maxID)
}
