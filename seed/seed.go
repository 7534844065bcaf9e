// Package seed loads a demo dataset through the repositories, so every record
// travels the same validate-then-persist path as user input.
package seed

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/FireFly4ik/db-kr-1/models"
	"github.com/FireFly4ik/db-kr-1/repository"
)

type experimentSeed struct {
	Name        string
	Description string
}

type runSeed struct {
	ExperimentID int64
	Accuracy     float64
	Flagged      bool
}

type imageSeed struct {
	RunID        int64
	FilePath     string
	OriginalName string
	AttackType   models.AttackType
	Coordinates  models.Coordinates
}

var experimentsData = []experimentSeed{
	{Name: "Baseline Classification", Description: "Baseline image classification experiment without attacks"},
	{Name: "Adversarial Robustness Test", Description: "Robustness testing against adversarial attacks"},
	{Name: "Noise Resistance Study", Description: "Study of resistance to various kinds of noise"},
}

var runsData = []runSeed{
	{ExperimentID: 1, Accuracy: 0.95, Flagged: false},
	{ExperimentID: 1, Accuracy: 0.96, Flagged: false},
	{ExperimentID: 2, Accuracy: 0.45, Flagged: true},
	{ExperimentID: 2, Accuracy: 0.62, Flagged: false},
	{ExperimentID: 3, Accuracy: 0.78, Flagged: false},
	{ExperimentID: 3, Accuracy: 0.82, Flagged: false},
}

var imagesData = []imageSeed{
	{RunID: 1, FilePath: "/data/run1/img_001.png", OriginalName: "cat_001.png", AttackType: models.AttackTypeNoAttack, Coordinates: models.Coordinates{100, 150, 200, 250}},
	{RunID: 1, FilePath: "/data/run1/img_002.jpg", OriginalName: "dog_001.jpg", AttackType: models.AttackTypeNoAttack, Coordinates: models.Coordinates{50, 75, 180, 220}},
	{RunID: 2, FilePath: "/data/run2/img_003.jpg", OriginalName: "bird_001.jpg", AttackType: models.AttackTypeNoAttack, Coordinates: models.Coordinates{120, 80, 250, 180}},
	{RunID: 3, FilePath: "/data/run3/adv_001.jpeg", OriginalName: "cat_002.jpeg", AttackType: models.AttackTypeAdversarial, Coordinates: models.Coordinates{90, 130, 190, 240}},
	{RunID: 3, FilePath: "/data/run3/adv_002.jpg", OriginalName: "dog_002.jpg", AttackType: models.AttackTypeAdversarial, Coordinates: models.Coordinates{60, 85, 170, 210}},
	{RunID: 4, FilePath: "/data/run4/adv_003.png", OriginalName: "car_001.png", AttackType: models.AttackTypeAdversarial, Coordinates: models.Coordinates{30, 40, 220, 160}},
	{RunID: 5, FilePath: "/data/run5/noise_001.jpg", OriginalName: "street_001.jpg", AttackType: models.AttackTypeNoise, Coordinates: models.Coordinates{10, 20, 300, 400}},
	{RunID: 5, FilePath: "/data/run5/noise_002.png", OriginalName: "building_001.jpg", AttackType: models.AttackTypeBlur, Coordinates: models.Coordinates{5, 15, 280, 380}},
	{RunID: 6, FilePath: "/data/run6/rot_001.jpg", OriginalName: "person_001.jpg", AttackType: models.AttackTypeOther, Coordinates: models.Coordinates{80, 120, 240, 320}},
	{RunID: 6, FilePath: "/data/run6/mixed_001.jpeg", OriginalName: "animal_001.jpeg", AttackType: models.AttackTypeNoise, Coordinates: models.Coordinates{70, 90, 210, 290}},
}

// Insert loads the demo dataset. The referenced ids assume a freshly
// recreated schema, where autoincrement starts at 1.
func Insert(db *gorm.DB) error {
	experiments := repository.NewExperimentRepository(db)
	runs := repository.NewRunRepository(db)
	images := repository.NewImageRepository(db)

	for _, e := range experimentsData {
		desc := e.Description
		if err := experiments.Create(e.Name, &desc); err != nil {
			return fmt.Errorf("failed to seed experiment %s: %w", e.Name, err)
		}
	}
	for _, r := range runsData {
		acc := r.Accuracy
		flagged := r.Flagged
		if err := runs.Create(r.ExperimentID, &acc, &flagged); err != nil {
			return fmt.Errorf("failed to seed run for experiment %d: %w", r.ExperimentID, err)
		}
	}
	for _, img := range imagesData {
		name := img.OriginalName
		if err := images.Create(img.RunID, img.FilePath, img.AttackType, &name, nil, img.Coordinates); err != nil {
			return fmt.Errorf("failed to seed image %s: %w", img.FilePath, err)
		}
	}
	return nil
}
