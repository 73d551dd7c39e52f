package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pokedex/internal/models"
	"pokedex/internal/repository"
	"pokedex/internal/validation"
)

const trainersCollection = "trainers"

// TrainerService manages trainer profile documents
type TrainerService struct {
	store repository.DocumentStore
}

// NewTrainerService creates a new trainer service
func NewTrainerService(store repository.DocumentStore) *TrainerService {
	return &TrainerService{store: store}
}

// GetProfile returns a trainer's profile, or nil if none has been created
func (s *TrainerService) GetProfile(userKey string) (*models.TrainerProfile, error) {
	raw, found, err := s.store.Get(trainersCollection, userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if !found {
		return nil, nil
	}

	profile := &models.TrainerProfile{}
	if err := json.Unmarshal(raw, profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

// CreateProfile writes a fresh profile document for the trainer
func (s *TrainerService) CreateProfile(userKey, trainerName, avatar, region string) (*models.TrainerProfile, error) {
	if err := validation.ValidateName(trainerName); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &models.TrainerProfile{
		TrainerName: trainerName,
		Avatar:      avatar,
		Region:      region,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Set(trainersCollection, userKey, profile, false); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile applies a partial update to an existing profile. Unknown
// fields in updates are stored as-is alongside the known ones.
func (s *TrainerService) UpdateProfile(userKey string, updates map[string]interface{}) (*models.TrainerProfile, error) {
	if updates == nil {
		updates = make(map[string]interface{})
	}
	if name, ok := updates["trainerName"].(string); ok {
		if err := validation.ValidateName(name); err != nil {
			return nil, err
		}
	}
	updates["updatedAt"] = time.Now().UTC()

	if err := s.store.Update(trainersCollection, userKey, updates); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(userKey)
}

// DeleteProfile removes the trainer's profile document
func (s *TrainerService) DeleteProfile(userKey string) error {
	if err := s.store.Delete(trainersCollection, userKey); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
