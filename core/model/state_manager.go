// Package model provides lifecycle state and the shared interfaces of gradlearn estimators.
package model

import (
	"sync"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// StateManager tracks the lifecycle of a model in a thread-safe manner.
// Models embed it by composition and advance it from Train.
type StateManager struct {
	mu    sync.RWMutex
	state State

	nFeatures int
	nSamples  int
}

// NewStateManager creates a StateManager in the Constructed state.
func NewStateManager() *StateManager {
	return &StateManager{state: Constructed}
}

// State returns the current lifecycle state.
func (s *StateManager) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BeginTraining moves the model into the Training state.
func (s *StateManager) BeginTraining() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Training
}

// SetFitted marks the model as Trained.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Trained
}

// IsFitted reports whether the model reached the Trained state.
func (s *StateManager) IsFitted() bool {
	return s.State() == Trained
}

// Reset returns to Constructed and clears recorded dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Constructed
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the number of features and samples seen during fitting.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// GetDimensions returns the number of features and samples seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a NotFittedError naming modelName and method
// when the model has not been trained.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// RequireFeatures returns a DimensionError when cols differs from the
// feature count recorded by SetDimensions.
func (s *StateManager) RequireFeatures(op string, cols int) error {
	nFeatures, _ := s.GetDimensions()
	if cols != nFeatures {
		return errors.NewDimensionError(op, nFeatures, cols, 1)
	}
	return nil
}
