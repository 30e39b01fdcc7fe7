// Package workflow models the multi-step medicine search as an explicit
// state machine with pure transition functions, so every branch (validation
// failure, location denial, zero/one/many recommendations) is independently
// testable.
package workflow

import (
	"fmt"
	"medifinder/src/types"
	"strings"
)

type State string

const (
	StateIdle       State = "Idle"
	StateValidating State = "Validating"
	StateConfirming State = "Confirming"
	StateLocating   State = "LocatingDevice"
	StateSearching  State = "Searching"
	StateResults    State = "Results"
	StateNoResults  State = "NoResults"
	StateError      State = "Error"
)

// Search is the workflow's full session state. Transition functions take it
// by value and return the successor, leaving the input untouched.
type Search struct {
	State State

	// Original is the literal user query; Medicine is the committed name
	// once validation/choice resolves.
	Original string
	Medicine string

	// Suggestion is set while Confirming a corrected spelling; empty means
	// the user may only force the original through.
	Suggestion string

	// Choices holds disease-path candidates awaiting a pick.
	Choices []string

	Location *types.GeoPoint
	Results  []types.PharmacyResult

	StatusText string
}

// Begin starts a medicine-name search.
func Begin(query string) Search {
	query = strings.TrimSpace(query)
	if query == "" {
		return Search{State: StateIdle}
	}
	return Search{
		State:      StateValidating,
		Original:   query,
		StatusText: fmt.Sprintf("Searching for '%s'...", query),
	}
}

// ResolveLocal short-circuits validation when the name is already known
// inventory.
func ResolveLocal(s Search, found bool) Search {
	if s.State != StateValidating {
		return s
	}
	if found {
		return commit(s, s.Original)
	}
	s.StatusText = fmt.Sprintf("Validating '%s'...", s.Original)
	return s
}

// ApplyValidation folds the AI verdict into the session. A nil validation
// with an error means the validator itself was unreachable: the user may
// still force the original query through.
func ApplyValidation(s Search, v *types.MedicineValidation, err error) Search {
	if s.State != StateValidating {
		return s
	}
	if err != nil || v == nil {
		s.State = StateConfirming
		s.Suggestion = ""
		s.StatusText = fmt.Sprintf("Couldn't validate '%s'. You can search for it anyway.", s.Original)
		return s
	}
	if !v.Valid {
		s.State = StateError
		s.StatusText = v.Reason
		if s.StatusText == "" {
			s.StatusText = fmt.Sprintf("Sorry, '%s' doesn't seem to be a recognized medicine. Please check the spelling and try again.", s.Original)
		}
		return s
	}
	suggested := v.CorrectedName
	if suggested == "" {
		suggested = s.Original
	}
	if !strings.EqualFold(suggested, s.Original) {
		s.State = StateConfirming
		s.Suggestion = suggested
		s.StatusText = fmt.Sprintf("We think you meant '%s'.", suggested)
		return s
	}
	return commit(s, suggested)
}

// ApplyRecommendations folds the disease-path candidate list into the
// session: none ends the search, one auto-selects, many ask the user.
func ApplyRecommendations(s Search, disease string, choices []string) Search {
	switch len(choices) {
	case 0:
		s.State = StateNoResults
		s.StatusText = fmt.Sprintf("No specific medicine recommendations found for '%s'. Try searching for a medicine directly.", disease)
	case 1:
		return commit(s, choices[0])
	default:
		s.State = StateConfirming
		s.Choices = choices
		s.StatusText = fmt.Sprintf("The following are recommended for '%s'. Please choose one.", disease)
	}
	return s
}

// Choose resolves a Confirming state: the user picked the suggestion, one of
// the candidates, or insisted on the original.
func Choose(s Search, name string) Search {
	if s.State != StateConfirming {
		return s
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.Original
	}
	s.Suggestion = ""
	s.Choices = nil
	return commit(s, name)
}

// ApplyLocation records the device position, or fails closed when
// geolocation is denied or unsupported.
func ApplyLocation(s Search, loc *types.GeoPoint, denied bool) Search {
	if s.State != StateLocating {
		return s
	}
	if denied || loc == nil {
		s.State = StateError
		s.StatusText = "Location access denied. Please allow location access to find nearby pharmacies."
		return s
	}
	s.Location = loc
	s.State = StateSearching
	s.StatusText = fmt.Sprintf("Finding pharmacies with %s near you...", s.Medicine)
	return s
}

// ApplyResults lands the session in its terminal state.
func ApplyResults(s Search, results []types.PharmacyResult, err error) Search {
	if s.State != StateSearching {
		return s
	}
	if err != nil {
		s.State = StateError
		s.StatusText = "Could not fetch medicine data from server."
		return s
	}
	if len(results) == 0 {
		s.State = StateNoResults
		s.StatusText = fmt.Sprintf("No pharmacies nearby currently have %s available.", s.Medicine)
		return s
	}
	s.Results = results
	s.State = StateResults
	s.StatusText = ""
	return s
}

func commit(s Search, medicine string) Search {
	s.Medicine = medicine
	s.State = StateLocating
	s.StatusText = "Getting your location..."
	return s
}

// Terminal reports whether the workflow has stopped advancing.
func (s Search) Terminal() bool {
	switch s.State {
	case StateResults, StateNoResults, StateError:
		return true
	}
	return false
}
