package metrics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

// Calculator answers one business question over a filtered order set,
// rendered as a report.
type Calculator func(ds *domain.Dataset, f domain.FilteredOrders) *domain.Report

// Registry manages the business-question calculators
type Registry interface {
	// Register adds a calculator for a question
	Register(question string, c Calculator) error
	// Get returns the calculator for the specified question
	Get(question string) (Calculator, error)
	// ListQuestions returns the registered question names, sorted
	ListQuestions() []string
}

type registry struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// NewRegistry creates a registry pre-populated with the given calculators
func NewRegistry(calculators map[string]Calculator) Registry {
	r := &registry{calculators: make(map[string]Calculator)}
	for question, c := range calculators {
		r.calculators[question] = c
	}
	return r
}

func (r *registry) Register(question string, c Calculator) error {
	if question == "" {
		return fmt.Errorf("question name cannot be empty")
	}
	if c == nil {
		return fmt.Errorf("calculator cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calculators[question]; exists {
		return fmt.Errorf("question %q is already registered", question)
	}

	r.calculators[question] = c
	return nil
}

func (r *registry) Get(question string) (Calculator, error) {
	r.mu.RLock()
	c, exists := r.calculators[question]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("question %q is not registered", question)
	}
	return c, nil
}

func (r *registry) ListQuestions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]string, 0, len(r.calculators))
	for q := range r.calculators {
		questions = append(questions, q)
	}
	sort.Strings(questions)
	return questions
}
