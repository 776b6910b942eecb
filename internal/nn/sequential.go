package nn

import (
	"fmt"

	"github.com/born-ml/minigrad/internal/autodiff"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input.
//
// Example:
//
//	model := nn.NewSequential(fc1, nn.NewReLU(), fc2)
//	logits, err := model.Forward(tape, x)
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(tape *autodiff.Tape, input autodiff.NodeID) (autodiff.NodeID, error) {
	output := input
	for i, module := range s.modules {
		var err error
		if output, err = module.Forward(tape, output); err != nil {
			return 0, fmt.Errorf("module %d: %w", i, err)
		}
	}
	return output, nil
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential) Parameters() []*autodiff.Parameter {
	var params []*autodiff.Parameter
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at index i.
func (s *Sequential) Module(i int) Module {
	return s.modules[i]
}

var (
	_ Module = (*Linear)(nil)
	_ Module = (*ReLU)(nil)
	_ Module = (*Softmax)(nil)
	_ Module = (*Sequential)(nil)
)
