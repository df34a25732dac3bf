package scenario

import (
	"github.com/nvandessel/rateplot/internal/render"
	"github.com/nvandessel/rateplot/internal/weights"
)

// Default is the scenario rendered when none is named.
const Default = "custom"

const (
	initialWeights = "weights_initial.csv"

	// middleNeuron is the centre of the 500-neuron ring.
	middleNeuron = 249

	neuronTickStep = 100
)

var middleWindow = weights.Window{From: 200, To: 300}

// Builtins returns the figures of each simulation phase.
func Builtins() []Scenario {
	return []Scenario{
		{
			Name:           "full-simulation-rates",
			Kind:           KindRates,
			Description:    "Neuron rates for the full 4s simulation",
			Rates:          "standard_sim_neuron_rates_4000.csv",
			Scale:          render.Linear,
			Time:           &render.TimeAxis{Start: 0, End: 4},
			NeuronTickStep: neuronTickStep,
			Output:         "full_simulation_rates",
		},
		{
			Name:           "weights-3s",
			Kind:           KindWeights,
			Description:    "Weight change between the middle neuron and its neighbours at 3s",
			Weights:        "standard_sim_neuron_weights_3000.csv",
			InitialWeights: initialWeights,
			Middle:         middleNeuron,
			Window:         middleWindow,
			XLim:           &render.Limits{Min: 200, Max: 300},
			YLim:           &render.Limits{Min: 0, Max: 3},
			Color:          "b",
			Size:           render.Size{Width: 5, Height: 1.5},
			Output:         "weights_3s",
		},
		{
			Name:           "additional-one-sec-rates",
			Kind:           KindRates,
			Description:    "Neuron rates for the additional second (forward replay attempt)",
			Rates:          "additional_one_sec_neuron_rates_1000.csv",
			Scale:          render.Linear,
			NeuronTickStep: neuronTickStep,
			Output:         "additional_one_sec_simulation_rates",
		},
		{
			Name:           "weights-additional-one-sec",
			Kind:           KindWeights,
			Description:    "Weight change of the middle neuron at the 5s mark",
			Weights:        "additional_one_sec_neuron_weights_1000.csv",
			InitialWeights: initialWeights,
			Middle:         middleNeuron,
			Window:         middleWindow,
			XLim:           &render.Limits{Min: 200, Max: 300},
			YLim:           &render.Limits{Min: 0, Max: 10},
			Color:          "b",
			Size:           render.Size{Width: 10, Height: 2},
			Output:         "weights_additional_one_sec",
		},
		{
			Name:           "additional-four-sec-rates",
			Kind:           KindRates,
			Description:    "Neuron rates for the additional 4s simulation",
			Rates:          "additional_four_sec_neuron_rates.csv",
			Scale:          render.Log,
			Time:           &render.TimeAxis{Start: 4, End: 8},
			NeuronTickStep: neuronTickStep,
			Output:         "additional_four_sec_simulation_rates",
		},
		{
			Name:           "weights-4s",
			Kind:           KindWeights,
			Description:    "Weight change of the middle neuron at the 4s mark (display only)",
			Weights:        "neuron_weights_4000.csv",
			InitialWeights: initialWeights,
			Middle:         middleNeuron,
			Window:         middleWindow,
			Size:           render.Size{Width: 10, Height: 2},
		},
		{
			Name:           "custom",
			Kind:           KindRates,
			Description:    "Adjustable scenario, by default the additional 8s simulation",
			Rates:          "additional_eight_sec_neuron_rates.csv",
			Scale:          render.Log,
			Time:           &render.TimeAxis{Start: 4, End: 8},
			NeuronTickStep: neuronTickStep,
			Output:         "additional_eight_sec_simulation_rates",
		},
	}
}

// BuiltinCatalog returns a catalogue of the built-in scenarios.
func BuiltinCatalog() *Catalog {
	return NewCatalog(Builtins()...)
}
