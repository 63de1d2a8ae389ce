package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/game"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int64
	seeds    []int64

	mu          sync.Mutex
	lastFood    float64 // total deliveries from the most recent Evaluate
	lastBalance float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
	}
}

// LastFood returns the mean food throughput from the most recent evaluation.
func (fe *FitnessEvaluator) LastFood() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastFood
}

// LastBalance returns the mean colony balance from the most recent evaluation.
func (fe *FitnessEvaluator) LastBalance() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBalance
}

// extinctCheckInterval is how often (in ticks) the run is polled for a
// collapsed colony.
const extinctCheckInterval = 1000

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int64 // ticks before a colony collapsed (or maxTicks)
	totalFood     int   // deliveries summed across both colonies
	finalPops     [2]int
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness rewards survival first, then food throughput weighted by how
// evenly the two colonies share it.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalFood, totalBalance float64
	for _, r := range results {
		totalFitness += fe.computeFitness(r)
		totalFood += float64(r.totalFood)
		totalBalance += balance(r.finalPops)
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastFood = totalFood / n
	fe.lastBalance = totalBalance / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run with the given parameters.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	g, err := game.New(game.Options{Seed: seed})
	if err != nil {
		return runResult{}
	}
	defer g.Close()

	p := g.Params()
	fe.params.ApplyToParams(&p, x)
	p.StepsPerFrame = extinctCheckInterval
	g.SetParams(p)

	var result runResult
	for g.Tick() < fe.maxTicks {
		g.Update()

		popA := g.Population(components.ColonyA)
		popB := g.Population(components.ColonyB)
		if popA == 0 || popB == 0 {
			result.survivalTicks = g.Tick()
			result.finalPops = [2]int{popA, popB}
			result.totalFood = fe.sumFood(g)
			return result
		}
		result.finalPops = [2]int{popA, popB}
	}

	result.survivalTicks = fe.maxTicks
	result.totalFood = fe.sumFood(g)
	return result
}

func (fe *FitnessEvaluator) sumFood(g *game.Game) int {
	total := 0
	for c := components.ColonyA; c <= components.ColonyB; c++ {
		stats := g.Stats(c)
		total += stats.Lifetime.Food + stats.Current.Food
	}
	return total
}

// computeFitness calculates the scalar fitness (lower = better).
// Survival dominates; food throughput adds up to a 50% bonus scaled by
// how evenly the colonies split the final population.
func (fe *FitnessEvaluator) computeFitness(r runResult) float64 {
	survival := float64(r.survivalTicks)
	foodBonus := math.Log1p(float64(r.totalFood)) * (1.0 + 0.5*balance(r.finalPops))
	return -(survival + survival*0.01*foodBonus)
}

// balance is min/max of the two colony populations, in [0,1].
func balance(pops [2]int) float64 {
	lo, hi := pops[0], pops[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return 0
	}
	return float64(lo) / float64(hi)
}
