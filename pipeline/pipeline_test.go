package pipeline

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"planetgen/core"
	"planetgen/internal/meshgen"
)

func testParams() core.Params {
	p := core.DefaultParams()
	// Validate rejects N below 2000; Run takes the region count from the
	// mesh itself, so the smaller test meshes below still run as built.
	p.N = 2000
	p.P = 6
	p.NumContinents = 3
	return p
}

func TestRunDeterministic(t *testing.T) {
	mesh := meshgen.Build(600)
	p := testParams()

	a, err := Run(context.Background(), mesh, p, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Run(context.Background(), mesh, p, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	diff := cmp.Diff(a.RElevation, b.RElevation, cmpopts.EquateApprox(0, 1e-12))
	if diff != "" {
		t.Errorf("elevation not deterministic across identical runs:\n%s", diff)
	}
	if !cmp.Equal(a.RKoppen, b.RKoppen) {
		t.Errorf("koppen classification not deterministic across identical runs")
	}
}

func TestRunProducesFiniteElevationAndNormalizedFields(t *testing.T) {
	mesh := meshgen.Build(500)
	p := testParams()

	planet, err := Run(context.Background(), mesh, p, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for r, e := range planet.RElevation {
		if math.IsNaN(float64(e)) || math.IsInf(float64(e), 0) {
			t.Fatalf("region %d has non-finite elevation %v", r, e)
		}
	}
	for r, v := range planet.RTemperatureSummer {
		if v < 0 || v > 1 {
			t.Errorf("region %d summer temperature %v out of [0,1]", r, v)
		}
	}
	for r, v := range planet.RPrecipSummer {
		if v < 0 || v > 1 {
			t.Errorf("region %d summer precipitation %v out of [0,1]", r, v)
		}
	}
}

func TestRunReportsMonotonicProgress(t *testing.T) {
	mesh := meshgen.Build(400)
	p := testParams()

	var percents []float64
	reporter := func(percent float64, label string) {
		percents = append(percents, percent)
	}

	if _, err := Run(context.Background(), mesh, p, reporter); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("progress regressed: %v then %v", percents[i-1], percents[i])
		}
	}
	if len(percents) == 0 {
		t.Fatal("reporter was never called")
	}
}

func TestRunRejectsInvalidParams(t *testing.T) {
	mesh := meshgen.Build(400)
	p := testParams()
	p.Roughness = 5

	if _, err := Run(context.Background(), mesh, p, nil); err == nil {
		t.Fatal("expected an error for out-of-range Roughness")
	}
}

func TestRunHonorsCancellationBetweenStages(t *testing.T) {
	mesh := meshgen.Build(400)
	p := testParams()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, mesh, p, nil)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	pe, ok := err.(*core.PipelineError)
	if !ok || pe.Kind != core.ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}
