package core

import "testing"

func TestDefaultParamsValidates(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("default params should validate, got %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"seed too big", func(p *Params) { p.Seed = 1 << 24 }},
		{"N too small", func(p *Params) { p.N = 100 }},
		{"N too large", func(p *Params) { p.N = 10_000_000 }},
		{"plates too few", func(p *Params) { p.P = 1 }},
		{"continents too many", func(p *Params) { p.NumContinents = 11 }},
		{"roughness too high", func(p *Params) { p.Roughness = 1 }},
		{"smoothing negative", func(p *Params) { p.Smoothing = -0.1 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParams()
			c.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatalf("expected ParamOutOfRange, got nil")
			}
			pe, ok := err.(*PipelineError)
			if !ok || pe.Kind != ErrParamOutOfRange {
				t.Fatalf("expected ParamOutOfRange, got %v", err)
			}
		})
	}
}

func TestValidateSnapsSliders(t *testing.T) {
	p := DefaultParams()
	p.Smoothing = 0.333333
	if err := p.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if p.Smoothing != snap(0.333333) {
		t.Errorf("Smoothing = %v, want snapped %v", p.Smoothing, snap(0.333333))
	}
}
