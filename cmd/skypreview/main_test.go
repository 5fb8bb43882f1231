package main

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/sky/config"
)

func TestCloudParamsApply(t *testing.T) {
	base, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	p := paramsFrom(base)
	p.SpatialScale = 800
	p.NoiseGain = 2
	cfg := p.apply(*base)

	if cfg.Clouds.SpatialScale != 800 || cfg.Clouds.NoiseGain != 2 {
		t.Errorf("expected applied scale 800 and gain 2, got %v and %v", cfg.Clouds.SpatialScale, cfg.Clouds.NoiseGain)
	}
	if base.Clouds.SpatialScale == 800 {
		t.Error("apply must not modify the base config")
	}
}

func TestCloudParamsYAML(t *testing.T) {
	base, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := paramsFrom(base)
	p.SpatialScale = 640

	var out struct {
		Clouds config.CloudsConfig `yaml:"clouds"`
	}
	if err := yaml.Unmarshal([]byte(p.yaml()), &out); err != nil {
		t.Fatalf("snippet is not valid YAML: %v\n%s", err, p.yaml())
	}
	if out.Clouds.SpatialScale != 640 {
		t.Errorf("expected spatial_scale 640, got %v", out.Clouds.SpatialScale)
	}
	if out.Clouds.NoiseGain != 1.5 || out.Clouds.Cutoff != 0.6 {
		t.Errorf("expected gain 1.5 and cutoff 0.6, got %v and %v", out.Clouds.NoiseGain, out.Clouds.Cutoff)
	}
}
