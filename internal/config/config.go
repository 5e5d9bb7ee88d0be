// Package config loads reverb parameters and processing options from a
// YAML file, with CLI flag values taking precedence over anything the
// file sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sndforge/vitaverb/internal/dsp"
)

// File mirrors the on-disk YAML shape. Any field left unset keeps the
// built-in default rather than zeroing out.
type File struct {
	Mix   *float32 `yaml:"mix"`
	Size  *float32 `yaml:"size"`
	Decay *float32 `yaml:"decay"`
	Delay *float32 `yaml:"delay"`
	Width *float32 `yaml:"width"`

	ChorusFreqHz *float32 `yaml:"chorus_freq_hz"`
	ChorusAmount *float32 `yaml:"chorus_amount"`

	PreLowCutHz  *float32 `yaml:"pre_low_cut_hz"`
	PreHighCutHz *float32 `yaml:"pre_high_cut_hz"`

	LowShelfCutHz   *float32 `yaml:"low_shelf_cut_hz"`
	LowShelfGainDB  *float32 `yaml:"low_shelf_gain_db"`
	HighShelfCutHz  *float32 `yaml:"high_shelf_cut_hz"`
	HighShelfGainDB *float32 `yaml:"high_shelf_gain_db"`

	BlockSize *int `yaml:"block_size"`
}

// Load reads and parses a YAML config file. A missing path is not an
// error: Load returns a zero-valued File so every field falls back to
// its default.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// Params applies f over DefaultParams, field by field.
func (f File) Params() dsp.Params {
	p := dsp.DefaultParams()

	setF32(&p.Mix, f.Mix)
	setF32(&p.Size, f.Size)
	setF32(&p.Decay, f.Decay)
	setF32(&p.Delay, f.Delay)
	setF32(&p.Width, f.Width)
	setF32(&p.ChorusFreqHz, f.ChorusFreqHz)
	setF32(&p.ChorusAmount, f.ChorusAmount)
	setF32(&p.PreLowCutHz, f.PreLowCutHz)
	setF32(&p.PreHighCutHz, f.PreHighCutHz)
	setF32(&p.LowShelfCutHz, f.LowShelfCutHz)
	setF32(&p.LowShelfGainDB, f.LowShelfGainDB)
	setF32(&p.HighShelfCutHz, f.HighShelfCutHz)
	setF32(&p.HighShelfGainDB, f.HighShelfGainDB)

	return p.Clamped()
}

// BlockSizeOr returns the configured block size, or fallback if unset.
func (f File) BlockSizeOr(fallback int) int {
	if f.BlockSize == nil {
		return fallback
	}
	return *f.BlockSize
}

func setF32(dst *float32, src *float32) {
	if src != nil {
		*dst = *src
	}
}
