// Copyright 2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scheduler

import "github.com/spf13/viper"

// Tuning holds the scheduler's own knobs — never the descriptor's.
// Dimensions, mandatory columns, joints, hierarchies, blacklist and
// parentForward all come from the cube.Descriptor; Tuning only covers
// how hard the scheduler pushes back on a misbehaving descriptor.
type Tuning struct {
	// ExplosionMultiplier scales the descriptor's
	// cubeAggrGroupMaxCombination into the effective combinatorial
	// guard. Held at 10 deliberately, matching long-standing behavior
	// rather than a tighter, more "correct" bound.
	ExplosionMultiplier int64
	// WarnFraction is the fraction of the effective limit at which the
	// build logs a warning ahead of the hard explosion guard tripping.
	WarnFraction float64
}

// DefaultTuning returns the scheduler's baseline constants.
func DefaultTuning() Tuning {
	return Tuning{
		ExplosionMultiplier: 10,
		WarnFraction:        0.5,
	}
}

// LoadTuning overlays environment variables (prefixed CUBOID_) and any
// config file already loaded into v onto DefaultTuning. A nil v
// returns the defaults unchanged. This never touches descriptor
// parsing, which stays an external concern.
func LoadTuning(v *viper.Viper) (Tuning, error) {
	t := DefaultTuning()
	if v == nil {
		return t, nil
	}

	v.SetEnvPrefix("CUBOID")
	v.AutomaticEnv()
	v.SetDefault("explosion_multiplier", t.ExplosionMultiplier)
	v.SetDefault("warn_fraction", t.WarnFraction)

	t.ExplosionMultiplier = v.GetInt64("explosion_multiplier")
	t.WarnFraction = v.GetFloat64("warn_fraction")
	return t, nil
}
