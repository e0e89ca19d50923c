package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/spaceinvaders.yaml
var defaultSpaceInvadersYAML []byte

//go:embed defaults/freeway.yaml
var defaultFreewayYAML []byte

//go:embed defaults/asterix.yaml
var defaultAsterixYAML []byte

//go:embed defaults/seaquest.yaml
var defaultSeaquestYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Bricks: BreakoutBricks{
			Rows:     3,
			StartRow: 1,
		},
		Ball: BreakoutBall{
			Period:    2,
			MinPeriod: 1,
		},
	}
}

// DefaultSpaceInvadersConfig returns the default Space Invaders configuration.
func DefaultSpaceInvadersConfig() SpaceInvadersConfig {
	return SpaceInvadersConfig{
		Aliens: SpaceInvadersAliens{
			Rows:       3,
			EdgeMargin: 2,
		},
		Shooting: SpaceInvadersShooting{
			PlayerCooldown: 3,
			AlienCooldown:  5,
		},
	}
}

// DefaultFreewayConfig returns the default Freeway configuration.
func DefaultFreewayConfig() FreewayConfig {
	return FreewayConfig{
		Cars: FreewayCars{
			Period:      3,
			PeriodRange: 2,
			MinPeriod:   1,
		},
	}
}

// DefaultAsterixConfig returns the default Asterix configuration.
func DefaultAsterixConfig() AsterixConfig {
	return AsterixConfig{
		Entities: AsterixEntities{
			Period:         1,
			PeriodRange:    2,
			MinPeriod:      1,
			TreasureChance: 1.0 / 3.0,
			RespawnWait:    3,
			MinRespawnWait: 0,
		},
		Difficulty: AsterixDifficulty{
			AdvanceEvery: 100,
		},
	}
}

// DefaultSeaquestConfig returns the default Seaquest configuration.
func DefaultSeaquestConfig() SeaquestConfig {
	return SeaquestConfig{
		Oxygen: SeaquestOxygen{
			Max:        20,
			DecayEvery: 10,
		},
		Divers: SeaquestDivers{
			CarryMax: 6,
		},
		Enemies: SeaquestEnemies{
			Period:          3,
			PeriodRange:     2,
			MinPeriod:       1,
			RespawnWait:     3,
			MinRespawnWait:  0,
			FishChance:      0.5,
			SubmarineChance: 0.15,
		},
		Shooting: SeaquestShooting{
			Cooldown: 3,
		},
	}
}
