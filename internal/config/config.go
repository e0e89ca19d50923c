// Package config provides YAML-based game configuration loading for the
// arcade engine. Each game has its own config struct with an embedded
// default, overridable from ~/.gridarcade/configs or a custom path.
package config

// BreakoutConfig contains all configuration for the Breakout game.
type BreakoutConfig struct {
	Bricks BreakoutBricks `yaml:"bricks"`
	Ball   BreakoutBall   `yaml:"ball"`
}

// BreakoutBricks defines the brick wall layout.
type BreakoutBricks struct {
	Rows     int `yaml:"rows"`      // number of brick rows
	StartRow int `yaml:"start_row"` // topmost brick row
}

// BreakoutBall defines the ball's movement schedule.
type BreakoutBall struct {
	Period    int `yaml:"period"`     // ticks per tile at round one
	MinPeriod int `yaml:"min_period"` // fastest the ball ever gets
}

// SpaceInvadersConfig contains all configuration for the Space Invaders game.
type SpaceInvadersConfig struct {
	Aliens   SpaceInvadersAliens   `yaml:"aliens"`
	Shooting SpaceInvadersShooting `yaml:"shooting"`
}

// SpaceInvadersAliens defines the alien formation.
type SpaceInvadersAliens struct {
	Rows       int `yaml:"rows"`        // formation height
	EdgeMargin int `yaml:"edge_margin"` // empty columns on each side at spawn
}

// SpaceInvadersShooting defines the shot cooldowns.
type SpaceInvadersShooting struct {
	PlayerCooldown int `yaml:"player_cooldown"` // ticks between player shots
	AlienCooldown  int `yaml:"alien_cooldown"`  // ticks between formation volleys
}

// FreewayConfig contains all configuration for the Freeway game.
type FreewayConfig struct {
	Cars FreewayCars `yaml:"cars"`
}

// FreewayCars defines lane traffic speed. Each car's period is drawn
// uniformly from [period, period+period_range] at board setup.
type FreewayCars struct {
	Period      int `yaml:"period"`
	PeriodRange int `yaml:"period_range"`
	MinPeriod   int `yaml:"min_period"`
}

// AsterixConfig contains all configuration for the Asterix game.
type AsterixConfig struct {
	Entities   AsterixEntities   `yaml:"entities"`
	Difficulty AsterixDifficulty `yaml:"difficulty"`
}

// AsterixEntities defines enemy/treasure traffic and respawning.
type AsterixEntities struct {
	Period         int     `yaml:"period"`
	PeriodRange    int     `yaml:"period_range"`
	MinPeriod      int     `yaml:"min_period"`
	TreasureChance float64 `yaml:"treasure_chance"`
	RespawnWait    int     `yaml:"respawn_wait"`
	MinRespawnWait int     `yaml:"min_respawn_wait"`
}

// AsterixDifficulty defines the periodic round advance.
type AsterixDifficulty struct {
	AdvanceEvery int `yaml:"advance_every"` // ticks between round advances
}

// SeaquestConfig contains all configuration for the Seaquest game.
type SeaquestConfig struct {
	Oxygen   SeaquestOxygen   `yaml:"oxygen"`
	Divers   SeaquestDivers   `yaml:"divers"`
	Enemies  SeaquestEnemies  `yaml:"enemies"`
	Shooting SeaquestShooting `yaml:"shooting"`
}

// SeaquestOxygen defines the oxygen gauge.
type SeaquestOxygen struct {
	Max        int `yaml:"max"`         // gauge capacity
	DecayEvery int `yaml:"decay_every"` // ticks per unit of depletion
}

// SeaquestDivers defines diver carrying capacity.
type SeaquestDivers struct {
	CarryMax int `yaml:"carry_max"`
}

// SeaquestEnemies defines underwater traffic. Spawn kind is drawn as
// fish with fish_chance, submarine with submarine_chance, diver otherwise.
type SeaquestEnemies struct {
	Period          int     `yaml:"period"`
	PeriodRange     int     `yaml:"period_range"`
	MinPeriod       int     `yaml:"min_period"`
	RespawnWait     int     `yaml:"respawn_wait"`
	MinRespawnWait  int     `yaml:"min_respawn_wait"`
	FishChance      float64 `yaml:"fish_chance"`
	SubmarineChance float64 `yaml:"submarine_chance"`
}

// SeaquestShooting defines the player's shot cooldown.
type SeaquestShooting struct {
	Cooldown int `yaml:"cooldown"`
}
