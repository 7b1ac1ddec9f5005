package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/lox/tienlen/internal/config"
	"github.com/lox/tienlen/internal/game"
)

// seatPlayers puts the human in the first seat and fills the rest with
// computers named from the config's pool.
func seatPlayers(cfg *config.Config, human string, rng *rand.Rand) ([]*game.Player, error) {
	computers := cfg.Game.ComputerPlayers
	if computers == 0 {
		computers = game.MaxPlayers - 1
	}

	names := game.NewNamePool(cfg.Names, rng)
	names.Reserve(human)

	players := []*game.Player{game.NewPlayer(human, game.Human)}
	for range computers {
		name, err := names.Take()
		if err != nil {
			return nil, fmt.Errorf("not enough names for %d computer players: %w", computers, err)
		}
		players = append(players, game.NewPlayer(name, game.Computer))
	}
	return players, nil
}
