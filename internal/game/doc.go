// Package game implements the round state machine for a Tiến Lên shedding
// game between one human and up to three computer players.
//
// # Basic Usage
//
// Build players, hand them a shuffled deck and play rounds until someone
// sheds every card:
//
//	d := deck.New()
//	d.Shuffle(randutil.New(42))
//	g, err := game.NewGame([]*game.Player{
//	    game.NewPlayer("You", game.Human),
//	    game.NewPlayer("Obi", game.Computer),
//	}, d, game.WithAgent("You", human))
//	winner, err := g.Play(ctx)
//
// # Rounds
//
// A round starts with a leader and no hand to beat. The leader must play;
// each follower must beat the last play with the same number of cards or
// pass for the rest of the round. When play returns to the last player to
// play, that player wins the round and leads the next one. The game ends
// as soon as any player holds no cards.
//
// # Agents
//
// Every seat is driven by an Agent. ComputerAgent picks from the legal
// moves computed by the Player; HumanAgent reads a move line through a
// MoveReader under an optional deadline.
package game
