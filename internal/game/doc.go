// Package game simulates single Blackjack rounds under a rule variant.
//
// A Game owns a Shoe, a Player and a Dealer. Each round runs the fixed
// sequence Deal → PeekCheck → PlayerBlackjackCheck → PlayerAction →
// DealerPlay → Resolve and reports an Outcome.
//
// # Pinned hands
//
// EV estimation repeats the same starting position many times. SetHands
// resets the shoe and removes the given cards from it so that only the rest
// of the shoe is random:
//
//	g, _ := game.New(rules.Basic(), game.WithRNG(randutil.New(42)))
//	player := game.NewHand(deck.MustParseCards("TsTh")...)
//	dealer := game.NewHand(deck.MustParseCards("6d")...)
//	ev, err := g.SimulateNRounds(10000, dealer, player, game.Stand, 1)
//
// A partial hand, such as a lone dealer up-card, is completed from the shoe
// when the round is dealt.
//
// # Single decisions
//
// The player makes exactly one decision per round. Hit draws one card and
// stops, Double draws one card on a doubled wager, and Split keeps the first
// card plus one fresh card, which plays out one of the resulting hands.
// Outcome.Payoff is expressed per unit of the original bet; Outcome.Wagered
// applies the doubled stake.
//
// # Policies
//
// Player and Dealer share the Participant shape (hand and bankroll) and
// differ only in the policy that drives them: a PlayerPolicy chooses an
// Action, a DealerPolicy says draw or stop.
package game
