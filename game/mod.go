package game

// Evaluate scores a game between -1 and 1 from player's perspective.
// Positive values favor player.
type Evaluate func(g *Game, player int) float64
