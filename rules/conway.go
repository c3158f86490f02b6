package rules

/*
ApplyConwayRules returns the next state of a cell given its current state and
the number of living neighbours.

	alive, 0-1 neighbours  -> dies (underpopulation)
	alive, 2-3 neighbours  -> survives
	alive, 4+ neighbours   -> dies (overpopulation)
	dead, exactly 3        -> born
	otherwise              -> stays dead
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}
